package domain

import (
	"strconv"
	"strings"
)

// CanonicalIdentifierWidth is the fixed width of a normalized identifier.
const CanonicalIdentifierWidth = 20

// NormalizeIdentifier repairs identifiers that passed through a numeric column
// (scientific notation, a trailing ".0", dropped leading zeros) and returns the
// canonical zero-padded digit string. Blank input returns "".
//
// Normalization is best-effort: input that cannot be repaired comes back trimmed
// and unchanged, and later fails range checks.
func NormalizeIdentifier(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimSuffix(s, ".0")

	if strings.ContainsAny(s, "eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			s = strconv.FormatFloat(f, 'f', 0, 64)
		}
	}

	if len(s) < CanonicalIdentifierWidth && isDigits(s) {
		s = strings.Repeat("0", CanonicalIdentifierWidth-len(s)) + s
	}

	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
