package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// decodeText converts the raw file to UTF-8. A BOM selects UTF-8 or UTF-16;
// without one, valid UTF-8 is taken as is and anything else is read as
// Windows-1250, the code page of Central European SAP clients.
func decodeText(data []byte) ([]byte, error) {
	var fallback transform.Transformer = unicode.UTF8.NewDecoder()
	if !utf8.Valid(data) {
		fallback = charmap.Windows1250.NewDecoder()
	}

	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(fallback)))
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}
	return out, nil
}

// detectDelimiter picks the candidate occurring most often in the header line.
// Ties go to the earlier candidate; no candidate at all means a comma.
func detectDelimiter(text []byte) rune {
	line := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}

	best, bestCount := ',', 0
	for _, c := range delimiterCandidates {
		if n := bytes.Count(line, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// readDelimited parses delimited text into rows. Zero-length input yields no rows.
func readDelimited(data []byte) ([][]string, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = detectDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read delimited: %w", err)
		}
		rows = append(rows, rec)
	}

	return rows, nil
}
