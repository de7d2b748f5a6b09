package domain

import (
	"strconv"
	"strings"
)

const (
	minBinRow = 10
	maxBinRow = 99
	minBinBay = 0
	maxBinBay = 99
)

// Immutable (row, bay) position of a storage bin.
type BinCoordinate struct {
	Row int `json:"row"`
	Bay int `json:"bay"`
}

// DecodeBin parses a storage bin code into its row and bay.
//
// Delimited codes ("13-01-01-01", "13 01 01 01") take the first two segments
// as row and bay. Undelimited digit runs ("13010101") take the first two
// digits as row and the next two as bay and must fall inside the physical
// 2-digit bounds. Anything else is unknown.
func DecodeBin(code string) (BinCoordinate, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return BinCoordinate{}, false
	}

	segments := strings.FieldsFunc(code, isBinDelimiter)
	if len(segments) >= 2 {
		row, rowErr := strconv.Atoi(segments[0])
		bay, bayErr := strconv.Atoi(segments[1])
		if rowErr == nil && bayErr == nil {
			return BinCoordinate{Row: row, Bay: bay}, true
		}
	}

	digits := strings.Join(segments, "")
	if len(digits) < 4 || !isDigits(digits) {
		return BinCoordinate{}, false
	}

	// Both are two ASCII digits, so Atoi cannot fail here.
	row, _ := strconv.Atoi(digits[0:2])
	bay, _ := strconv.Atoi(digits[2:4])
	if row < minBinRow || row > maxBinRow || bay < minBinBay || bay > maxBinBay {
		return BinCoordinate{}, false
	}

	return BinCoordinate{Row: row, Bay: bay}, true
}

func isBinDelimiter(r rune) bool {
	return r == '-' || r == ' '
}
