package ingest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var zipMagic = []byte("PK\x03\x04")

func isWorkbook(name string, data []byte) bool {
	if bytes.HasPrefix(data, zipMagic) {
		return true
	}
	return hasExt(name, ".xlsx", ".xlsm")
}

// readWorkbook returns the rows of the first sheet. Raw cell values are used
// so that numeric identifiers and date serials are not reformatted by the
// cell style.
func readWorkbook(data []byte) (_ [][]string, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("open workbook: no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
