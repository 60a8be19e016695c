package parsers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first sheet of a workbook.
type XLSXParser struct{}

// NewXLSXParser creates a new XLSX parser.
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse returns the data rows of the first sheet. Cell values are read raw so numbers are not
// passed through the workbook's display format.
func (p *XLSXParser) Parse(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "zip: not a valid zip file") {
			err = fmt.Errorf("%w (hint: CSV exports need a .csv extension)", err)
		}
		return nil, &MalformedFileError{Format: "xlsx", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &MalformedFileError{Format: "xlsx", Err: errors.New("workbook has no sheets")}
	}

	sheetName := sheets[0]
	grid, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &MalformedFileError{Format: "xlsx", Err: fmt.Errorf("read sheet %q: %w", sheetName, err)}
	}

	return rowsToRawRows(grid), nil
}
