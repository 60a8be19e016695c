package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
)

// CSVParser reads comma-separated exports.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse returns the data rows of a CSV file. Ragged lines are allowed; a line shorter than
// the header leaves the trailing columns absent.
func (p *CSVParser) Parse(data []byte) ([]RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &MalformedFileError{Format: "csv", Err: err}
		}
		records = append(records, record)
	}

	return rowsToRawRows(records), nil
}
