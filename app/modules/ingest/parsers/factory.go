package parsers

import (
	"errors"
	"fmt"
	"strings"
)

// Parser decodes an uploaded file into RawRows, preserving source order.
type Parser interface {
	Parse(data []byte) ([]RawRow, error)
}

// ParserFactory picks a parser for a file name.
type ParserFactory interface {
	GetParser(filename string) (Parser, error)
}

// Factory creates the appropriate parser based on file extension.
type Factory struct{}

// NewFactory creates a new parser factory.
func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the parser for the given file name. Unsupported extensions are reported as
// a MalformedFileError since the upload cannot be read as a sheet.
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(getFileExtension(filename))

	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx", ".xlsm":
		return NewXLSXParser(), nil
	case ".xls":
		return nil, &MalformedFileError{Format: "xls", Err: errors.New("legacy .xls workbooks are not supported; save the sheet as .xlsx or .csv")}
	default:
		return nil, &MalformedFileError{Err: fmt.Errorf("unsupported file type %q (must be .xlsx or .csv)", ext)}
	}
}

// Parse resolves a parser for filename through factory and runs it.
func Parse(factory ParserFactory, filename string, data []byte) ([]RawRow, error) {
	p, err := factory.GetParser(filename)
	if err != nil {
		return nil, err
	}
	return p.Parse(data)
}

func getFileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return ""
	}
	return filename[idx:]
}
