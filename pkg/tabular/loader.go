package tabular

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// File type tags stored on the uploaded-file record.
const (
	TypeCSV  = "csv"
	TypeXLSX = "xlsx"
	TypeXLS  = "xls"
)

// SupportedType reports whether fileType has a loader.
func SupportedType(fileType string) bool {
	switch fileType {
	case TypeCSV, TypeXLSX, TypeXLS:
		return true
	}
	return false
}

// Load reads the file at path into a Table using the loader selected by
// fileType. The first row is taken as the header.
func Load(path, fileType string) (*Table, error) {
	switch fileType {
	case TypeCSV:
		return loadCSV(path)
	case TypeXLSX, TypeXLS:
		return loadExcel(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q", fileType)
	}
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, header decides width

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse csv: empty file")
	}

	return &Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

func loadExcel(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("parse spreadsheet: no sheets")
	}

	// Only the first sheet is read; extra sheets are ignored.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("parse spreadsheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse spreadsheet: empty sheet")
	}

	return &Table{
		Columns: rows[0],
		Rows:    rows[1:],
	}, nil
}
