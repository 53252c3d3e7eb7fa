package tabular

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, "name,age,city\nalice,30,Berlin\nbob,25,Madrid\n")

	table, err := Load(path, TypeCSV)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if table.ColumnCount() != 3 {
		t.Errorf("ColumnCount() = %d, want 3", table.ColumnCount())
	}
	if table.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", table.RowCount())
	}
	if table.Columns[0] != "name" || table.Columns[2] != "city" {
		t.Errorf("Columns = %v, want [name age city]", table.Columns)
	}
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "name,age\n")

	table, err := Load(path, TypeCSV)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0", table.RowCount())
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n1,2,3,4\n")

	table, err := Load(path, TypeCSV)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.ColumnCount() != 3 {
		t.Errorf("ColumnCount() = %d, want 3", table.ColumnCount())
	}
	if table.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", table.RowCount())
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	if _, err := Load(path, TypeCSV); err == nil {
		t.Error("Load() on empty file expected error, got nil")
	}
}

func TestLoadUnsupportedType(t *testing.T) {
	if _, err := Load("whatever.json", "json"); err == nil {
		t.Error("Load() with unsupported type expected error, got nil")
	}
}

func TestLoadExcelOnNonSpreadsheet(t *testing.T) {
	// A plain-text file with an .xlsx tag must fail, not panic.
	path := writeTempCSV(t, "not,a,workbook\n")

	if _, err := Load(path, TypeXLSX); err == nil {
		t.Error("Load() on fake xlsx expected error, got nil")
	}
}

func TestSupportedType(t *testing.T) {
	for _, ft := range []string{TypeCSV, TypeXLSX, TypeXLS} {
		if !SupportedType(ft) {
			t.Errorf("SupportedType(%q) = false, want true", ft)
		}
	}
	if SupportedType("parquet") {
		t.Error("SupportedType(parquet) = true, want false")
	}
}

func TestTableMarkdown(t *testing.T) {
	table := &Table{
		Columns: []string{"name", "age"},
		Rows:    [][]string{{"alice", "30"}},
	}

	want := "| name | age |\n| --- | --- |\n| alice | 30 |\n"
	if got := table.Markdown(); got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}
