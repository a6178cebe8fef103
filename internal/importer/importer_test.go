package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Name,Length,Width\nsofa,800,2000\nbed,2000,1600\n", ','},
		{"semicolon", "Name;Length;Width\nsofa;800;2000\nbed;2000;1600\n", ';'},
		{"tab", "Name\tLength\tWidth\nsofa\t800\t2000\nbed\t2000\t1600\n", '\t'},
		{"pipe", "Name|Length|Width\nsofa|800|2000\nbed|2000|1600\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q delimiter, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Name", "Length", "Width", "Quantity"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Length: 1, Width: 2, Quantity: 3}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"ITEM", "Depth", "W", "Pcs"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Length: 1, Width: 2, Quantity: 3}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Width", "Qty", "Length", "Label"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 3, Length: 2, Width: 0, Quantity: 1}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"sofa", "800", "2000"})

	if isHeader {
		t.Error("expected no header to be detected")
	}
	want := ColumnMapping{Name: 0, Length: 1, Width: 2, Quantity: 3}
	if mapping != want {
		t.Errorf("expected positional mapping %+v, got %+v", want, mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Name,Length,Width,Qty\nsofa,800,2000,1\nchair,450,450,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	if result.Items[0].Name != "sofa" || result.Items[0].Length != 800 || result.Items[0].Width != 2000 {
		t.Errorf("unexpected first item: %+v", result.Items[0])
	}
	if result.Items[1].Name != "chair-1" || result.Items[2].Name != "chair-2" {
		t.Errorf("expected numbered copies, got %q and %q", result.Items[1].Name, result.Items[2].Name)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("sofa,800,2000\nbed,2000,1600\n"), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[1].Name != "bed" || result.Items[1].Length != 2000 || result.Items[1].Width != 1600 {
		t.Errorf("unexpected second item: %+v", result.Items[1])
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name;Length;Width\nsofa;800;2000\n"), ';')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid length", "Name,Length,Width\nsofa,abc,2000\n"},
		{"missing width", "Name,Length,Width\nsofa,800,\n"},
		{"negative", "Name,Length,Width\nsofa,-800,2000\n"},
		{"zero quantity", "Name,Length,Width,Qty\nsofa,800,2000,0\n"},
		{"invalid quantity", "Name,Length,Width,Qty\nsofa,800,2000,two\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ImportCSVFromReader(strings.NewReader(tt.data), ',')
			if len(result.Errors) != 1 {
				t.Errorf("expected 1 error, got %v", result.Errors)
			}
			if len(result.Items) != 0 {
				t.Errorf("expected no items, got %d", len(result.Items))
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Name,Length,Width\nsofa,800,2000\nbad,x,100\nbed,2000,1600\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Errorf("expected 2 valid items, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Line 3") {
		t.Errorf("expected one error on Line 3, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyRowsAndNames(t *testing.T) {
	data := "Name,Length,Width\n,800,2000\n,,\nlamp,50,50\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Name != "item-1" {
		t.Errorf("expected generated name 'item-1', got %q", result.Items[0].Name)
	}
}

func TestImportCSVFromReader_DuplicateNames(t *testing.T) {
	data := "Name,Length,Width\nshelf,400,200\nshelf,300,200\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Duplicate") {
		t.Errorf("expected duplicate error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Qty\nsofa,2000,1\n"), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Length") {
		t.Errorf("expected missing Length error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_WhitespaceAndDecimals(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(" desk , 600.5 , 1200.25 \n"), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	it := result.Items[0]
	if it.Name != "desk" || it.Length != 600.5 || it.Width != 1200.25 {
		t.Errorf("unexpected item: %+v", it)
	}
}

// ─── File-based Tests ──────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.csv")
	if err := os.WriteFile(path, []byte("Name;Length;Width\nsofa;800;2000\nbed;2000;1600\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(result.Items))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/items.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "items.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Length", "Width", "Qty"},
		{"wardrobe", 600, 1800, 1},
		{"nightstand", 400, 450, 2},
	})

	result := ImportExcel(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	if result.Items[0].Name != "wardrobe" || result.Items[0].Width != 1800 {
		t.Errorf("unexpected first item: %+v", result.Items[0])
	}
}

func TestImportExcel_ReorderedColumns(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Width", "Length", "Item"},
		{1800, 600, "wardrobe"},
	})

	result := ImportExcel(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	it := result.Items[0]
	if it.Name != "wardrobe" || it.Length != 600 || it.Width != 1800 {
		t.Errorf("unexpected item: %+v", it)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/items.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportItems_DispatchesByExtension(t *testing.T) {
	xlsx := createTestExcel(t, [][]interface{}{
		{"Name", "Length", "Width"},
		{"desk", 600, 1200},
	})
	if got := ImportItems(xlsx); len(got.Items) != 1 {
		t.Errorf("expected 1 item from xlsx, got %d (%v)", len(got.Items), got.Errors)
	}

	csvPath := filepath.Join(t.TempDir(), "items.txt")
	if err := os.WriteFile(csvPath, []byte("desk,600,1200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := ImportItems(csvPath); len(got.Items) != 1 {
		t.Errorf("expected 1 item from csv, got %d (%v)", len(got.Items), got.Errors)
	}
}
