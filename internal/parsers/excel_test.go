package parsers

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes a small workbook with title rows above the header,
// mimicking how the state formulary files are laid out.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.SetActiveSheet(idx)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseExcelSkipsRowsAboveHeaderMarker(t *testing.T) {
	data := buildWorkbook(t, "NDC", [][]interface{}{
		{"Contract Drugs List"},
		{"Updated 2025-01-01"},
		{"Product ID", "Label Name", "Generic Name"},
		{"00002143380", "HUMALOG", "INSULIN LISPRO"},
		{"00002151101", "TRULICITY", "DULAGLUTIDE"},
	})

	rows, err := ParseExcel(data, "NDC", "Product ID")
	if err != nil {
		t.Fatalf("ParseExcel: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(rows))
	}
	if rows[0]["Product ID"] != "00002143380" {
		t.Errorf("Product ID = %q", rows[0]["Product ID"])
	}
	if rows[1]["Generic Name"] != "DULAGLUTIDE" {
		t.Errorf("Generic Name = %q", rows[1]["Generic Name"])
	}
}

func TestParseExcelShortRowsPadded(t *testing.T) {
	data := buildWorkbook(t, "PDL", [][]interface{}{
		{"Drug Name", "Dosage Form", "PDL Status"},
		{"METFORMIN HCL"},
	})

	rows, err := ParseExcel(data, "PDL", "Drug Name")
	if err != nil {
		t.Fatalf("ParseExcel: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got, ok := rows[0]["PDL Status"]; !ok || got != "" {
		t.Errorf("expected short row padded with empty PDL Status, got %q (present=%v)", got, ok)
	}
}

func TestParseExcelMissingSheet(t *testing.T) {
	data := buildWorkbook(t, "NDC", [][]interface{}{
		{"Product ID"},
	})

	if _, err := ParseExcel(data, "Formulary", "Product ID"); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestParseExcelMissingHeaderMarker(t *testing.T) {
	data := buildWorkbook(t, "NDC", [][]interface{}{
		{"Some Title"},
		{"Another Row", "Data"},
	})

	if _, err := ParseExcel(data, "NDC", "Product ID"); err == nil {
		t.Error("expected error for missing header marker")
	}
}
