package parsers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseExcel loads a workbook from raw bytes, locates the named worksheet
// and scans for the row whose first cell equals headerMarker. Rows above the
// marker (titles, legends) are discarded; the marker row becomes the header
// and everything below it the data rows.
func ParseExcel(data []byte, sheetName, headerMarker string) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, newParseError("excel", "failed to open workbook: %v", err)
	}
	defer f.Close()

	found := false
	for _, s := range f.GetSheetList() {
		if s == sheetName {
			found = true
			break
		}
	}
	if !found {
		return nil, newParseError("excel", "sheet %q not found (available: %v)", sheetName, f.GetSheetList())
	}

	all, err := f.GetRows(sheetName)
	if err != nil {
		return nil, newParseError("excel", "failed to read sheet %q: %v", sheetName, err)
	}

	headerIdx := -1
	for i, row := range all {
		if len(row) > 0 && strings.TrimSpace(row[0]) == headerMarker {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, newParseError("excel", "header row with marker %q not found in sheet %q", headerMarker, sheetName)
	}

	header := all[headerIdx]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == "" {
			header[i] = fmt.Sprintf("Column_%d", i+1)
		}
	}

	rows := make([]Row, 0, len(all)-headerIdx-1)
	for _, raw := range all[headerIdx+1:] {
		if isEmptyRow(raw) {
			continue
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(raw) {
				row[col] = strings.TrimSpace(raw[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
