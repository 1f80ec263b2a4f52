package sources

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dvloznov/bankview/internal/pipeline"
	"github.com/xuri/excelize/v2"
)

// IsWorkbook reports whether data starts with the ZIP header every .xlsx
// file carries.
func IsWorkbook(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// WorkbookRecords reads one sheet of an XLSX workbook. The first row is the
// header; cells are trimmed. An empty sheet name selects the first sheet.
func WorkbookRecords(data []byte, sheet string) ([]pipeline.Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("WorkbookRecords: open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("WorkbookRecords: no sheets found")
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("WorkbookRecords: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []pipeline.Record{}, nil
	}

	header := trimAll(rows[0])
	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		row = trimAll(row)
		if isBlank(row) {
			continue
		}
		body = append(body, row)
	}
	return pipeline.RecordsFromRows(header, body), nil
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
