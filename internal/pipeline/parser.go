package pipeline

import (
	"strings"
)

// Record is one data row keyed by header name.
type Record map[string]string

// Get returns the value under key, or "" when the column is missing.
func (r Record) Get(key string) string {
	return r[key]
}

// Table is parsed delimited text: the header row and the data rows in
// source order.
type Table struct {
	Header []string
	Rows   [][]string
}

// Parse splits text into lines and fields. The first line is always the
// header; blank data lines are skipped.
func Parse(text string) Table {
	lines := strings.Split(text, "\n")

	table := Table{Header: ParseLine(lines[0])}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		table.Rows = append(table.Rows, ParseLine(line))
	}
	return table
}

// Records maps every data row onto the header. Missing trailing fields
// become "", extra fields are dropped. Rows are never rejected.
func (t Table) Records() []Record {
	return RecordsFromRows(t.Header, t.Rows)
}

// RecordsFromRows builds records from an already split header and rows.
// Sources that do not go through the text parser (workbooks, query
// results) use it to get the same missing-field behaviour.
func RecordsFromRows(header []string, rows [][]string) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// ParseRecords is Parse followed by Records.
func ParseRecords(text string) []Record {
	return Parse(text).Records()
}

// ParseLine splits one line on commas that are outside double quotes.
//
// Every '"' toggles the quoted state and is itself dropped, so a doubled
// quote inside a quoted field ("") is not unescaped; it simply closes and
// reopens the quote. After splitting, each field is trimmed and loses one
// pair of enclosing quotes if both ends still carry one.
func ParseLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())

	for i, value := range fields {
		fields[i] = cleanField(value)
	}
	return fields
}

func cleanField(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	return value
}
