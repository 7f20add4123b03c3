// =============================================================================
// dzcb - CSV Parser Module
// =============================================================================
//
// This module turns CSV text into records and header-keyed tables. It knows
// nothing about the K7ABD categories; the k7abd package interprets the
// tables it produces.
//
// FEATURES:
//   - Ragged rows are accepted (short rows read as empty trailing cells)
//   - Lazy quotes, leading space trimmed from every cell
//   - Rows of blank cells are skipped but keep their place in row numbering
//   - A UTF-8 byte order mark on the first header is removed
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Row is one data row of a table.
type Row struct {
	// Number is the 1-based line of the row in the source, counting the
	// header row.
	Number int

	// Values maps header -> trimmed cell value.
	Values map[string]string
}

// Get returns the value of a column and whether the column is present.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// GetOr returns the value of a column, or def when the column is absent.
func (r Row) GetOr(column, def string) string {
	if v, ok := r.Values[column]; ok {
		return v
	}
	return def
}

// Lookup returns the value of the first present column.
func (r Row) Lookup(columns ...string) (string, bool) {
	for _, c := range columns {
		if v, ok := r.Values[c]; ok {
			return v, true
		}
	}
	return "", false
}

// Table is a parsed CSV file with a single header row.
type Table struct {
	// Source names where the table came from, for log messages.
	Source string

	// Headers contains the cleaned column headers, in file order.
	Headers []string

	// Rows contains the non-blank data rows.
	Rows []Row
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ReadRecords reads all CSV records from r.
func ReadRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	configureReader(reader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

// ParseTable reads CSV text with one header row into a Table.
func ParseTable(r io.Reader, source string) (*Table, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}
	return NewTable(records, source), nil
}

// NewTable builds a Table from raw records. The first record is the header.
// An empty record set gives an empty table.
func NewTable(records [][]string, source string) *Table {
	table := &Table{Source: source}
	if len(records) == 0 {
		return table
	}
	table.Headers = cleanHeaders(records[0])
	table.Rows = extractDataRows(records[1:], table.Headers)
	return table
}

// configureReader sets the options shared by every input file.
func configureReader(reader *csv.Reader) {
	reader.Comma = ','

	// Allow variable number of fields per row. Spreadsheet exports often
	// drop trailing empty cells.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// cleanHeaders trims header values and names empty headers by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// extractDataRows converts records to header-keyed rows. Cells past the end
// of a short row are absent from the row's map, so Get reports them missing.
func extractDataRows(records [][]string, headers []string) []Row {
	rows := make([]Row, 0, len(records))
	for i, record := range records {
		if IsRowEmpty(record) {
			continue
		}
		values := make(map[string]string, len(headers))
		for col, header := range headers {
			if col < len(record) {
				values[header] = strings.TrimSpace(record[col])
			}
		}
		// +2: one for the header, one for 1-based numbering.
		rows = append(rows, Row{Number: i + 2, Values: values})
	}
	return rows
}

// IsRowEmpty checks if a record contains only blank cells.
func IsRowEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
