// Package importer implements the bulk import pipeline: file reading,
// schema-driven validation, the validate/commit two-phase protocol, and
// result aggregation. It has no UI dependencies and is invoked
// programmatically by the web layer.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/elias3446/reportes-ciudadanos/internal/schema"
)

// Format identifies the declared input file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a raw format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", &ParseError{Format: Format(s), Err: fmt.Errorf("unsupported format %q", s)}
	}
}

// ParseError reports a file that could not be interpreted as its declared
// format. It is fatal to the whole run: no partial records are produced.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Record is one loosely typed row of an import file. RowIndex is the
// 0-based position among non-blank data rows and stays stable for the
// lifetime of the run, so errors can be correlated back to the source.
type Record struct {
	RowIndex int                     `json:"rowIndex"`
	Values   map[string]schema.Value `json:"values"`
}

// ReadRecords parses an import file into ordered records, decoding each
// cell toward its declared field type. Any failure to interpret the file
// as the declared format is a *ParseError.
func ReadRecords(r io.Reader, format Format, fields []schema.Field) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Format: format, Err: fmt.Errorf("read file: %w", err)}
	}
	data = sanitizeUTF8(data)

	switch format {
	case FormatCSV:
		return readCSV(data, fields)
	case FormatJSON:
		return readJSON(data, fields)
	default:
		return nil, &ParseError{Format: format, Err: fmt.Errorf("unsupported format %q", format)}
	}
}

// fieldTypes maps field keys to their declared types for cell decoding.
// Columns not covered by the schema are decoded as plain strings.
func fieldTypes(fields []schema.Field) map[string]schema.FieldType {
	types := make(map[string]schema.FieldType, len(fields))
	for _, f := range fields {
		types[f.Key] = f.Type
	}
	return types
}

// readCSV parses CSV content. The first line is the header; every
// following row is matched positionally to the header. Rows whose cells
// are all empty are skipped, and RowIndex counts the surviving data rows,
// not raw file lines.
func readCSV(data []byte, fields []schema.Field) ([]Record, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Format: FormatCSV, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Format: FormatCSV, Err: fmt.Errorf("empty file")}
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = cleanCell(h)
	}

	types := fieldTypes(fields)
	var records []Record

	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		values := make(map[string]schema.Value, len(header))
		for i, key := range header {
			if key == "" || i >= len(row) {
				continue
			}
			values[key] = schema.Coerce(cleanCell(row[i]), types[key])
		}

		records = append(records, Record{RowIndex: len(records), Values: values})
	}

	return records, nil
}

// readJSON parses a JSON array of objects.
func readJSON(data []byte, fields []schema.Field) ([]Record, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, &ParseError{Format: FormatJSON, Err: fmt.Errorf("expected a JSON array of objects: %w", err)}
	}

	types := fieldTypes(fields)
	records := make([]Record, 0, len(rows))

	for i, row := range rows {
		values := make(map[string]schema.Value, len(row))
		for key, raw := range row {
			v, err := valueFromJSON(raw, types[key])
			if err != nil {
				return nil, &ParseError{Format: FormatJSON, Err: fmt.Errorf("row %d, field %q: %w", i, key, err)}
			}
			values[key] = v
		}
		records = append(records, Record{RowIndex: i, Values: values})
	}

	return records, nil
}

// valueFromJSON converts one JSON value to a schema.Value, coercing
// strings toward the declared field type. Nested objects and arrays are
// carried as their JSON text.
func valueFromJSON(raw json.RawMessage, ft schema.FieldType) (schema.Value, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return schema.Null(), err
	}

	switch val := v.(type) {
	case nil:
		return schema.Null(), nil
	case string:
		return schema.Coerce(val, ft), nil
	case float64:
		return schema.Number(val), nil
	case bool:
		return schema.Bool(val), nil
	default:
		return schema.String(string(bytes.TrimSpace(raw))), nil
	}
}

// cleanCell strips surrounding whitespace and common CSV artifacts
// (UTF-8 BOM, Excel formula prefix ="value").
func cleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return s
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the replacement
// character so later stages can rely on valid strings.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
