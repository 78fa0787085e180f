package importer

// validate.go applies the per-entity field schema to parsed records.
//
// Every field of every record is checked, in field-definition order:
// required presence first, then type coercibility, then the field's custom
// rule. All errors are collected rather than stopping at the first one, so
// a preview can show every problem of a row at once. The engine is pure
// and never mutates its inputs.

import (
	"fmt"
	"strings"

	"github.com/elias3446/reportes-ciudadanos/internal/schema"
)

// FieldError describes one field-level problem on one record. It is data,
// not a Go error: many may reference the same row, one per offending field.
type FieldError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateRecords checks every record against the field definitions and
// returns all field errors found.
func ValidateRecords(records []Record, fields []schema.Field) []FieldError {
	var errs []FieldError
	for _, rec := range records {
		errs = append(errs, ValidateRecord(rec, fields)...)
	}
	return errs
}

// ValidateRecord checks a single record. For each field: a missing, null
// or empty-string value on a required field yields a required error and
// skips the remaining checks for that field; present values are checked
// for type coercibility and then against the field's custom rule.
func ValidateRecord(rec Record, fields []schema.Field) []FieldError {
	var errs []FieldError

	for _, f := range fields {
		v := rec.Values[f.Key]

		if v.IsEmpty() {
			if f.Required {
				errs = append(errs, FieldError{Row: rec.RowIndex, Field: f.Key, Message: "es requerido"})
			}
			continue
		}

		if msg := typeMessage(v, f.Type); msg != "" {
			errs = append(errs, FieldError{Row: rec.RowIndex, Field: f.Key, Message: msg})
		}

		if f.Validate != nil {
			if msg := f.Validate(v); msg != "" {
				errs = append(errs, FieldError{Row: rec.RowIndex, Field: f.Key, Message: msg})
			}
		}
	}

	return errs
}

// typeMessage checks that a present value is coercible to the declared
// type. String, email and object fields have no built-in check; email
// format is entirely the custom rule's concern.
func typeMessage(v schema.Value, ft schema.FieldType) string {
	switch ft {
	case schema.FieldNumber:
		if _, ok := v.AsNumber(); !ok {
			return "debe ser un número"
		}
	case schema.FieldBool:
		if _, ok := v.AsBool(); !ok {
			return "debe ser un booleano (true/false/1/0)"
		}
	case schema.FieldDate:
		if _, ok := v.AsDate(); !ok {
			return "debe ser una fecha válida"
		}
	}
	return ""
}

// ErrorsByRow groups field errors by row index.
func ErrorsByRow(errs []FieldError) map[int][]FieldError {
	byRow := make(map[int][]FieldError)
	for _, e := range errs {
		byRow[e.Row] = append(byRow[e.Row], e)
	}
	return byRow
}

// joinErrors builds the single failure reason for a record from all of
// its field errors. Errors arrive in field-definition order and keep it.
func joinErrors(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}
