package schema

// template.go generates downloadable input templates from the field
// definitions, so a schema change automatically updates the templates.

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
)

// CSVTemplate returns a CSV template for an entity type: the header row
// followed by one example row.
func CSVTemplate(et EntityType) ([]byte, error) {
	fields, err := Fields(et)
	if err != nil {
		return nil, err
	}

	header := make([]string, len(fields))
	example := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Key
		example[i] = exampleFor(f)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write template header: %w", err)
	}
	if err := w.Write(example); err != nil {
		return nil, fmt.Errorf("write template row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush template: %w", err)
	}
	return buf.Bytes(), nil
}

// JSONTemplate returns a JSON template: an array with one example object,
// with values typed according to the field definitions.
func JSONTemplate(et EntityType) ([]byte, error) {
	fields, err := Fields(et)
	if err != nil {
		return nil, err
	}

	obj := make(map[string]any, len(fields))
	for _, f := range fields {
		v := Coerce(exampleFor(f), f.Type)
		switch v.Kind() {
		case KindNumber:
			n, _ := v.AsNumber()
			obj[f.Key] = n
		case KindBool:
			b, _ := v.AsBool()
			obj[f.Key] = b
		default:
			obj[f.Key] = v.String()
		}
	}

	return json.MarshalIndent([]any{obj}, "", "  ")
}

// exampleFor picks a sample value for a field, preferring the schema's
// own example over a generic per-type placeholder.
func exampleFor(f Field) string {
	if f.Example != "" {
		return f.Example
	}
	switch f.Type {
	case FieldNumber:
		return "1"
	case FieldBool:
		return "true"
	case FieldDate:
		return "2024-01-15"
	case FieldEmail:
		return "correo@ejemplo.com"
	default:
		return "texto"
	}
}
