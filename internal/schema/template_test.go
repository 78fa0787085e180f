package schema

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
)

func TestCSVTemplate(t *testing.T) {
	for _, et := range EntityTypes() {
		t.Run(string(et), func(t *testing.T) {
			data, err := CSVTemplate(et)
			if err != nil {
				t.Fatalf("CSVTemplate(%s) error = %v", et, err)
			}

			rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
			if err != nil {
				t.Fatalf("template is not valid CSV: %v", err)
			}
			if len(rows) != 2 {
				t.Fatalf("template has %d rows, want header + example", len(rows))
			}

			fields, _ := Fields(et)
			if len(rows[0]) != len(fields) {
				t.Fatalf("header has %d columns, want %d", len(rows[0]), len(fields))
			}
			for i, f := range fields {
				if rows[0][i] != f.Key {
					t.Errorf("header[%d] = %q, want %q", i, rows[0][i], f.Key)
				}
				if rows[1][i] == "" {
					t.Errorf("example value for %q is empty", f.Key)
				}
			}
		})
	}
}

func TestJSONTemplate(t *testing.T) {
	data, err := JSONTemplate(EntityUsuarios)
	if err != nil {
		t.Fatalf("JSONTemplate error = %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("template is not a JSON array of objects: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("template has %d objects, want 1", len(rows))
	}

	obj := rows[0]
	if _, ok := obj["email"].(string); !ok {
		t.Errorf("email example = %T, want string", obj["email"])
	}
	if _, ok := obj["rolId"].(float64); !ok {
		t.Errorf("rolId example = %T, want number", obj["rolId"])
	}
}

func TestTemplates_UnknownEntity(t *testing.T) {
	if _, err := CSVTemplate(EntityType("facturas")); err == nil {
		t.Error("CSVTemplate(facturas) = nil error, want *SchemaError")
	}
	if _, err := JSONTemplate(EntityType("facturas")); err == nil {
		t.Error("JSONTemplate(facturas) = nil error, want *SchemaError")
	}
}
