package schema

import (
	"errors"
	"testing"
)

func TestFields_KnownEntities(t *testing.T) {
	for _, et := range EntityTypes() {
		t.Run(string(et), func(t *testing.T) {
			fields, err := Fields(et)
			if err != nil {
				t.Fatalf("Fields(%s) error = %v", et, err)
			}
			if len(fields) == 0 {
				t.Fatalf("Fields(%s) is empty", et)
			}

			seen := make(map[string]bool)
			for _, f := range fields {
				if f.Key == "" {
					t.Error("field with empty key")
				}
				if f.Label == "" {
					t.Errorf("field %q has no label", f.Key)
				}
				if seen[f.Key] {
					t.Errorf("duplicate field key %q", f.Key)
				}
				seen[f.Key] = true
			}
		})
	}
}

func TestFields_UnknownEntity(t *testing.T) {
	_, err := Fields(EntityType("facturas"))
	if err == nil {
		t.Fatal("Fields(facturas) = nil error, want *SchemaError")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Fields(facturas) error type = %T, want *SchemaError", err)
	}
	if schemaErr.Entity != "facturas" {
		t.Errorf("SchemaError.Entity = %q, want %q", schemaErr.Entity, "facturas")
	}
}

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{input: "usuarios", ok: true},
		{input: "reportes", ok: true},
		{input: "categorias", ok: true},
		{input: "roles", ok: true},
		{input: "estados", ok: true},
		{input: "Usuarios", ok: false},
		{input: "facturas", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			et, err := ParseEntityType(tt.input)
			if tt.ok {
				if err != nil {
					t.Fatalf("ParseEntityType(%q) error = %v", tt.input, err)
				}
				if string(et) != tt.input {
					t.Errorf("ParseEntityType(%q) = %q", tt.input, et)
				}
				return
			}
			if err == nil {
				t.Errorf("ParseEntityType(%q) = %q, want error", tt.input, et)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{input: "ana@x.com", valid: true},
		{input: "ana.lopez+tag@sub.dominio.mx", valid: true},
		{input: "not-an-email", valid: false},
		{input: "a@b", valid: false},
		{input: "a b@c.com", valid: false},
		{input: "@x.com", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			msg := validEmail(String(tt.input))
			if tt.valid && msg != "" {
				t.Errorf("validEmail(%q) = %q, want valid", tt.input, msg)
			}
			if !tt.valid && msg == "" {
				t.Errorf("validEmail(%q) = valid, want error", tt.input)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	check := oneOf("activo", "inactivo", "bloqueado")

	if msg := check(String("activo")); msg != "" {
		t.Errorf("oneOf(activo) = %q, want valid", msg)
	}
	if msg := check(String("ACTIVO")); msg != "" {
		t.Errorf("oneOf(ACTIVO) = %q, want valid (case-insensitive)", msg)
	}
	if msg := check(String("pendiente")); msg == "" {
		t.Error("oneOf(pendiente) = valid, want error")
	}
}

func TestMinLength(t *testing.T) {
	check := minLength(6)

	if msg := check(String("secret1")); msg != "" {
		t.Errorf("minLength(secret1) = %q, want valid", msg)
	}
	if msg := check(String("123")); msg == "" {
		t.Error("minLength(123) = valid, want error")
	}
	// Rune count, not byte count
	if msg := check(String("añejos")); msg != "" {
		t.Errorf("minLength(añejos) = %q, want valid", msg)
	}
}

func TestHexColor(t *testing.T) {
	if msg := hexColor(String("#3b82f6")); msg != "" {
		t.Errorf("hexColor(#3b82f6) = %q, want valid", msg)
	}
	if msg := hexColor(String("azul")); msg == "" {
		t.Error("hexColor(azul) = valid, want error")
	}
	if msg := hexColor(String("#3b82")); msg == "" {
		t.Error("hexColor(#3b82) = valid, want error")
	}
}

func TestListOf(t *testing.T) {
	check := listOf("ver_reportes", "crear_reporte", "editar_reporte")

	if msg := check(String("ver_reportes,editar_reporte")); msg != "" {
		t.Errorf("listOf = %q, want valid", msg)
	}
	if msg := check(String("ver_reportes, crear_reporte ")); msg != "" {
		t.Errorf("listOf with spaces = %q, want valid", msg)
	}
	if msg := check(String("ver_reportes,borrar_todo")); msg == "" {
		t.Error("listOf with unknown item = valid, want error")
	}
}

func TestNumberBetween(t *testing.T) {
	check := numberBetween(-90, 90)

	if msg := check(Number(19.43)); msg != "" {
		t.Errorf("numberBetween(19.43) = %q, want valid", msg)
	}
	if msg := check(Number(120)); msg == "" {
		t.Error("numberBetween(120) = valid, want error")
	}
	// Non-numeric values are the type check's concern, not this rule's
	if msg := check(String("abc")); msg != "" {
		t.Errorf("numberBetween(abc) = %q, want no message", msg)
	}
}
