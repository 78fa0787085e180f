// Package schema defines the per-entity field contracts for bulk imports.
//
// Each of the five entity types (usuarios, reportes, categorias, roles,
// estados) has a fixed, ordered list of field definitions. Callers use the
// field list both to validate incoming records and to generate input
// templates. The package has no dependencies on the rest of the pipeline.
package schema

import "fmt"

// EntityType identifies which field schema applies to an import.
type EntityType string

const (
	EntityUsuarios   EntityType = "usuarios"
	EntityReportes   EntityType = "reportes"
	EntityCategorias EntityType = "categorias"
	EntityRoles      EntityType = "roles"
	EntityEstados    EntityType = "estados"
)

// EntityTypes returns all supported entity types in display order.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityUsuarios,
		EntityReportes,
		EntityCategorias,
		EntityRoles,
		EntityEstados,
	}
}

// SchemaError reports an entity type with no registered schema.
// Unknown types are a caller configuration error and fail hard rather
// than silently validating against an empty field list.
type SchemaError struct {
	Entity string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unknown entity type %q", e.Entity)
}

// ParseEntityType validates a raw entity type string.
func ParseEntityType(s string) (EntityType, error) {
	et := EntityType(s)
	if _, ok := registry[et]; !ok {
		return "", &SchemaError{Entity: s}
	}
	return et, nil
}

// FieldType is the expected primitive type for a field's values.
type FieldType int

const (
	FieldString FieldType = iota
	FieldNumber
	FieldBool
	FieldDate
	FieldEmail
	FieldObject
)

// Field defines the contract for one attribute of an entity type.
type Field struct {
	Key      string // Column header / JSON key
	Label    string // Display name
	Required bool
	Type     FieldType

	// Validate applies a custom rule to a present value.
	// It returns an empty string when the value is acceptable.
	Validate func(Value) string

	// Example is a sample value used when generating input templates.
	Example string
}

// registry maps each entity type to its ordered field list.
// Key order is significant for display and template generation only.
var registry = map[EntityType][]Field{
	EntityUsuarios:   usuariosFields,
	EntityReportes:   reportesFields,
	EntityCategorias: categoriasFields,
	EntityRoles:      rolesFields,
	EntityEstados:    estadosFields,
}

// Fields returns the ordered field definitions for an entity type.
// An unrecognized type yields a *SchemaError.
func Fields(et EntityType) ([]Field, error) {
	fields, ok := registry[et]
	if !ok {
		return nil, &SchemaError{Entity: string(et)}
	}
	return fields, nil
}
