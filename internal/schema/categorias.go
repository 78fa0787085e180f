package schema

// categoriasFields defines the import contract for report categories.
var categoriasFields = []Field{
	{Key: "nombre", Label: "Nombre", Required: true, Type: FieldString, Example: "Alumbrado"},
	{Key: "descripcion", Label: "Descripción", Type: FieldString, Example: "Fallas de alumbrado público"},
	{Key: "color", Label: "Color", Type: FieldString, Validate: hexColor, Example: "#f59e0b"},
	{Key: "icono", Label: "Icono", Type: FieldString, Example: "lightbulb"},
	{Key: "activo", Label: "Activo", Type: FieldBool, Example: "true"},
}
