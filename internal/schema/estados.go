package schema

// estadosFields defines the import contract for report states.
var estadosFields = []Field{
	{Key: "nombre", Label: "Nombre", Required: true, Type: FieldString, Example: "En revisión"},
	{Key: "descripcion", Label: "Descripción", Type: FieldString, Example: "El reporte está siendo evaluado"},
	{Key: "color", Label: "Color", Type: FieldString, Validate: hexColor, Example: "#3b82f6"},
	{Key: "activo", Label: "Activo", Type: FieldBool, Example: "true"},
	{Key: "orden", Label: "Orden", Type: FieldNumber, Example: "2"},
}
