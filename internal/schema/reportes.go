package schema

// reportesFields defines the import contract for citizen issue reports.
var reportesFields = []Field{
	{Key: "titulo", Label: "Título", Required: true, Type: FieldString, Example: "Bache en la avenida"},
	{Key: "descripcion", Label: "Descripción", Required: true, Type: FieldString, Example: "Bache profundo frente al número 42"},
	{Key: "categoriaId", Label: "Categoría", Required: true, Type: FieldNumber, Example: "1"},
	{Key: "estadoId", Label: "Estado", Required: true, Type: FieldNumber, Example: "1"},
	{Key: "prioridad", Label: "Prioridad", Type: FieldString, Validate: oneOf("alta", "media", "baja"), Example: "media"},
	{Key: "latitud", Label: "Latitud", Type: FieldNumber, Validate: numberBetween(-90, 90), Example: "19.4326"},
	{Key: "longitud", Label: "Longitud", Type: FieldNumber, Validate: numberBetween(-180, 180), Example: "-99.1332"},
	{Key: "direccion", Label: "Dirección", Type: FieldString, Example: "Av. Central 42"},
	{Key: "asignadoA", Label: "Asignado a", Type: FieldString, Example: "ana@ejemplo.com"},
	{Key: "fechaIncidente", Label: "Fecha del incidente", Type: FieldDate, Example: "2024-01-15"},
}
