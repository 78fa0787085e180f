package schema

// usuariosFields defines the import contract for user accounts.
var usuariosFields = []Field{
	{Key: "nombre", Label: "Nombre", Required: true, Type: FieldString, Example: "Ana"},
	{Key: "apellido", Label: "Apellido", Required: true, Type: FieldString, Example: "López"},
	{Key: "email", Label: "Correo electrónico", Required: true, Type: FieldEmail, Validate: validEmail, Example: "ana@ejemplo.com"},
	{Key: "password", Label: "Contraseña", Required: true, Type: FieldString, Validate: minLength(6), Example: "secreta1"},
	{Key: "estado", Label: "Estado", Required: true, Type: FieldString, Validate: oneOf("activo", "inactivo", "bloqueado"), Example: "activo"},
	{Key: "tipo", Label: "Tipo de usuario", Required: true, Type: FieldString, Validate: oneOf("admin", "usuario"), Example: "usuario"},
	{Key: "rolId", Label: "Rol", Required: true, Type: FieldNumber, Example: "2"},
}
