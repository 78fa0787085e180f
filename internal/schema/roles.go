package schema

// Permisos reconocidos por el sistema para la carga de roles.
var permisosValidos = []string{
	"ver_reportes",
	"crear_reporte",
	"editar_reporte",
	"eliminar_reporte",
	"gestionar_usuarios",
	"gestionar_categorias",
	"gestionar_roles",
	"gestionar_estados",
}

// rolesFields defines the import contract for roles.
var rolesFields = []Field{
	{Key: "nombre", Label: "Nombre", Required: true, Type: FieldString, Example: "Supervisor"},
	{Key: "descripcion", Label: "Descripción", Required: true, Type: FieldString, Example: "Supervisa reportes de su zona"},
	{Key: "permisos", Label: "Permisos", Required: true, Type: FieldString, Validate: listOf(permisosValidos...), Example: "ver_reportes,editar_reporte"},
	{Key: "activo", Label: "Activo", Type: FieldBool, Example: "true"},
}
