package store

// postgres.go is the PostgreSQL entity store. One insert statement per
// entity type; unique-index violations are translated into the same kind
// of per-record duplicate message the memory store produces.

import (
	"context"
	"errors"
	"fmt"

	"github.com/elias3446/reportes-ciudadanos/internal/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// PostgresStore persists entities in PostgreSQL.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore creates a store backed by the given connection.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// uniqueViolation is the PostgreSQL error code for unique-index conflicts.
const uniqueViolation = "23505"

// Create inserts a new entity row and returns its ID.
func (s *PostgresStore) Create(ctx context.Context, entity schema.EntityType, values map[string]schema.Value) (string, error) {
	var (
		id  string
		err error
	)

	switch entity {
	case schema.EntityUsuarios:
		err = s.db.QueryRow(ctx, `
			INSERT INTO usuarios (nombre, apellido, email, password, estado, tipo, rol_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id::text`,
			pgText(values["nombre"]),
			pgText(values["apellido"]),
			pgText(values["email"]),
			pgText(values["password"]),
			pgText(values["estado"]),
			pgText(values["tipo"]),
			pgInt(values["rolId"]),
		).Scan(&id)

	case schema.EntityReportes:
		err = s.db.QueryRow(ctx, `
			INSERT INTO reportes (titulo, descripcion, categoria_id, estado_id, prioridad,
				latitud, longitud, direccion, asignado_a, fecha_incidente)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id::text`,
			pgText(values["titulo"]),
			pgText(values["descripcion"]),
			pgInt(values["categoriaId"]),
			pgInt(values["estadoId"]),
			pgText(values["prioridad"]),
			pgFloat(values["latitud"]),
			pgFloat(values["longitud"]),
			pgText(values["direccion"]),
			pgText(values["asignadoA"]),
			pgDate(values["fechaIncidente"]),
		).Scan(&id)

	case schema.EntityCategorias:
		err = s.db.QueryRow(ctx, `
			INSERT INTO categorias (nombre, descripcion, color, icono, activo)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id::text`,
			pgText(values["nombre"]),
			pgText(values["descripcion"]),
			pgText(values["color"]),
			pgText(values["icono"]),
			pgBool(values["activo"]),
		).Scan(&id)

	case schema.EntityRoles:
		err = s.db.QueryRow(ctx, `
			INSERT INTO roles (nombre, descripcion, permisos, activo)
			VALUES ($1, $2, $3, $4)
			RETURNING id::text`,
			pgText(values["nombre"]),
			pgText(values["descripcion"]),
			pgText(values["permisos"]),
			pgBool(values["activo"]),
		).Scan(&id)

	case schema.EntityEstados:
		err = s.db.QueryRow(ctx, `
			INSERT INTO estados (nombre, descripcion, color, activo, orden)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id::text`,
			pgText(values["nombre"]),
			pgText(values["descripcion"]),
			pgText(values["color"]),
			pgBool(values["activo"]),
			pgInt(values["orden"]),
		).Scan(&id)

	default:
		return "", &schema.SchemaError{Entity: string(entity)}
	}

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if kf := naturalKey(entity); kf != "" {
				return "", fmt.Errorf("ya existe un registro de %s con %s %q", entity, kf, values[kf].String())
			}
			return "", fmt.Errorf("ya existe un registro de %s con esos datos", entity)
		}
		return "", fmt.Errorf("insert %s: %w", entity, err)
	}

	return id, nil
}

// Conversions from import values to pgx parameters. Empty values become
// NULL so the database applies its own defaults.

func pgText(v schema.Value) pgtype.Text {
	if v.IsEmpty() {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v.String(), Valid: true}
}

func pgInt(v schema.Value) pgtype.Int8 {
	if f, ok := v.AsNumber(); ok {
		return pgtype.Int8{Int64: int64(f), Valid: true}
	}
	return pgtype.Int8{}
}

func pgFloat(v schema.Value) pgtype.Float8 {
	if f, ok := v.AsNumber(); ok {
		return pgtype.Float8{Float64: f, Valid: true}
	}
	return pgtype.Float8{}
}

func pgBool(v schema.Value) pgtype.Bool {
	if b, ok := v.AsBool(); ok {
		return pgtype.Bool{Bool: b, Valid: true}
	}
	return pgtype.Bool{}
}

func pgDate(v schema.Value) pgtype.Date {
	if t, ok := v.AsDate(); ok {
		return pgtype.Date{Time: t, Valid: true}
	}
	return pgtype.Date{}
}
