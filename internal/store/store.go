// Package store provides the entity-store collaborators that persist
// records the import pipeline has validated. Two implementations share
// the same contract: an in-memory store for development and tests, and a
// PostgreSQL store for real deployments.
package store

import "github.com/elias3446/reportes-ciudadanos/internal/schema"

// naturalKey returns the field whose value must be unique for an entity
// type, or "" when duplicates are allowed.
func naturalKey(entity schema.EntityType) string {
	switch entity {
	case schema.EntityUsuarios:
		return "email"
	case schema.EntityCategorias, schema.EntityRoles, schema.EntityEstados:
		return "nombre"
	default:
		return ""
	}
}
