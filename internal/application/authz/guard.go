// Package authz implementa la guarda de acceso multi-tenant como predicado
// puro, consumido al inicio de cada operación escopada por acopio. No es
// estado global: se testea sin almacenamiento.
package authz

import "github.com/jhoicas/Acopio-api/internal/domain/entity"

// Caller describe al llamador ya autenticado (claims del token).
type Caller struct {
	ID   string
	Role string
}

// Authorize informa si el llamador puede operar sobre los datos del acopio
// indicado: debe SER ese acopio o tener rol admin. Toda operación escopada
// por acopio debe invocarla antes de tocar almacenamiento.
func Authorize(caller Caller, depotID string) bool {
	return caller.ID == depotID || caller.Role == entity.RoleAdmin
}

// IsAdmin informa si el llamador tiene rol admin (vistas agregadas de admin).
func IsAdmin(caller Caller) bool {
	return caller.Role == entity.RoleAdmin
}
