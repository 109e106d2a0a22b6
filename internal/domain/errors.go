package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	// ErrReferenced bloquea el retiro de una entidad de catálogo mientras
	// existan compras que la referencien.
	ErrReferenced = errors.New("recurso referenciado por compras existentes")
	// ErrTooOld indica que la ventana de gracia para borrar un resumen diario expiró.
	ErrTooOld = errors.New("la ventana de gracia para borrar expiró")

	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
