package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta el código 23505 (unique_violation) de PostgreSQL.
// Los repositorios lo traducen al error de dominio que corresponda: nombre
// duplicado en catálogo, email registrado, jornada ya cerrada.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// Errores envueltos fuera de la jerarquía de pgconn conservan el código
	// en el texto.
	return strings.Contains(err.Error(), "23505")
}
