package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleDepot = "depot"
)

// User representa una cuenta del sistema. Una cuenta con rol depot ES el
// acopio: su ID es el DepotID que escopa catálogo, compras y resúmenes.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, depot
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
