package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommodityType representa un tipo de producto que el acopio compra por peso
// (ej. una categoría de cangrejo). Pertenece a un único acopio (DepotID).
// Deleted marca retiro lógico: el tipo deja de ser seleccionable para compras
// nuevas pero las compras históricas siguen referenciándolo.
type CommodityType struct {
	ID         string
	DepotID    string
	Name       string // único por acopio entre los no retirados
	PricePerKg decimal.Decimal
	Deleted    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
