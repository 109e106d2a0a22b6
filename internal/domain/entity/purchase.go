package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItem es una línea de compra embebida: no tiene ciclo de vida propio.
// PricePerKg se copia del CommodityType al momento de la compra; cambios de
// precio posteriores no alteran líneas históricas.
type PurchaseItem struct {
	CommodityTypeID string
	Weight          decimal.Decimal
	PricePerKg      decimal.Decimal
	Cost            decimal.Decimal // Weight × PricePerKg, congelado al crear
}

// Purchase representa una compra del acopio a un comerciante, con una o más
// líneas. CreatedAt es autoritativo para el bucketing de jornada: por defecto
// el instante actual, o un timestamp explícito para correcciones retroactivas.
type Purchase struct {
	ID        string
	DepotID   string
	TraderID  string
	Items     []PurchaseItem
	TotalCost decimal.Decimal // suma de los costos de las líneas
	CreatedAt time.Time
	UpdatedAt time.Time
}
