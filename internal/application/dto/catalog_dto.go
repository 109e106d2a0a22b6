package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCommodityTypeRequest entrada para crear un tipo de producto.
type CreateCommodityTypeRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

// UpdateCommodityTypeRequest entrada para renombrar o reajustar precio.
type UpdateCommodityTypeRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	PricePerKg *decimal.Decimal `json:"price_per_kg"`
}

// CommodityTypeResponse salida de un tipo de producto.
type CommodityTypeResponse struct {
	ID         string          `json:"id"`
	DepotID    string          `json:"depot_id"`
	Name       string          `json:"name"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CommodityTypeListResponse lista de tipos de un acopio.
type CommodityTypeListResponse struct {
	Items []CommodityTypeResponse `json:"items"`
}

// CommodityTypesByDepotResponse vista admin: tipos activos agrupados por acopio.
type CommodityTypesByDepotResponse struct {
	Depots map[string][]CommodityTypeResponse `json:"depots"`
}
