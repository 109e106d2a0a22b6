package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest una línea solicitada: tipo y peso. El precio lo fija el
// catálogo al momento de la compra, nunca el cliente.
type PurchaseItemRequest struct {
	CommodityTypeID string          `json:"commodity_type_id" validate:"required"`
	Weight          decimal.Decimal `json:"weight"`
}

// CreatePurchaseRequest entrada para crear una compra. CreatedAt opcional
// permite retro-datar una corrección; vacío usa el instante actual.
type CreatePurchaseRequest struct {
	TraderID  string                `json:"trader_id" validate:"required"`
	Items     []PurchaseItemRequest `json:"items" validate:"required,min=1"`
	CreatedAt *time.Time            `json:"created_at"`
}

// UpdatePurchaseRequest reemplaza comerciante y líneas; el total se recalcula.
type UpdatePurchaseRequest struct {
	TraderID string                `json:"trader_id" validate:"required"`
	Items    []PurchaseItemRequest `json:"items" validate:"required,min=1"`
}

// PurchaseItemResponse una línea con el precio congelado al comprar. El tipo
// referenciado puede estar retirado: name se resuelve si aún es renderizable
// y se omite si no.
type PurchaseItemResponse struct {
	CommodityTypeID   string          `json:"commodity_type_id"`
	CommodityTypeName string          `json:"commodity_type_name,omitempty"`
	Weight            decimal.Decimal `json:"weight"`
	PricePerKg        decimal.Decimal `json:"price_per_kg"`
	Cost              decimal.Decimal `json:"cost"`
}

// PurchaseResponse salida de una compra con líneas resueltas.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	DepotID    string                 `json:"depot_id"`
	TraderID   string                 `json:"trader_id"`
	TraderName string                 `json:"trader_name,omitempty"`
	Items      []PurchaseItemResponse `json:"items"`
	TotalCost  decimal.Decimal        `json:"total_cost"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// DepotPurchasesResponse vista admin: compras agrupadas por acopio.
type DepotPurchasesResponse struct {
	DepotID   string             `json:"depot_id"`
	DepotName string             `json:"depot_name"`
	Purchases []PurchaseResponse `json:"purchases"`
}

// DepotPurchasesListResponse lista paginada de grupos por acopio.
type DepotPurchasesListResponse struct {
	Items []DepotPurchasesResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
