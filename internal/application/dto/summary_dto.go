package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryDetailResponse un grupo del resumen: totales por tipo de producto.
type SummaryDetailResponse struct {
	CommodityTypeID   string          `json:"commodity_type_id"`
	CommodityTypeName string          `json:"commodity_type_name,omitempty"`
	TotalWeight       decimal.Decimal `json:"total_weight"`
	TotalCost         decimal.Decimal `json:"total_cost"`
}

// DailySummaryResponse salida de un cierre de jornada. Un resultado vacío
// (details: [], total_amount: 0, sin ID) indica jornada sin compras y no
// está persistido.
type DailySummaryResponse struct {
	ID          string                  `json:"id,omitempty"`
	DepotID     string                  `json:"depot_id,omitempty"`
	Details     []SummaryDetailResponse `json:"details"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	CreatedAt   *time.Time              `json:"created_at,omitempty"`
}

// DailySummaryListResponse lista paginada de resúmenes.
type DailySummaryListResponse struct {
	Items []DailySummaryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
