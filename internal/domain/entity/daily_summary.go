package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryDetail agrega peso y costo de todas las líneas de un tipo de
// producto dentro de una jornada. Embebido en DailySummary.
type SummaryDetail struct {
	CommodityTypeID string
	TotalWeight     decimal.Decimal
	TotalCost       decimal.Decimal
}

// DailySummary es el cierre de jornada de un acopio: la agregación de todas
// sus compras dentro de un bucket de jornada, agrupadas por tipo de producto.
// BucketKey identifica el bucket y es único por acopio (a lo sumo un resumen
// por acopio por jornada). Nunca se actualiza; solo se borra dentro de la
// ventana de gracia.
type DailySummary struct {
	ID          string
	DepotID     string
	Details     []SummaryDetail
	TotalAmount decimal.Decimal // suma de los TotalCost de los detalles
	BucketKey   string
	CreatedAt   time.Time
}
