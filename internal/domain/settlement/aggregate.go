package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Acopio-api/internal/domain/entity"
)

// Aggregate agrupa todas las líneas de las compras por tipo de producto y
// suma peso y costo por grupo. Los detalles salen en orden de primera
// aparición. Devuelve también el monto total (suma de los costos agrupados).
//
// Es una función pura: no toca almacenamiento ni reloj.
func Aggregate(purchases []*entity.Purchase) ([]entity.SummaryDetail, decimal.Decimal) {
	index := make(map[string]int)
	details := make([]entity.SummaryDetail, 0)
	for _, p := range purchases {
		for _, item := range p.Items {
			i, ok := index[item.CommodityTypeID]
			if !ok {
				i = len(details)
				index[item.CommodityTypeID] = i
				details = append(details, entity.SummaryDetail{
					CommodityTypeID: item.CommodityTypeID,
					TotalWeight:     decimal.Zero,
					TotalCost:       decimal.Zero,
				})
			}
			details[i].TotalWeight = details[i].TotalWeight.Add(item.Weight)
			details[i].TotalCost = details[i].TotalCost.Add(item.Cost)
		}
	}

	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.TotalCost)
	}
	return details, total
}
