package settlement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/settlement"
)

func item(typeID string, weight, pricePerKg float64) entity.PurchaseItem {
	w := decimal.NewFromFloat(weight)
	p := decimal.NewFromFloat(pricePerKg)
	return entity.PurchaseItem{
		CommodityTypeID: typeID,
		Weight:          w,
		PricePerKg:      p,
		Cost:            w.Mul(p),
	}
}

func TestAggregate_SinCompras_ResultadoVacio(t *testing.T) {
	details, total := settlement.Aggregate(nil)

	assert.Empty(t, details)
	assert.True(t, total.IsZero(), "el total del resumen vacío debe ser cero")
}

// Las líneas del mismo tipo se funden en un solo detalle sumando peso y
// costo, aunque vengan de compras distintas.
func TestAggregate_AgrupaPorTipo(t *testing.T) {
	purchases := []*entity.Purchase{
		{Items: []entity.PurchaseItem{item("tipo-a", 10, 100), item("tipo-b", 2, 50)}},
		{Items: []entity.PurchaseItem{item("tipo-a", 5, 100)}},
	}

	details, total := settlement.Aggregate(purchases)

	require.Len(t, details, 2)
	assert.Equal(t, "tipo-a", details[0].CommodityTypeID)
	assert.True(t, details[0].TotalWeight.Equal(decimal.NewFromInt(15)),
		"peso de tipo-a: 10 + 5 = 15")
	assert.True(t, details[0].TotalCost.Equal(decimal.NewFromInt(1500)),
		"costo de tipo-a: 1000 + 500 = 1500")

	assert.Equal(t, "tipo-b", details[1].CommodityTypeID)
	assert.True(t, details[1].TotalCost.Equal(decimal.NewFromInt(100)))

	assert.True(t, total.Equal(decimal.NewFromInt(1600)),
		"el total es la suma de los costos agrupados")
}

// El orden de los detalles es el de primera aparición del tipo en las
// compras, no alfabético ni arbitrario.
func TestAggregate_OrdenDePrimeraAparicion(t *testing.T) {
	purchases := []*entity.Purchase{
		{Items: []entity.PurchaseItem{item("zeta", 1, 10)}},
		{Items: []entity.PurchaseItem{item("alfa", 1, 10), item("zeta", 1, 10)}},
	}

	details, _ := settlement.Aggregate(purchases)

	require.Len(t, details, 2)
	assert.Equal(t, "zeta", details[0].CommodityTypeID)
	assert.Equal(t, "alfa", details[1].CommodityTypeID)
}

// Los costos agrupados usan el precio congelado de cada línea, no el precio
// vigente del catálogo: dos líneas del mismo tipo pueden tener precios
// distintos si hubo un reajuste entre medio.
func TestAggregate_RespetaPreciosCongelados(t *testing.T) {
	purchases := []*entity.Purchase{
		{Items: []entity.PurchaseItem{item("tipo-a", 10, 100)}}, // antes del reajuste
		{Items: []entity.PurchaseItem{item("tipo-a", 10, 120)}}, // después
	}

	details, total := settlement.Aggregate(purchases)

	require.Len(t, details, 1)
	assert.True(t, details[0].TotalCost.Equal(decimal.NewFromInt(2200)),
		"1000 al precio viejo + 1200 al nuevo")
	assert.True(t, total.Equal(decimal.NewFromInt(2200)))
}
