package repository

import (
	"time"

	"github.com/jhoicas/Acopio-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para Purchase y sus
// líneas. Los listados pagina con limit/offset y ordenan por created_at DESC.
type PurchaseRepository interface {
	// Create persiste cabecera y líneas. Debe ser atómico frente a lectores.
	Create(purchase *entity.Purchase) error
	// GetByID devuelve la compra con líneas; (nil, nil) si no existe o no
	// pertenece al acopio.
	GetByID(id, depotID string) (*entity.Purchase, error)
	// Update reemplaza cabecera y líneas de forma atómica.
	Update(purchase *entity.Purchase) error
	// Delete borra físicamente; devuelve false si ninguna fila coincidió.
	Delete(id, depotID string) (bool, error)

	ListByDepot(depotID string, limit, offset int) ([]*entity.Purchase, error)
	ListByDepotAndTrader(depotID, traderID string, limit, offset int) ([]*entity.Purchase, error)
	// ListByDepotAndRange devuelve compras con created_at en [from, to).
	ListByDepotAndRange(depotID string, from, to time.Time, limit, offset int) ([]*entity.Purchase, error)
	// AllByDepotAndRange devuelve todas las compras del intervalo sin paginar
	// (insumo del agregador de jornada).
	AllByDepotAndRange(depotID string, from, to time.Time) ([]*entity.Purchase, error)
	// ListGroupedByDepot agrupa compras por acopio (vista admin), paginando
	// por acopio.
	ListGroupedByDepot(limit, offset int) ([]*entity.DepotPurchases, error)

	// ExistsItemWithType informa si alguna línea referencia el tipo (consulta
	// de existencia, no conteo). Guarda del retiro lógico del catálogo.
	ExistsItemWithType(commodityTypeID string) (bool, error)
	// ExistsWithTrader informa si alguna compra referencia al comerciante.
	ExistsWithTrader(traderID string) (bool, error)
}
