package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas viven en purchase_items, ordenadas por
// position; escribir cabecera y líneas bajo la misma tx es responsabilidad
// del TxRunner.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste cabecera y líneas de la compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchases (id, depot_id, trader_id, total_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.DepotID, purchase.TraderID, purchase.TotalCost,
		purchase.CreatedAt, purchase.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return r.insertItems(ctx, purchase.ID, purchase.Items)
}

func (r *PurchaseRepo) insertItems(ctx context.Context, purchaseID string, items []entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (purchase_id, position, commodity_type_id, weight, price_per_kg, cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, item := range items {
		if _, err := r.q.Exec(ctx, query,
			purchaseID, i, item.CommodityTypeID, item.Weight, item.PricePerKg, item.Cost,
		); err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// Update reemplaza cabecera y líneas. Debe correr dentro de una tx (TxRunner)
// para que el reemplazo sea atómico frente a lectores.
func (r *PurchaseRepo) Update(purchase *entity.Purchase) error {
	ctx := context.Background()
	query := `
		UPDATE purchases SET trader_id = $3, total_cost = $4, updated_at = $5
		WHERE id = $1 AND depot_id = $2`
	if _, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.DepotID, purchase.TraderID, purchase.TotalCost, purchase.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, purchase.ID); err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	return r.insertItems(ctx, purchase.ID, purchase.Items)
}

// Delete borra la compra; las líneas caen por ON DELETE CASCADE.
func (r *PurchaseRepo) Delete(id, depotID string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM purchases WHERE id = $1 AND depot_id = $2`, id, depotID)
	if err != nil {
		return false, fmt.Errorf("delete purchase: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// GetByID obtiene una compra con líneas; (nil, nil) si no pertenece al acopio.
func (r *PurchaseRepo) GetByID(id, depotID string) (*entity.Purchase, error) {
	ctx := context.Background()
	query := `
		SELECT id, depot_id, trader_id, total_cost, created_at, updated_at
		FROM purchases WHERE id = $1 AND depot_id = $2`
	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id, depotID).Scan(
		&p.ID, &p.DepotID, &p.TraderID, &p.TotalCost, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Purchase{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// listHeaders corre una consulta de cabeceras y carga las líneas de todas.
func (r *PurchaseRepo) listHeaders(ctx context.Context, query string, args ...any) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.DepotID, &p.TraderID, &p.TotalCost, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de un lote de compras en una sola consulta.
func (r *PurchaseRepo) loadItems(ctx context.Context, purchases []*entity.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	index := make(map[string]*entity.Purchase, len(purchases))
	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		index[p.ID] = p
		ids = append(ids, p.ID)
	}
	query := `
		SELECT purchase_id, commodity_type_id, weight, price_per_kg, cost
		FROM purchase_items WHERE purchase_id = ANY($1) ORDER BY purchase_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var purchaseID string
		var item entity.PurchaseItem
		if err := rows.Scan(&purchaseID, &item.CommodityTypeID, &item.Weight, &item.PricePerKg, &item.Cost); err != nil {
			return fmt.Errorf("scan purchase item: %w", err)
		}
		if p, ok := index[purchaseID]; ok {
			p.Items = append(p.Items, item)
		}
	}
	return rows.Err()
}

const purchaseHeaderColumns = `id, depot_id, trader_id, total_cost, created_at, updated_at`

// ListByDepot lista compras de un acopio paginadas, más reciente primero.
func (r *PurchaseRepo) ListByDepot(depotID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseHeaderColumns + ` FROM purchases
		WHERE depot_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listHeaders(context.Background(), query, depotID, limit, offset)
}

// ListByDepotAndTrader lista compras de un acopio a un comerciante.
func (r *PurchaseRepo) ListByDepotAndTrader(depotID, traderID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseHeaderColumns + ` FROM purchases
		WHERE depot_id = $1 AND trader_id = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.listHeaders(context.Background(), query, depotID, traderID, limit, offset)
}

// ListByDepotAndRange lista compras con created_at en [from, to), paginadas.
func (r *PurchaseRepo) ListByDepotAndRange(depotID string, from, to time.Time, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseHeaderColumns + ` FROM purchases
		WHERE depot_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	return r.listHeaders(context.Background(), query, depotID, from, to, limit, offset)
}

// AllByDepotAndRange devuelve todas las compras del intervalo sin paginar
// (insumo del agregador de jornada).
func (r *PurchaseRepo) AllByDepotAndRange(depotID string, from, to time.Time) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseHeaderColumns + ` FROM purchases
		WHERE depot_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at`
	return r.listHeaders(context.Background(), query, depotID, from, to)
}

// ListGroupedByDepot agrupa compras por acopio (vista admin). La paginación
// aplica sobre los acopios, no sobre las compras.
func (r *PurchaseRepo) ListGroupedByDepot(limit, offset int) ([]*entity.DepotPurchases, error) {
	ctx := context.Background()
	depotQuery := `
		SELECT u.id, u.name
		FROM users u
		WHERE EXISTS (SELECT 1 FROM purchases p WHERE p.depot_id = u.id)
		ORDER BY u.name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, depotQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list depots with purchases: %w", err)
	}
	defer rows.Close()
	var groups []*entity.DepotPurchases
	for rows.Next() {
		var g entity.DepotPurchases
		if err := rows.Scan(&g.DepotID, &g.DepotName); err != nil {
			return nil, fmt.Errorf("scan depot: %w", err)
		}
		groups = append(groups, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, g := range groups {
		query := `
			SELECT ` + purchaseHeaderColumns + ` FROM purchases
			WHERE depot_id = $1 ORDER BY created_at DESC`
		purchases, err := r.listHeaders(ctx, query, g.DepotID)
		if err != nil {
			return nil, err
		}
		g.Purchases = purchases
	}
	return groups, nil
}

// ExistsItemWithType consulta de existencia: bloquea el retiro de un tipo referenciado.
func (r *PurchaseRepo) ExistsItemWithType(commodityTypeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM purchase_items WHERE commodity_type_id = $1)`,
		commodityTypeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists item with type: %w", err)
	}
	return exists, nil
}

// ExistsWithTrader consulta de existencia: bloquea el retiro de un comerciante con compras.
func (r *PurchaseRepo) ExistsWithTrader(traderID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM purchases WHERE trader_id = $1)`,
		traderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists with trader: %w", err)
	}
	return exists, nil
}
