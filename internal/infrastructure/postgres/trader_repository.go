package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Acopio-api/internal/domain"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/repository"
)

var _ repository.TraderRepository = (*TraderRepo)(nil)

// TraderRepo implementación del puerto TraderRepository sobre PostgreSQL
// (usable con pool o tx). Mismo esquema de retiro lógico que los tipos.
type TraderRepo struct {
	q Querier
}

// NewTraderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTraderRepository(q Querier) *TraderRepo {
	return &TraderRepo{q: q}
}

const traderColumns = `id, depot_id, name, phone, deleted, created_at, updated_at`

// Create persiste un nuevo comerciante.
func (r *TraderRepo) Create(trader *entity.Trader) error {
	query := `
		INSERT INTO traders (id, depot_id, name, phone, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		trader.ID, trader.DepotID, trader.Name, trader.Phone, trader.CreatedAt, trader.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert trader: %w", err)
	}
	return nil
}

func (r *TraderRepo) scanOne(row pgx.Row) (*entity.Trader, error) {
	var t entity.Trader
	err := row.Scan(&t.ID, &t.DepotID, &t.Name, &t.Phone, &t.Deleted, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trader: %w", err)
	}
	return &t, nil
}

// GetByID obtiene un comerciante activo por ID.
func (r *TraderRepo) GetByID(id string) (*entity.Trader, error) {
	query := `SELECT ` + traderColumns + ` FROM traders WHERE id = $1 AND NOT deleted`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDAny obtiene un comerciante por ID incluyendo retirados.
func (r *TraderRepo) GetByIDAny(id string) (*entity.Trader, error) {
	query := `SELECT ` + traderColumns + ` FROM traders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByDepotAndName obtiene un comerciante activo por acopio y nombre.
func (r *TraderRepo) GetByDepotAndName(depotID, name string) (*entity.Trader, error) {
	query := `SELECT ` + traderColumns + ` FROM traders WHERE depot_id = $1 AND name = $2 AND NOT deleted`
	return r.scanOne(r.q.QueryRow(context.Background(), query, depotID, name))
}

func (r *TraderRepo) list(query string, args ...any) ([]*entity.Trader, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list traders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Trader
	for rows.Next() {
		var t entity.Trader
		if err := rows.Scan(&t.ID, &t.DepotID, &t.Name, &t.Phone, &t.Deleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan trader: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ListByDepot lista los comerciantes activos de un acopio.
func (r *TraderRepo) ListByDepot(depotID string) ([]*entity.Trader, error) {
	query := `SELECT ` + traderColumns + ` FROM traders WHERE depot_id = $1 AND NOT deleted ORDER BY created_at DESC`
	return r.list(query, depotID)
}

// ListAll lista los comerciantes activos de todos los acopios (vista admin).
func (r *TraderRepo) ListAll() ([]*entity.Trader, error) {
	query := `SELECT ` + traderColumns + ` FROM traders WHERE NOT deleted ORDER BY depot_id, created_at DESC`
	return r.list(query)
}

// Update actualiza nombre y contacto de un comerciante activo.
func (r *TraderRepo) Update(trader *entity.Trader) error {
	query := `
		UPDATE traders SET name = $2, phone = $3, updated_at = $4
		WHERE id = $1 AND NOT deleted`
	_, err := r.q.Exec(context.Background(), query, trader.ID, trader.Name, trader.Phone, trader.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update trader: %w", err)
	}
	return nil
}

// SoftDelete marca el comerciante como retirado.
func (r *TraderRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE traders SET deleted = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete trader: %w", err)
	}
	return nil
}
