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

var _ repository.CommodityTypeRepository = (*CommodityTypeRepo)(nil)

// CommodityTypeRepo implementación del puerto sobre PostgreSQL (usable con pool o tx).
// El retiro lógico es la columna deleted; el índice único parcial
// (depot_id, name) WHERE NOT deleted respalda la unicidad de nombre.
type CommodityTypeRepo struct {
	q Querier
}

// NewCommodityTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCommodityTypeRepository(q Querier) *CommodityTypeRepo {
	return &CommodityTypeRepo{q: q}
}

const commodityTypeColumns = `id, depot_id, name, price_per_kg, deleted, created_at, updated_at`

// Create persiste un nuevo tipo de producto.
func (r *CommodityTypeRepo) Create(ct *entity.CommodityType) error {
	query := `
		INSERT INTO commodity_types (id, depot_id, name, price_per_kg, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		ct.ID, ct.DepotID, ct.Name, ct.PricePerKg, ct.CreatedAt, ct.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert commodity type: %w", err)
	}
	return nil
}

func (r *CommodityTypeRepo) scanOne(row pgx.Row) (*entity.CommodityType, error) {
	var ct entity.CommodityType
	err := row.Scan(&ct.ID, &ct.DepotID, &ct.Name, &ct.PricePerKg, &ct.Deleted, &ct.CreatedAt, &ct.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commodity type: %w", err)
	}
	return &ct, nil
}

// GetByID obtiene un tipo activo por ID.
func (r *CommodityTypeRepo) GetByID(id string) (*entity.CommodityType, error) {
	query := `SELECT ` + commodityTypeColumns + ` FROM commodity_types WHERE id = $1 AND NOT deleted`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDAny obtiene un tipo por ID incluyendo retirados (render histórico).
func (r *CommodityTypeRepo) GetByIDAny(id string) (*entity.CommodityType, error) {
	query := `SELECT ` + commodityTypeColumns + ` FROM commodity_types WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByDepotAndName obtiene un tipo activo por acopio y nombre (chequeo de unicidad).
func (r *CommodityTypeRepo) GetByDepotAndName(depotID, name string) (*entity.CommodityType, error) {
	query := `SELECT ` + commodityTypeColumns + ` FROM commodity_types WHERE depot_id = $1 AND name = $2 AND NOT deleted`
	return r.scanOne(r.q.QueryRow(context.Background(), query, depotID, name))
}

func (r *CommodityTypeRepo) list(query string, args ...any) ([]*entity.CommodityType, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commodity types: %w", err)
	}
	defer rows.Close()
	var list []*entity.CommodityType
	for rows.Next() {
		var ct entity.CommodityType
		if err := rows.Scan(&ct.ID, &ct.DepotID, &ct.Name, &ct.PricePerKg, &ct.Deleted, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan commodity type: %w", err)
		}
		list = append(list, &ct)
	}
	return list, rows.Err()
}

// ListByDepot lista los tipos activos de un acopio.
func (r *CommodityTypeRepo) ListByDepot(depotID string) ([]*entity.CommodityType, error) {
	query := `SELECT ` + commodityTypeColumns + ` FROM commodity_types WHERE depot_id = $1 AND NOT deleted ORDER BY created_at DESC`
	return r.list(query, depotID)
}

// ListAll lista los tipos activos de todos los acopios (vista admin).
func (r *CommodityTypeRepo) ListAll() ([]*entity.CommodityType, error) {
	query := `SELECT ` + commodityTypeColumns + ` FROM commodity_types WHERE NOT deleted ORDER BY depot_id, created_at DESC`
	return r.list(query)
}

// Update actualiza nombre y precio de un tipo activo.
func (r *CommodityTypeRepo) Update(ct *entity.CommodityType) error {
	query := `
		UPDATE commodity_types SET name = $2, price_per_kg = $3, updated_at = $4
		WHERE id = $1 AND NOT deleted`
	_, err := r.q.Exec(context.Background(), query, ct.ID, ct.Name, ct.PricePerKg, ct.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update commodity type: %w", err)
	}
	return nil
}

// SoftDelete marca el tipo como retirado. La fila sigue existiendo para las
// compras históricas que la referencian.
func (r *CommodityTypeRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE commodity_types SET deleted = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete commodity type: %w", err)
	}
	return nil
}
