package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Acopio-api/internal/domain"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/repository"
)

var _ repository.DailySummaryRepository = (*DailySummaryRepo)(nil)

// DailySummaryRepo implementación del puerto sobre PostgreSQL. El índice
// único (depot_id, bucket_key) es quien garantiza a lo sumo un resumen por
// acopio por jornada bajo concurrencia; el check previo del caso de uso solo
// da un error temprano más claro.
type DailySummaryRepo struct {
	q Querier
}

// NewDailySummaryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDailySummaryRepository(q Querier) *DailySummaryRepo {
	return &DailySummaryRepo{q: q}
}

// Create persiste resumen y detalles en una sola transacción: un fallo a
// mitad de los detalles no puede dejar una cabecera huérfana ocupando el
// slot (depot_id, bucket_key) de la jornada. Violación del índice único se
// traduce a ErrConflict.
func (r *DailySummaryRepo) Create(summary *entity.DailySummary) error {
	ctx := context.Background()
	beginner, ok := r.q.(interface {
		Begin(ctx context.Context) (pgx.Tx, error)
	})
	if !ok {
		// q ya es una tx: el llamador gobierna commit y rollback.
		return r.insertSummary(ctx, r.q, summary)
	}
	tx, err := beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin summary tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.insertSummary(ctx, tx, summary); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit summary tx: %w", err)
	}
	return nil
}

func (r *DailySummaryRepo) insertSummary(ctx context.Context, q Querier, summary *entity.DailySummary) error {
	query := `
		INSERT INTO daily_summaries (id, depot_id, total_amount, bucket_key, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := q.Exec(ctx, query,
		summary.ID, summary.DepotID, summary.TotalAmount, summary.BucketKey, summary.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert daily summary: %w", err)
	}
	detailQuery := `
		INSERT INTO daily_summary_details (summary_id, position, commodity_type_id, total_weight, total_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for i, d := range summary.Details {
		if _, err := q.Exec(ctx, detailQuery,
			summary.ID, i, d.CommodityTypeID, d.TotalWeight, d.TotalCost,
		); err != nil {
			return fmt.Errorf("insert summary detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un resumen con detalles; (nil, nil) si no pertenece al acopio.
func (r *DailySummaryRepo) GetByID(id, depotID string) (*entity.DailySummary, error) {
	query := `
		SELECT id, depot_id, total_amount, bucket_key, created_at
		FROM daily_summaries WHERE id = $1 AND depot_id = $2`
	return r.scanWithDetails(r.q.QueryRow(context.Background(), query, id, depotID))
}

// GetByDepotAndBucket busca el resumen de una jornada; (nil, nil) si no hay.
func (r *DailySummaryRepo) GetByDepotAndBucket(depotID, bucketKey string) (*entity.DailySummary, error) {
	query := `
		SELECT id, depot_id, total_amount, bucket_key, created_at
		FROM daily_summaries WHERE depot_id = $1 AND bucket_key = $2`
	return r.scanWithDetails(r.q.QueryRow(context.Background(), query, depotID, bucketKey))
}

func (r *DailySummaryRepo) scanWithDetails(row pgx.Row) (*entity.DailySummary, error) {
	var s entity.DailySummary
	err := row.Scan(&s.ID, &s.DepotID, &s.TotalAmount, &s.BucketKey, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily summary: %w", err)
	}
	if err := r.loadDetails(context.Background(), []*entity.DailySummary{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// loadDetails carga los detalles de un lote de resúmenes en una sola consulta.
func (r *DailySummaryRepo) loadDetails(ctx context.Context, summaries []*entity.DailySummary) error {
	if len(summaries) == 0 {
		return nil
	}
	index := make(map[string]*entity.DailySummary, len(summaries))
	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		index[s.ID] = s
		ids = append(ids, s.ID)
	}
	query := `
		SELECT summary_id, commodity_type_id, total_weight, total_cost
		FROM daily_summary_details WHERE summary_id = ANY($1) ORDER BY summary_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load summary details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var summaryID string
		var d entity.SummaryDetail
		if err := rows.Scan(&summaryID, &d.CommodityTypeID, &d.TotalWeight, &d.TotalCost); err != nil {
			return fmt.Errorf("scan summary detail: %w", err)
		}
		if s, ok := index[summaryID]; ok {
			s.Details = append(s.Details, d)
		}
	}
	return rows.Err()
}

// Delete borra resumen y detalles (cascade); false si ninguna fila coincidió.
func (r *DailySummaryRepo) Delete(id, depotID string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM daily_summaries WHERE id = $1 AND depot_id = $2`, id, depotID)
	if err != nil {
		return false, fmt.Errorf("delete daily summary: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *DailySummaryRepo) list(query string, args ...any) ([]*entity.DailySummary, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list daily summaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.DailySummary
	for rows.Next() {
		var s entity.DailySummary
		if err := rows.Scan(&s.ID, &s.DepotID, &s.TotalAmount, &s.BucketKey, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan daily summary: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByDepot lista resúmenes de un acopio, más reciente primero.
func (r *DailySummaryRepo) ListByDepot(depotID string, limit, offset int) ([]*entity.DailySummary, error) {
	query := `
		SELECT id, depot_id, total_amount, bucket_key, created_at
		FROM daily_summaries WHERE depot_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, depotID, limit, offset)
}

// ListAll lista resúmenes de todos los acopios (vista admin).
func (r *DailySummaryRepo) ListAll(limit, offset int) ([]*entity.DailySummary, error) {
	query := `
		SELECT id, depot_id, total_amount, bucket_key, created_at
		FROM daily_summaries ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByRange lista resúmenes con created_at en [from, to) (vista admin).
func (r *DailySummaryRepo) ListByRange(from, to time.Time, limit, offset int) ([]*entity.DailySummary, error) {
	query := `
		SELECT id, depot_id, total_amount, bucket_key, created_at
		FROM daily_summaries WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.list(query, from, to, limit, offset)
}
