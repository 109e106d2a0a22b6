package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acopio-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dobles de pgx: una tx que registra los Exec y un querier con Begin, para
// verificar que cabecera y detalles del resumen viajan juntos.
// ─────────────────────────────────────────────────────────────────────────────

var _ pgx.Tx = (*stubTx)(nil)

type stubTx struct {
	execs      []string
	failAfter  int // Execs aceptados antes de fallar; -1 nunca falla
	committed  bool
	rolledBack bool
}

func (tx *stubTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if tx.failAfter >= 0 && len(tx.execs) >= tx.failAfter {
		return pgconn.CommandTag{}, errors.New("conexión perdida")
	}
	tx.execs = append(tx.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (tx *stubTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *stubTx) Rollback(context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

func (tx *stubTx) Begin(context.Context) (pgx.Tx, error) { return tx, nil }
func (tx *stubTx) Conn() *pgx.Conn                       { return nil }
func (tx *stubTx) LargeObjects() pgx.LargeObjects        { return pgx.LargeObjects{} }

func (tx *stubTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("no usado en estas pruebas")
}

func (tx *stubTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	panic("no usado en estas pruebas")
}

func (tx *stubTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("no usado en estas pruebas")
}

func (tx *stubTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("no usado en estas pruebas")
}

func (tx *stubTx) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("no usado en estas pruebas")
}

// stubBeginQuerier imita al pool: satisface Querier y sabe abrir una tx.
type stubBeginQuerier struct {
	tx          *stubTx
	directExecs int
}

func (q *stubBeginQuerier) Begin(context.Context) (pgx.Tx, error) { return q.tx, nil }

func (q *stubBeginQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.directExecs++
	return pgconn.CommandTag{}, nil
}

func (q *stubBeginQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("no usado en estas pruebas")
}

func (q *stubBeginQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("no usado en estas pruebas")
}

func summaryConDetalles() *entity.DailySummary {
	return &entity.DailySummary{
		ID:          "resumen-1",
		DepotID:     "acopio-1",
		TotalAmount: decimal.NewFromInt(1600),
		BucketKey:   "20250310T06",
		Details: []entity.SummaryDetail{
			{CommodityTypeID: "tipo-a", TotalWeight: decimal.NewFromInt(10), TotalCost: decimal.NewFromInt(1000)},
			{CommodityTypeID: "tipo-b", TotalWeight: decimal.NewFromInt(5), TotalCost: decimal.NewFromInt(600)},
		},
	}
}

// Cabecera y detalles se insertan bajo la misma transacción y nada toca el
// pool por fuera de ella.
func TestDailySummaryRepo_Create_TodoEnUnaTransaccion(t *testing.T) {
	tx := &stubTx{failAfter: -1}
	pool := &stubBeginQuerier{tx: tx}
	repo := NewDailySummaryRepository(pool)

	require.NoError(t, repo.Create(summaryConDetalles()))

	assert.Equal(t, 0, pool.directExecs, "ningún insert por fuera de la tx")
	assert.Len(t, tx.execs, 3, "cabecera más dos detalles")
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

// Un fallo a mitad de los detalles revierte también la cabecera: el slot
// (depot_id, bucket_key) de la jornada no queda ocupado por un resumen mocho.
func TestDailySummaryRepo_Create_FalloDeDetalleRevierteTodo(t *testing.T) {
	tx := &stubTx{failAfter: 2} // cabecera y primer detalle entran, el segundo falla
	pool := &stubBeginQuerier{tx: tx}
	repo := NewDailySummaryRepository(pool)

	err := repo.Create(summaryConDetalles())

	require.Error(t, err)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack, "la cabecera no sobrevive al fallo de un detalle")
}
