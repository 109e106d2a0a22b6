package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/application/usecase"
	"github.com/jhoicas/Acopio-api/internal/domain"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/pkg/logger"
)

type summaryEnv struct {
	purchaseEnv
	summaryUC   *usecase.SummaryUseCase
	summaryRepo *fakeSummaryRepo
	userRepo    *fakeUserRepo
	notifier    *fakeNotifier
}

func newSummaryEnv(grace time.Duration) *summaryEnv {
	base := newPurchaseEnv()
	summaryRepo := newFakeSummaryRepo()
	userRepo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	_ = userRepo.Create(&entity.User{ID: depotA, Name: "Acopio Norte", Email: "norte@acopio.test", Role: entity.RoleDepot, Status: "active"})
	uc := usecase.NewSummaryUseCase(
		summaryRepo, base.repo, base.typeRepo, userRepo,
		base.clock, notifier, -1, grace,
		logger.New(logger.Config{Env: "test", Level: "error"}),
	)
	return &summaryEnv{
		purchaseEnv: *base,
		summaryUC:   uc,
		summaryRepo: summaryRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// seedPurchase registra una compra de weight kg al precio dado en la jornada
// actual del reloj.
func (e *summaryEnv) seedPurchase(t *testing.T, weight float64) {
	t.Helper()
	ct := e.mustType(t, depotA, "Cangrejo A", 100)
	tr := e.mustTrader(t, depotA, "Don Pedro")
	_, err := e.purchaseUC.Create(context.Background(), callerA, depotA, dto.CreatePurchaseRequest{
		TraderID: tr.ID,
		Items:    []dto.PurchaseItemRequest{itemReq(ct.ID, weight)},
	})
	require.NoError(t, err)
}

// Jornada sin compras: el resumen vacío se devuelve pero NUNCA se persiste,
// y la lectura repetida es idempotente.
func TestSummary_JornadaVacia_NoPersiste(t *testing.T) {
	env := newSummaryEnv(0)

	out, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err)
	assert.Empty(t, out.ID, "el resumen vacío no tiene identidad")
	assert.Empty(t, out.Details)
	assert.True(t, out.TotalAmount.IsZero())
	assert.Equal(t, 0, env.summaryRepo.Count(), "la jornada vacía no deja fila")

	// Repetir no cambia nada: no hay conflicto porque no hay registro.
	again, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err)
	assert.Empty(t, again.ID)
	assert.Equal(t, 0, env.summaryRepo.Count())

	read, err := env.summaryUC.Get(callerA, depotA, nil, -1)
	require.NoError(t, err)
	assert.Empty(t, read.ID)
	assert.Empty(t, env.notifier.calls, "una jornada vacía no dispara avisos")
}

func TestSummary_Create_AgregaYNotifica(t *testing.T) {
	env := newSummaryEnv(0)
	env.seedPurchase(t, 10)

	out, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err)

	require.NotEmpty(t, out.ID)
	require.Len(t, out.Details, 1)
	assert.Equal(t, "Cangrejo A", out.Details[0].CommodityTypeName)
	assert.True(t, out.Details[0].TotalWeight.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 1, env.summaryRepo.Count())

	require.Len(t, env.notifier.calls, 1)
	assert.Equal(t, "Acopio Norte", env.notifier.calls[0],
		"el aviso lleva el nombre de la cuenta, no el ID")
}

// A lo sumo un resumen por acopio por jornada: el segundo intento responde
// conflicto y no duplica filas.
func TestSummary_Create_SegundaVezConflicto(t *testing.T) {
	env := newSummaryEnv(0)
	env.seedPurchase(t, 10)

	_, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err)

	_, err = env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, env.summaryRepo.Count())
}

// La carrera de dos agregaciones simultáneas la resuelve la restricción
// única del repositorio, aunque ambas hayan pasado el check previo.
func TestSummary_Create_CarreraResueltaPorRestriccion(t *testing.T) {
	env := newSummaryEnv(0)
	env.seedPurchase(t, 10)

	// Simular al competidor que ganó la carrera después del check previo:
	// insertar directo en el repo con la misma clave de jornada.
	require.NoError(t, env.summaryRepo.Create(&entity.DailySummary{
		ID:        "competidor",
		DepotID:   depotA,
		BucketKey: "20250310T06",
		CreatedAt: env.clock.Now(),
	}))

	_, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSummary_Get_EsInofensivo(t *testing.T) {
	env := newSummaryEnv(0)
	env.seedPurchase(t, 10)

	read, err := env.summaryUC.Get(callerA, depotA, nil, -1)
	require.NoError(t, err)
	assert.Empty(t, read.ID, "leer la jornada abierta devuelve el placeholder vacío")
	assert.Equal(t, 0, env.summaryRepo.Count(), "la lectura no persiste nada")

	created, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err)

	read, err = env.summaryUC.Get(callerA, depotA, nil, -1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, read.ID, "tras el cierre la lectura devuelve el resumen persistido")
}

func TestSummary_Delete_VentanaDeGracia(t *testing.T) {
	env := newSummaryEnv(48 * time.Hour)
	env.seedPurchase(t, 10)

	created, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err)

	// Dentro de la ventana: borra.
	env.clock.Advance(24 * time.Hour)
	require.NoError(t, env.summaryUC.Delete(callerA, depotA, created.ID))
	assert.Equal(t, 0, env.summaryRepo.Count())

	// Borrar de nuevo: not found.
	assert.ErrorIs(t, env.summaryUC.Delete(callerA, depotA, created.ID), domain.ErrNotFound)
}

func TestSummary_Delete_FueraDeGracia(t *testing.T) {
	env := newSummaryEnv(48 * time.Hour)
	env.seedPurchase(t, 10)

	created, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err)

	env.clock.Advance(49 * time.Hour)
	assert.ErrorIs(t, env.summaryUC.Delete(callerA, depotA, created.ID), domain.ErrTooOld,
		"pasada la ventana el resumen es inmutable")
	assert.Equal(t, 1, env.summaryRepo.Count())
}

// El fallo del canal de avisos no afecta la agregación: el resumen queda
// persistido igual.
func TestSummary_NotificadorFallido_NoRompeElCierre(t *testing.T) {
	env := newSummaryEnv(0)
	env.notifier.fail = errors.New("telegram caído")
	env.seedPurchase(t, 10)

	out, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err, "el cierre no depende del notificador")
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 1, env.summaryRepo.Count())
}

func TestSummary_Guard(t *testing.T) {
	env := newSummaryEnv(0)

	_, err := env.summaryUC.Create(context.Background(), callerB, depotA, nil, -1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.summaryUC.Get(callerB, depotA, nil, -1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = env.summaryUC.Delete(callerB, depotA, "cualquiera")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.summaryUC.ListByDepot(callerB, depotA, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Admin pasa la guarda de cualquier acopio.
	_, err = env.summaryUC.Get(admin, depotA, nil, -1)
	assert.NoError(t, err)
}

// Escenario completo: tipo → comerciante → compra de 10 kg a 100 → cierre con
// total 1000 → reintento en conflicto → anulación → anulación repetida.
func TestSummary_EscenarioCompleto(t *testing.T) {
	env := newSummaryEnv(48 * time.Hour)

	ct := env.mustType(t, depotA, "Cangrejo A", 100)
	tr := env.mustTrader(t, depotA, "Don Pedro")

	purchase, err := env.purchaseUC.Create(context.Background(), callerA, depotA, dto.CreatePurchaseRequest{
		TraderID: tr.ID,
		Items:    []dto.PurchaseItemRequest{itemReq(ct.ID, 10)},
	})
	require.NoError(t, err)
	require.True(t, purchase.TotalCost.Equal(decimal.NewFromInt(1000)))

	summary, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(1000)))

	_, err = env.summaryUC.Create(context.Background(), callerA, depotA, nil, -1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, env.summaryUC.Delete(callerA, depotA, summary.ID))
	assert.ErrorIs(t, env.summaryUC.Delete(callerA, depotA, summary.ID), domain.ErrNotFound)
}

// El ancla explícita permite cerrar una jornada anterior ya terminada.
func TestSummary_CierreDeJornadaAnterior(t *testing.T) {
	env := newSummaryEnv(0)
	ct := env.mustType(t, depotA, "Cangrejo A", 100)
	tr := env.mustTrader(t, depotA, "Don Pedro")

	ayer := env.clock.Now().Add(-24 * time.Hour)
	_, err := env.purchaseUC.Create(context.Background(), callerA, depotA, dto.CreatePurchaseRequest{
		TraderID:  tr.ID,
		Items:     []dto.PurchaseItemRequest{itemReq(ct.ID, 3)},
		CreatedAt: &ayer,
	})
	require.NoError(t, err)

	// Cerrar la jornada de ayer no toca la de hoy.
	out, err := env.summaryUC.Create(context.Background(), callerA, depotA, &ayer, -1)
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(300)))

	hoy, err := env.summaryUC.Get(callerA, depotA, nil, -1)
	require.NoError(t, err)
	assert.Empty(t, hoy.ID, "la jornada de hoy sigue abierta y vacía")
}

// start_hour admite [0, 23]; 24 o más no es una hora.
func TestSummary_HoraDeCorte_FueraDeRango(t *testing.T) {
	env := newSummaryEnv(0)

	_, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, 24)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.summaryUC.Get(callerA, depotA, nil, 24)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// 0 es medianoche válida, no ausencia del parámetro.
func TestSummary_HoraDeCorte_CeroEsMedianoche(t *testing.T) {
	env := newSummaryEnv(0)
	env.seedPurchase(t, 10)

	out, err := env.summaryUC.Create(context.Background(), callerA, depotA, nil, 0)
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)

	stored, err := env.summaryRepo.GetByDepotAndBucket(depotA, "20250310T00")
	require.NoError(t, err)
	require.NotNil(t, stored, "la jornada quedó anclada a medianoche, no al corte por defecto")
}

// La hora de corte configurada en el servicio aplica cuando el request no
// trae una.
func TestSummary_HoraDeCorte_Configurada(t *testing.T) {
	env := newSummaryEnv(0)
	env.seedPurchase(t, 10)

	uc := usecase.NewSummaryUseCase(
		env.summaryRepo, env.repo, env.typeRepo, env.userRepo,
		env.clock, env.notifier, 8, 0,
		logger.New(logger.Config{Env: "test", Level: "error"}),
	)

	_, err := uc.Create(context.Background(), callerA, depotA, nil, -1)
	require.NoError(t, err)

	stored, err := env.summaryRepo.GetByDepotAndBucket(depotA, "20250310T08")
	require.NoError(t, err)
	require.NotNil(t, stored, "sin start_hour en el request manda la configurada")
}
