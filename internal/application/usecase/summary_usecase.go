package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Acopio-api/internal/application/authz"
	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/domain"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/repository"
	"github.com/jhoicas/Acopio-api/internal/domain/settlement"
	"github.com/jhoicas/Acopio-api/pkg/logger"
)

// DefaultSummaryGraceDays es la ventana de gracia para borrar un resumen
// diario ya persistido. Pasada la ventana el resumen es inmutable. El valor
// observado en el negocio osciló entre 1 y 2 días; se fija 2 y se deja
// configurable (SUMMARY_GRACE_DAYS).
const DefaultSummaryGraceDays = 2

// SummaryUseCase agrega las compras de una jornada en un DailySummary y
// gobierna su ciclo de vida: a lo sumo uno por acopio por jornada, vacío
// nunca se persiste, borrado solo dentro de la ventana de gracia.
type SummaryUseCase struct {
	summaryRepo  repository.DailySummaryRepository
	purchaseRepo repository.PurchaseRepository
	typeRepo     repository.CommodityTypeRepository
	userRepo     repository.UserRepository
	clock        Clock
	notifier     SummaryNotifier
	startHour    int
	grace        time.Duration
	log          *logger.Logger
}

// NewSummaryUseCase construye el caso de uso. startHour fuera de [0, 23] y
// grace <= 0 usan los valores por defecto.
func NewSummaryUseCase(
	summaryRepo repository.DailySummaryRepository,
	purchaseRepo repository.PurchaseRepository,
	typeRepo repository.CommodityTypeRepository,
	userRepo repository.UserRepository,
	clock Clock,
	notifier SummaryNotifier,
	startHour int,
	grace time.Duration,
	log *logger.Logger,
) *SummaryUseCase {
	if startHour < 0 || startHour > 23 {
		startHour = settlement.DefaultStartHour
	}
	if grace <= 0 {
		grace = DefaultSummaryGraceDays * 24 * time.Hour
	}
	return &SummaryUseCase{
		summaryRepo:  summaryRepo,
		purchaseRepo: purchaseRepo,
		typeRepo:     typeRepo,
		userRepo:     userRepo,
		clock:        clock,
		notifier:     notifier,
		startHour:    startHour,
		grace:        grace,
		log:          log,
	}
}

// resolveStartHour valida la hora de corte pedida en el request. startHour
// negativo significa "no enviada" y cae en la configurada; 0 es medianoche
// válida; más de 23 no es una hora.
func (uc *SummaryUseCase) resolveStartHour(startHour int) (int, error) {
	if startHour < 0 {
		return uc.startHour, nil
	}
	if startHour > 23 {
		return 0, domain.ErrInvalidInput
	}
	return startHour, nil
}

// bucketFor resuelve la jornada a agregar: la que contiene a anchor, o la
// que contiene al instante actual si anchor es nil.
func (uc *SummaryUseCase) bucketFor(anchor *time.Time, startHour int) (time.Time, time.Time) {
	ref := uc.clock.Now()
	if anchor != nil {
		// Ancla explícita: jornada de un día concreto, interpretada en la
		// zona de referencia del negocio.
		ref = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), startHour, 0, 0, 0, ref.Location())
	}
	return settlement.DayBucket(ref, startHour)
}

// Create agrega la jornada indicada para el acopio. Si no hubo compras
// devuelve el resumen vacío SIN persistirlo: una jornada sin compras no deja
// un registro que bloquee una agregación real posterior. Si la jornada ya
// tiene resumen responde ErrConflict; la restricción única del repositorio
// resuelve la carrera de dos llamadas concurrentes.
func (uc *SummaryUseCase) Create(ctx context.Context, caller authz.Caller, depotID string, anchor *time.Time, startHour int) (*dto.DailySummaryResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	startHour, err := uc.resolveStartHour(startHour)
	if err != nil {
		return nil, err
	}
	from, to := uc.bucketFor(anchor, startHour)
	key := settlement.BucketKey(from)

	existing, err := uc.summaryRepo.GetByDepotAndBucket(depotID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	purchases, err := uc.purchaseRepo.AllByDepotAndRange(depotID, from, to)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return emptySummaryResponse(), nil
	}

	details, total := settlement.Aggregate(purchases)
	summary := &entity.DailySummary{
		ID:          uuid.New().String(),
		DepotID:     depotID,
		Details:     details,
		TotalAmount: total,
		BucketKey:   key,
		CreatedAt:   uc.clock.Now(),
	}
	if err := uc.summaryRepo.Create(summary); err != nil {
		// Dos agregaciones concurrentes: la restricción única dejó pasar una.
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}

	uc.notify(ctx, summary)

	return uc.toSummaryResponse(summary), nil
}

// Get devuelve el resumen de la jornada indicada, o el placeholder vacío no
// persistido si no hay. Lectura idempotente, sin efectos.
func (uc *SummaryUseCase) Get(caller authz.Caller, depotID string, anchor *time.Time, startHour int) (*dto.DailySummaryResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	startHour, err := uc.resolveStartHour(startHour)
	if err != nil {
		return nil, err
	}
	from, _ := uc.bucketFor(anchor, startHour)
	summary, err := uc.summaryRepo.GetByDepotAndBucket(depotID, settlement.BucketKey(from))
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return emptySummaryResponse(), nil
	}
	return uc.toSummaryResponse(summary), nil
}

// Delete borra un resumen dentro de la ventana de gracia. Pasada la ventana
// el resumen es inmutable y responde ErrTooOld.
func (uc *SummaryUseCase) Delete(caller authz.Caller, depotID, summaryID string) error {
	if !authz.Authorize(caller, depotID) {
		return domain.ErrForbidden
	}
	summary, err := uc.summaryRepo.GetByID(summaryID, depotID)
	if err != nil {
		return err
	}
	if summary == nil {
		return domain.ErrNotFound
	}
	if uc.clock.Now().Sub(summary.CreatedAt) > uc.grace {
		return domain.ErrTooOld
	}
	deleted, err := uc.summaryRepo.Delete(summaryID, depotID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// ListByDepot lista los resúmenes de un acopio, paginados.
func (uc *SummaryUseCase) ListByDepot(caller authz.Caller, depotID string, page dto.PageRequest) (*dto.DailySummaryListResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.summaryRepo.ListByDepot(depotID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return uc.toSummaryListResponse(list, page), nil
}

// ListAllForAdmin vista admin: resúmenes de todos los acopios.
func (uc *SummaryUseCase) ListAllForAdmin(page dto.PageRequest) (*dto.DailySummaryListResponse, error) {
	page.DefaultPage()
	list, err := uc.summaryRepo.ListAll(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return uc.toSummaryListResponse(list, page), nil
}

// ListByDateForAdmin vista admin: resúmenes creados en un día calendario
// (alineado al calendario, no a la jornada).
func (uc *SummaryUseCase) ListByDateForAdmin(date time.Time, page dto.PageRequest) (*dto.DailySummaryListResponse, error) {
	page.DefaultPage()
	anchor := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, uc.clock.Now().Location())
	from, to := settlement.CalendarDayRange(anchor)
	list, err := uc.summaryRepo.ListByRange(from, to, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return uc.toSummaryListResponse(list, page), nil
}

// notify avisa el cierre al colaborador externo. Best effort: el fallo se
// registra y se descarta, la agregación ya quedó persistida.
func (uc *SummaryUseCase) notify(ctx context.Context, summary *entity.DailySummary) {
	if uc.notifier == nil {
		return
	}
	depotName := summary.DepotID
	if user, err := uc.userRepo.GetByID(summary.DepotID); err == nil && user != nil {
		depotName = user.Name
	}
	if err := uc.notifier.NotifySummary(ctx, depotName, summary); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).
			Str("depot_id", summary.DepotID).
			Str("summary_id", summary.ID).
			Msg("notificación de cierre de jornada falló")
	}
}

func emptySummaryResponse() *dto.DailySummaryResponse {
	return &dto.DailySummaryResponse{
		Details:     []dto.SummaryDetailResponse{},
		TotalAmount: decimal.Zero,
	}
}

func (uc *SummaryUseCase) toSummaryResponse(s *entity.DailySummary) *dto.DailySummaryResponse {
	createdAt := s.CreatedAt
	resp := &dto.DailySummaryResponse{
		ID:          s.ID,
		DepotID:     s.DepotID,
		Details:     make([]dto.SummaryDetailResponse, 0, len(s.Details)),
		TotalAmount: s.TotalAmount,
		CreatedAt:   &createdAt,
	}
	names := make(map[string]string)
	for _, d := range s.Details {
		name, ok := names[d.CommodityTypeID]
		if !ok {
			if ct, err := uc.typeRepo.GetByIDAny(d.CommodityTypeID); err == nil && ct != nil {
				name = ct.Name
			}
			names[d.CommodityTypeID] = name
		}
		resp.Details = append(resp.Details, dto.SummaryDetailResponse{
			CommodityTypeID:   d.CommodityTypeID,
			CommodityTypeName: name,
			TotalWeight:       d.TotalWeight,
			TotalCost:         d.TotalCost,
		})
	}
	return resp
}

func (uc *SummaryUseCase) toSummaryListResponse(list []*entity.DailySummary, page dto.PageRequest) *dto.DailySummaryListResponse {
	items := make([]dto.DailySummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *uc.toSummaryResponse(s))
	}
	return &dto.DailySummaryListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit},
	}
}
