package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Acopio-api/internal/application/authz"
	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/domain"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/repository"
	"github.com/jhoicas/Acopio-api/internal/domain/settlement"
)

// PurchaseUseCase casos de uso del ledger de compras. Crear y actualizar
// congelan el precio por kg vigente en el catálogo y recalculan el total;
// ambos corren en transacción para que cabecera y líneas sean atómicas.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	traderRepo   repository.TraderRepository
	typeRepo     repository.CommodityTypeRepository
	clock        Clock
	startHour    int
}

// NewPurchaseUseCase construye el caso de uso. startHour es la hora de corte
// de la jornada para los listados por fecha; fuera de [0, 23] se usa el
// valor por defecto.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	traderRepo repository.TraderRepository,
	typeRepo repository.CommodityTypeRepository,
	clock Clock,
	startHour int,
) *PurchaseUseCase {
	if startHour < 0 || startHour > 23 {
		startHour = settlement.DefaultStartHour
	}
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		traderRepo:   traderRepo,
		typeRepo:     typeRepo,
		clock:        clock,
		startHour:    startHour,
	}
}

// resolveItems valida y resuelve las líneas solicitadas contra el catálogo:
// tipo activo del mismo acopio, peso positivo, precio copiado del catálogo.
// Un tipo de otro acopio responde ErrForbidden (el catálogo nunca se comparte).
func (uc *PurchaseUseCase) resolveItems(depotID string, in []dto.PurchaseItemRequest) ([]entity.PurchaseItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.PurchaseItem, 0, len(in))
	for _, req := range in {
		if req.CommodityTypeID == "" || !req.Weight.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		ct, err := uc.typeRepo.GetByID(req.CommodityTypeID)
		if err != nil {
			return nil, err
		}
		if ct == nil {
			return nil, domain.ErrNotFound
		}
		if ct.DepotID != depotID {
			return nil, domain.ErrForbidden
		}
		items = append(items, entity.PurchaseItem{
			CommodityTypeID: ct.ID,
			Weight:          req.Weight,
			PricePerKg:      ct.PricePerKg,
			Cost:            req.Weight.Mul(ct.PricePerKg),
		})
	}
	return items, nil
}

// resolveTrader resuelve un comerciante activo del acopio. Inexistente,
// retirado o de otro acopio responden ErrNotFound por igual.
func (uc *PurchaseUseCase) resolveTrader(depotID, traderID string) (*entity.Trader, error) {
	trader, err := uc.traderRepo.GetByID(traderID)
	if err != nil {
		return nil, err
	}
	if trader == nil || trader.DepotID != depotID {
		return nil, domain.ErrNotFound
	}
	return trader, nil
}

func sumItems(items []entity.PurchaseItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Cost)
	}
	return total
}

// Create crea una compra. CreatedAt viene del reloj salvo que el request
// traiga un timestamp explícito (corrección retroactiva).
func (uc *PurchaseUseCase) Create(ctx context.Context, caller authz.Caller, depotID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	trader, err := uc.resolveTrader(depotID, in.TraderID)
	if err != nil {
		return nil, err
	}
	items, err := uc.resolveItems(depotID, in.Items)
	if err != nil {
		return nil, err
	}
	createdAt := uc.clock.Now()
	if in.CreatedAt != nil {
		createdAt = *in.CreatedAt
	}
	purchase := &entity.Purchase{
		ID:        uuid.New().String(),
		DepotID:   depotID,
		TraderID:  trader.ID,
		Items:     items,
		TotalCost: sumItems(items),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	err = uc.txRunner.Run(ctx, func(repo repository.PurchaseRepository) error {
		return repo.Create(purchase)
	})
	if err != nil {
		return nil, err
	}
	return uc.toPurchaseResponse(purchase), nil
}

// Update reemplaza comerciante y líneas de la compra con las mismas reglas de
// resolución que Create. ErrNotFound si el acopio no posee la compra.
func (uc *PurchaseUseCase) Update(ctx context.Context, caller authz.Caller, depotID, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	purchase, err := uc.purchaseRepo.GetByID(id, depotID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	trader, err := uc.resolveTrader(depotID, in.TraderID)
	if err != nil {
		return nil, err
	}
	items, err := uc.resolveItems(depotID, in.Items)
	if err != nil {
		return nil, err
	}
	purchase.TraderID = trader.ID
	purchase.Items = items
	purchase.TotalCost = sumItems(items)
	purchase.UpdatedAt = uc.clock.Now()
	err = uc.txRunner.Run(ctx, func(repo repository.PurchaseRepository) error {
		return repo.Update(purchase)
	})
	if err != nil {
		return nil, err
	}
	return uc.toPurchaseResponse(purchase), nil
}

// Delete borra físicamente una compra del acopio (hoja terminal, sin retiro lógico).
func (uc *PurchaseUseCase) Delete(ctx context.Context, caller authz.Caller, depotID, id string) error {
	if !authz.Authorize(caller, depotID) {
		return domain.ErrForbidden
	}
	deleted, err := uc.purchaseRepo.Delete(id, depotID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una compra del acopio con referencias resueltas.
func (uc *PurchaseUseCase) GetByID(caller authz.Caller, depotID, id string) (*dto.PurchaseResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	purchase, err := uc.purchaseRepo.GetByID(id, depotID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toPurchaseResponse(purchase), nil
}

// ListByDepot lista las compras de un acopio, paginadas.
func (uc *PurchaseUseCase) ListByDepot(caller authz.Caller, depotID string, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.purchaseRepo.ListByDepot(depotID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return uc.toPurchaseListResponse(list, page), nil
}

// ListByTrader lista las compras de un acopio a un comerciante.
func (uc *PurchaseUseCase) ListByTrader(caller authz.Caller, depotID, traderID string, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.purchaseRepo.ListByDepotAndTrader(depotID, traderID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return uc.toPurchaseListResponse(list, page), nil
}

// ListByDate lista las compras de la jornada que contiene a date: el bucket
// [corte de date, corte del día siguiente) en la zona de referencia.
func (uc *PurchaseUseCase) ListByDate(caller authz.Caller, depotID string, date time.Time, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	anchor := time.Date(date.Year(), date.Month(), date.Day(), uc.startHour, 0, 0, 0, uc.clock.Now().Location())
	from, to := settlement.DayBucket(anchor, uc.startHour)
	list, err := uc.purchaseRepo.ListByDepotAndRange(depotID, from, to, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return uc.toPurchaseListResponse(list, page), nil
}

// ListByMonth lista las compras de un mes calendario (alineado al
// calendario, no a la jornada).
func (uc *PurchaseUseCase) ListByMonth(caller authz.Caller, depotID string, year int, month time.Month, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	if month < time.January || month > time.December {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	from, to := settlement.MonthRange(year, month, uc.clock.Now().Location())
	list, err := uc.purchaseRepo.ListByDepotAndRange(depotID, from, to, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return uc.toPurchaseListResponse(list, page), nil
}

// ListByYear lista las compras de un año calendario.
func (uc *PurchaseUseCase) ListByYear(caller authz.Caller, depotID string, year int, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	from, to := settlement.YearRange(year, uc.clock.Now().Location())
	list, err := uc.purchaseRepo.ListByDepotAndRange(depotID, from, to, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return uc.toPurchaseListResponse(list, page), nil
}

// ListGroupedByDepot vista admin: compras de todos los acopios agrupadas por
// acopio. La autorización admin la impone la ruta.
func (uc *PurchaseUseCase) ListGroupedByDepot(page dto.PageRequest) (*dto.DepotPurchasesListResponse, error) {
	page.DefaultPage()
	groups, err := uc.purchaseRepo.ListGroupedByDepot(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepotPurchasesResponse, 0, len(groups))
	for _, g := range groups {
		resp := dto.DepotPurchasesResponse{
			DepotID:   g.DepotID,
			DepotName: g.DepotName,
			Purchases: make([]dto.PurchaseResponse, 0, len(g.Purchases)),
		}
		for _, p := range g.Purchases {
			resp.Purchases = append(resp.Purchases, *uc.toPurchaseResponse(p))
		}
		items = append(items, resp)
	}
	return &dto.DepotPurchasesListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit},
	}, nil
}

// toPurchaseResponse resuelve nombres de comerciante y tipos para mostrar.
// Las referencias retiradas siguen siendo resolubles; una referencia ausente
// deja el nombre vacío en lugar de fallar (la línea conserva precio y costo
// desnormalizados).
func (uc *PurchaseUseCase) toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:        p.ID,
		DepotID:   p.DepotID,
		TraderID:  p.TraderID,
		Items:     make([]dto.PurchaseItemResponse, 0, len(p.Items)),
		TotalCost: p.TotalCost,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if trader, err := uc.traderRepo.GetByIDAny(p.TraderID); err == nil && trader != nil {
		resp.TraderName = trader.Name
	}
	names := make(map[string]string)
	for _, item := range p.Items {
		name, ok := names[item.CommodityTypeID]
		if !ok {
			if ct, err := uc.typeRepo.GetByIDAny(item.CommodityTypeID); err == nil && ct != nil {
				name = ct.Name
			}
			names[item.CommodityTypeID] = name
		}
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			CommodityTypeID:   item.CommodityTypeID,
			CommodityTypeName: name,
			Weight:            item.Weight,
			PricePerKg:        item.PricePerKg,
			Cost:              item.Cost,
		})
	}
	return resp
}

func (uc *PurchaseUseCase) toPurchaseListResponse(list []*entity.Purchase, page dto.PageRequest) *dto.PurchaseListResponse {
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit},
	}
}
