package usecase

import (
	"github.com/google/uuid"

	"github.com/jhoicas/Acopio-api/internal/application/authz"
	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/domain"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/repository"
)

// TraderUseCase casos de uso del registro de comerciantes. Mismo contrato de
// retiro lógico y unicidad por acopio que los tipos de producto.
type TraderUseCase struct {
	repo         repository.TraderRepository
	purchaseRepo repository.PurchaseRepository
	clock        Clock
}

// NewTraderUseCase construye el caso de uso.
func NewTraderUseCase(repo repository.TraderRepository, purchaseRepo repository.PurchaseRepository, clock Clock) *TraderUseCase {
	return &TraderUseCase{repo: repo, purchaseRepo: purchaseRepo, clock: clock}
}

// Create registra un comerciante. ErrDuplicate si el nombre ya existe activo
// en el mismo acopio.
func (uc *TraderUseCase) Create(depotID string, in dto.CreateTraderRequest) (*dto.TraderResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByDepotAndName(depotID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.clock.Now()
	trader := &entity.Trader{
		ID:        uuid.New().String(),
		DepotID:   depotID,
		Name:      in.Name,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(trader); err != nil {
		return nil, err
	}
	return toTraderResponse(trader), nil
}

// Update actualiza nombre o contacto de un comerciante activo.
func (uc *TraderUseCase) Update(caller authz.Caller, id string, in dto.UpdateTraderRequest) (*dto.TraderResponse, error) {
	trader, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trader == nil || !authz.Authorize(caller, trader.DepotID) {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != trader.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByDepotAndName(trader.DepotID, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		trader.Name = *in.Name
	}
	if in.Phone != nil {
		trader.Phone = *in.Phone
	}
	trader.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(trader); err != nil {
		return nil, err
	}
	return toTraderResponse(trader), nil
}

// Delete retira lógicamente un comerciante. ErrReferenced si tiene compras.
func (uc *TraderUseCase) Delete(caller authz.Caller, id string) error {
	trader, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if trader == nil || !authz.Authorize(caller, trader.DepotID) {
		return domain.ErrNotFound
	}
	referenced, err := uc.purchaseRepo.ExistsWithTrader(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrReferenced
	}
	return uc.repo.SoftDelete(id)
}

// GetByID obtiene un comerciante activo del acopio del llamador.
func (uc *TraderUseCase) GetByID(caller authz.Caller, id string) (*dto.TraderResponse, error) {
	trader, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trader == nil || !authz.Authorize(caller, trader.DepotID) {
		return nil, domain.ErrNotFound
	}
	return toTraderResponse(trader), nil
}

// List lista los comerciantes activos de un acopio.
func (uc *TraderUseCase) List(caller authz.Caller, depotID string) (*dto.TraderListResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.ListByDepot(depotID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TraderResponse, 0, len(list))
	for _, trader := range list {
		items = append(items, *toTraderResponse(trader))
	}
	return &dto.TraderListResponse{Items: items}, nil
}

// ListGroupedByDepots vista admin: comerciantes activos agrupados por acopio.
func (uc *TraderUseCase) ListGroupedByDepots() (*dto.TradersByDepotResponse, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]dto.TraderResponse)
	for _, trader := range list {
		grouped[trader.DepotID] = append(grouped[trader.DepotID], *toTraderResponse(trader))
	}
	return &dto.TradersByDepotResponse{Depots: grouped}, nil
}

func toTraderResponse(t *entity.Trader) *dto.TraderResponse {
	if t == nil {
		return nil
	}
	return &dto.TraderResponse{
		ID:        t.ID,
		DepotID:   t.DepotID,
		Name:      t.Name,
		Phone:     t.Phone,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
