package usecase

import (
	"github.com/google/uuid"

	"github.com/jhoicas/Acopio-api/internal/application/authz"
	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/domain"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/repository"
)

// CommodityTypeUseCase casos de uso del catálogo de tipos de producto.
// El retiro es lógico y queda bloqueado mientras el ledger referencie el tipo.
type CommodityTypeUseCase struct {
	repo         repository.CommodityTypeRepository
	purchaseRepo repository.PurchaseRepository
	clock        Clock
}

// NewCommodityTypeUseCase construye el caso de uso.
func NewCommodityTypeUseCase(repo repository.CommodityTypeRepository, purchaseRepo repository.PurchaseRepository, clock Clock) *CommodityTypeUseCase {
	return &CommodityTypeUseCase{repo: repo, purchaseRepo: purchaseRepo, clock: clock}
}

// Create crea un tipo de producto para el acopio. Devuelve ErrDuplicate si ya
// existe un tipo activo con ese nombre en el mismo acopio.
func (uc *CommodityTypeUseCase) Create(depotID string, in dto.CreateCommodityTypeRequest) (*dto.CommodityTypeResponse, error) {
	if in.Name == "" || !in.PricePerKg.IsPositive() {
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
	ct := &entity.CommodityType{
		ID:         uuid.New().String(),
		DepotID:    depotID,
		Name:       in.Name,
		PricePerKg: in.PricePerKg,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ct); err != nil {
		return nil, err
	}
	return toCommodityTypeResponse(ct), nil
}

// Update renombra o reajusta el precio de un tipo activo. Un tipo retirado,
// inexistente o de otro acopio responde ErrNotFound por igual.
func (uc *CommodityTypeUseCase) Update(caller authz.Caller, id string, in dto.UpdateCommodityTypeRequest) (*dto.CommodityTypeResponse, error) {
	ct, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ct == nil || !authz.Authorize(caller, ct.DepotID) {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != ct.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByDepotAndName(ct.DepotID, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		ct.Name = *in.Name
	}
	if in.PricePerKg != nil {
		if !in.PricePerKg.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		ct.PricePerKg = *in.PricePerKg
	}
	ct.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ct); err != nil {
		return nil, err
	}
	return toCommodityTypeResponse(ct), nil
}

// Delete retira lógicamente un tipo. Falla con ErrReferenced si alguna línea
// de compra lo referencia: la historia depende de él y no puede desaparecer.
func (uc *CommodityTypeUseCase) Delete(caller authz.Caller, id string) error {
	ct, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if ct == nil || !authz.Authorize(caller, ct.DepotID) {
		return domain.ErrNotFound
	}
	referenced, err := uc.purchaseRepo.ExistsItemWithType(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrReferenced
	}
	return uc.repo.SoftDelete(id)
}

// GetByID obtiene un tipo activo del acopio del llamador.
func (uc *CommodityTypeUseCase) GetByID(caller authz.Caller, id string) (*dto.CommodityTypeResponse, error) {
	ct, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ct == nil || !authz.Authorize(caller, ct.DepotID) {
		return nil, domain.ErrNotFound
	}
	return toCommodityTypeResponse(ct), nil
}

// List lista los tipos activos de un acopio.
func (uc *CommodityTypeUseCase) List(caller authz.Caller, depotID string) (*dto.CommodityTypeListResponse, error) {
	if !authz.Authorize(caller, depotID) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.ListByDepot(depotID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CommodityTypeResponse, 0, len(list))
	for _, ct := range list {
		items = append(items, *toCommodityTypeResponse(ct))
	}
	return &dto.CommodityTypeListResponse{Items: items}, nil
}

// ListGroupedByDepots vista admin: todos los tipos activos agrupados por acopio.
func (uc *CommodityTypeUseCase) ListGroupedByDepots() (*dto.CommodityTypesByDepotResponse, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]dto.CommodityTypeResponse)
	for _, ct := range list {
		grouped[ct.DepotID] = append(grouped[ct.DepotID], *toCommodityTypeResponse(ct))
	}
	return &dto.CommodityTypesByDepotResponse{Depots: grouped}, nil
}

func toCommodityTypeResponse(ct *entity.CommodityType) *dto.CommodityTypeResponse {
	if ct == nil {
		return nil
	}
	return &dto.CommodityTypeResponse{
		ID:         ct.ID,
		DepotID:    ct.DepotID,
		Name:       ct.Name,
		PricePerKg: ct.PricePerKg,
		CreatedAt:  ct.CreatedAt,
		UpdatedAt:  ct.UpdatedAt,
	}
}
