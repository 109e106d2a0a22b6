package repository

import "github.com/jhoicas/Acopio-api/internal/domain/entity"

// TraderRepository define el puerto de persistencia para Trader (DIP).
// Mismo contrato de retiro lógico que CommodityTypeRepository.
type TraderRepository interface {
	Create(trader *entity.Trader) error
	GetByID(id string) (*entity.Trader, error)
	GetByIDAny(id string) (*entity.Trader, error)
	GetByDepotAndName(depotID, name string) (*entity.Trader, error)
	ListByDepot(depotID string) ([]*entity.Trader, error)
	ListAll() ([]*entity.Trader, error)
	Update(trader *entity.Trader) error
	SoftDelete(id string) error
}
