package repository

import "github.com/jhoicas/Acopio-api/internal/domain/entity"

// CommodityTypeRepository define el puerto de persistencia para CommodityType (DIP).
// Las lecturas excluyen filas retiradas salvo que el método diga lo contrario.
type CommodityTypeRepository interface {
	Create(ct *entity.CommodityType) error
	// GetByID devuelve solo filas activas; (nil, nil) si no existe o está retirada.
	GetByID(id string) (*entity.CommodityType, error)
	// GetByIDAny incluye filas retiradas; necesario para renderizar compras
	// históricas cuyo tipo fue retirado después.
	GetByIDAny(id string) (*entity.CommodityType, error)
	GetByDepotAndName(depotID, name string) (*entity.CommodityType, error)
	ListByDepot(depotID string) ([]*entity.CommodityType, error)
	// ListAll lista tipos activos de todos los acopios (vista admin).
	ListAll() ([]*entity.CommodityType, error)
	Update(ct *entity.CommodityType) error
	// SoftDelete marca la fila como retirada. No borra físicamente.
	SoftDelete(id string) error
}
