package entity

import "time"

// Trader representa un comerciante al que el acopio le compra producto.
// Mismas reglas de propiedad y retiro lógico que CommodityType.
type Trader struct {
	ID        string
	DepotID   string
	Name      string // único por acopio entre los no retirados
	Phone     string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
