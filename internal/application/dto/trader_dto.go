package dto

import "time"

// CreateTraderRequest entrada para registrar un comerciante.
type CreateTraderRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone" validate:"required"`
}

// UpdateTraderRequest entrada para actualizar nombre o contacto.
type UpdateTraderRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone *string `json:"phone"`
}

// TraderResponse salida de un comerciante.
type TraderResponse struct {
	ID        string    `json:"id"`
	DepotID   string    `json:"depot_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TraderListResponse lista de comerciantes de un acopio.
type TraderListResponse struct {
	Items []TraderResponse `json:"items"`
}

// TradersByDepotResponse vista admin: comerciantes activos agrupados por acopio.
type TradersByDepotResponse struct {
	Depots map[string][]TraderResponse `json:"depots"`
}
