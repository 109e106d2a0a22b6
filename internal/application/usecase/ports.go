package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/repository"
)

// Clock es la única fuente de "ahora", en la zona horaria de referencia del
// negocio. Inyectable para tests.
type Clock interface {
	Now() time.Time
}

// FixedZoneClock devuelve el instante actual en una zona fija.
type FixedZoneClock struct {
	Loc *time.Location
}

func (c FixedZoneClock) Now() time.Time {
	return time.Now().In(c.Loc)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de compras atado a esa tx. Garantiza que cabecera y líneas de
// una compra se escriban de forma atómica frente a lectores concurrentes.
type TxRunner interface {
	Run(ctx context.Context, fn func(purchaseRepo repository.PurchaseRepository) error) error
}

// SummaryNotifier es el colaborador externo que recibe el aviso de un cierre
// de jornada persistido. Best effort: un fallo de notificación nunca hace
// fallar la agregación.
type SummaryNotifier interface {
	NotifySummary(ctx context.Context, depotName string, summary *entity.DailySummary) error
}
