package repository

import (
	"time"

	"github.com/jhoicas/Acopio-api/internal/domain/entity"
)

// DailySummaryRepository define el puerto de persistencia para DailySummary.
// Create debe devolver domain.ErrConflict si ya existe un resumen para
// (depot_id, bucket_key): la restricción única resuelve la carrera de dos
// agregaciones concurrentes, no el check previo del caso de uso.
type DailySummaryRepository interface {
	Create(summary *entity.DailySummary) error
	// GetByID devuelve (nil, nil) si no existe o no pertenece al acopio.
	GetByID(id, depotID string) (*entity.DailySummary, error)
	// GetByDepotAndBucket busca el resumen cuyo bucket_key corresponde al
	// bucket dado; (nil, nil) si no hay.
	GetByDepotAndBucket(depotID, bucketKey string) (*entity.DailySummary, error)
	// Delete borra físicamente; devuelve false si ninguna fila coincidió.
	Delete(id, depotID string) (bool, error)

	ListByDepot(depotID string, limit, offset int) ([]*entity.DailySummary, error)
	// ListAll lista resúmenes de todos los acopios (vista admin).
	ListAll(limit, offset int) ([]*entity.DailySummary, error)
	// ListByRange lista resúmenes de todos los acopios con created_at en
	// [from, to) (vista admin por fecha calendario).
	ListByRange(from, to time.Time, limit, offset int) ([]*entity.DailySummary, error)
}
