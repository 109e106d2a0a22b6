package usecase_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Acopio-api/internal/domain"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	"github.com/jhoicas/Acopio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia. Mismo contrato que los
// adaptadores de PostgreSQL: (nil, nil) cuando no hay fila, ErrConflict en la
// restricción única de (depot, bucket).
// ──────────────────────────────────────────────────────────────────────────────

// fakeClock reloj congelado e inyectable.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	loc := time.FixedZone("ICT", 7*60*60)
	return &fakeClock{now: time.Date(2025, time.March, 10, 10, 0, 0, 0, loc)}
}

// ─── catálogo ────────────────────────────────────────────────────────────────

type fakeTypeRepo struct {
	rows map[string]*entity.CommodityType
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{rows: make(map[string]*entity.CommodityType)}
}

func (r *fakeTypeRepo) Create(ct *entity.CommodityType) error {
	cp := *ct
	r.rows[ct.ID] = &cp
	return nil
}

func (r *fakeTypeRepo) GetByID(id string) (*entity.CommodityType, error) {
	ct, ok := r.rows[id]
	if !ok || ct.Deleted {
		return nil, nil
	}
	cp := *ct
	return &cp, nil
}

func (r *fakeTypeRepo) GetByIDAny(id string) (*entity.CommodityType, error) {
	ct, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *ct
	return &cp, nil
}

func (r *fakeTypeRepo) GetByDepotAndName(depotID, name string) (*entity.CommodityType, error) {
	for _, ct := range r.rows {
		if ct.DepotID == depotID && ct.Name == name && !ct.Deleted {
			cp := *ct
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTypeRepo) ListByDepot(depotID string) ([]*entity.CommodityType, error) {
	var out []*entity.CommodityType
	for _, ct := range r.rows {
		if ct.DepotID == depotID && !ct.Deleted {
			cp := *ct
			out = append(out, &cp)
		}
	}
	sortByCreatedDesc(out, func(ct *entity.CommodityType) time.Time { return ct.CreatedAt })
	return out, nil
}

func (r *fakeTypeRepo) ListAll() ([]*entity.CommodityType, error) {
	var out []*entity.CommodityType
	for _, ct := range r.rows {
		if !ct.Deleted {
			cp := *ct
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTypeRepo) Update(ct *entity.CommodityType) error {
	cp := *ct
	r.rows[ct.ID] = &cp
	return nil
}

func (r *fakeTypeRepo) SoftDelete(id string) error {
	if ct, ok := r.rows[id]; ok {
		ct.Deleted = true
	}
	return nil
}

var _ repository.CommodityTypeRepository = (*fakeTypeRepo)(nil)

// ─── comerciantes ────────────────────────────────────────────────────────────

type fakeTraderRepo struct {
	rows map[string]*entity.Trader
}

func newFakeTraderRepo() *fakeTraderRepo {
	return &fakeTraderRepo{rows: make(map[string]*entity.Trader)}
}

func (r *fakeTraderRepo) Create(tr *entity.Trader) error {
	cp := *tr
	r.rows[tr.ID] = &cp
	return nil
}

func (r *fakeTraderRepo) GetByID(id string) (*entity.Trader, error) {
	tr, ok := r.rows[id]
	if !ok || tr.Deleted {
		return nil, nil
	}
	cp := *tr
	return &cp, nil
}

func (r *fakeTraderRepo) GetByIDAny(id string) (*entity.Trader, error) {
	tr, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *tr
	return &cp, nil
}

func (r *fakeTraderRepo) GetByDepotAndName(depotID, name string) (*entity.Trader, error) {
	for _, tr := range r.rows {
		if tr.DepotID == depotID && tr.Name == name && !tr.Deleted {
			cp := *tr
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTraderRepo) ListByDepot(depotID string) ([]*entity.Trader, error) {
	var out []*entity.Trader
	for _, tr := range r.rows {
		if tr.DepotID == depotID && !tr.Deleted {
			cp := *tr
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTraderRepo) ListAll() ([]*entity.Trader, error) {
	var out []*entity.Trader
	for _, tr := range r.rows {
		if !tr.Deleted {
			cp := *tr
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTraderRepo) Update(tr *entity.Trader) error {
	cp := *tr
	r.rows[tr.ID] = &cp
	return nil
}

func (r *fakeTraderRepo) SoftDelete(id string) error {
	if tr, ok := r.rows[id]; ok {
		tr.Deleted = true
	}
	return nil
}

var _ repository.TraderRepository = (*fakeTraderRepo)(nil)

// ─── libro de compras ────────────────────────────────────────────────────────

type fakePurchaseRepo struct {
	rows map[string]*entity.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{rows: make(map[string]*entity.Purchase)}
}

func clonePurchase(p *entity.Purchase) *entity.Purchase {
	cp := *p
	cp.Items = append([]entity.PurchaseItem(nil), p.Items...)
	return &cp
}

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	r.rows[p.ID] = clonePurchase(p)
	return nil
}

func (r *fakePurchaseRepo) GetByID(id, depotID string) (*entity.Purchase, error) {
	p, ok := r.rows[id]
	if !ok || p.DepotID != depotID {
		return nil, nil
	}
	return clonePurchase(p), nil
}

func (r *fakePurchaseRepo) Update(p *entity.Purchase) error {
	r.rows[p.ID] = clonePurchase(p)
	return nil
}

func (r *fakePurchaseRepo) Delete(id, depotID string) (bool, error) {
	p, ok := r.rows[id]
	if !ok || p.DepotID != depotID {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *fakePurchaseRepo) selectWhere(pred func(*entity.Purchase) bool) []*entity.Purchase {
	var out []*entity.Purchase
	for _, p := range r.rows {
		if pred(p) {
			out = append(out, clonePurchase(p))
		}
	}
	sortByCreatedDesc(out, func(p *entity.Purchase) time.Time { return p.CreatedAt })
	return out
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list
}

func (r *fakePurchaseRepo) ListByDepot(depotID string, limit, offset int) ([]*entity.Purchase, error) {
	return paginate(r.selectWhere(func(p *entity.Purchase) bool { return p.DepotID == depotID }), limit, offset), nil
}

func (r *fakePurchaseRepo) ListByDepotAndTrader(depotID, traderID string, limit, offset int) ([]*entity.Purchase, error) {
	return paginate(r.selectWhere(func(p *entity.Purchase) bool {
		return p.DepotID == depotID && p.TraderID == traderID
	}), limit, offset), nil
}

func (r *fakePurchaseRepo) ListByDepotAndRange(depotID string, from, to time.Time, limit, offset int) ([]*entity.Purchase, error) {
	return paginate(r.selectWhere(func(p *entity.Purchase) bool {
		return p.DepotID == depotID && !p.CreatedAt.Before(from) && p.CreatedAt.Before(to)
	}), limit, offset), nil
}

func (r *fakePurchaseRepo) AllByDepotAndRange(depotID string, from, to time.Time) ([]*entity.Purchase, error) {
	return r.selectWhere(func(p *entity.Purchase) bool {
		return p.DepotID == depotID && !p.CreatedAt.Before(from) && p.CreatedAt.Before(to)
	}), nil
}

func (r *fakePurchaseRepo) ListGroupedByDepot(limit, offset int) ([]*entity.DepotPurchases, error) {
	byDepot := make(map[string][]*entity.Purchase)
	for _, p := range r.rows {
		byDepot[p.DepotID] = append(byDepot[p.DepotID], clonePurchase(p))
	}
	depots := make([]string, 0, len(byDepot))
	for id := range byDepot {
		depots = append(depots, id)
	}
	sort.Strings(depots)
	var out []*entity.DepotPurchases
	for _, id := range paginate(depots, limit, offset) {
		out = append(out, &entity.DepotPurchases{DepotID: id, DepotName: id, Purchases: byDepot[id]})
	}
	return out, nil
}

func (r *fakePurchaseRepo) ExistsItemWithType(commodityTypeID string) (bool, error) {
	for _, p := range r.rows {
		for _, it := range p.Items {
			if it.CommodityTypeID == commodityTypeID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakePurchaseRepo) ExistsWithTrader(traderID string) (bool, error) {
	for _, p := range r.rows {
		if p.TraderID == traderID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.PurchaseRepository = (*fakePurchaseRepo)(nil)

// ─── resúmenes de jornada ────────────────────────────────────────────────────

type fakeSummaryRepo struct {
	rows map[string]*entity.DailySummary
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{rows: make(map[string]*entity.DailySummary)}
}

func cloneSummary(s *entity.DailySummary) *entity.DailySummary {
	cp := *s
	cp.Details = append([]entity.SummaryDetail(nil), s.Details...)
	return &cp
}

// Count expone el número de filas persistidas, para verificar que el resumen
// vacío nunca toca el almacenamiento.
func (r *fakeSummaryRepo) Count() int { return len(r.rows) }

func (r *fakeSummaryRepo) Create(s *entity.DailySummary) error {
	for _, existing := range r.rows {
		if existing.DepotID == s.DepotID && existing.BucketKey == s.BucketKey {
			return domain.ErrConflict
		}
	}
	r.rows[s.ID] = cloneSummary(s)
	return nil
}

func (r *fakeSummaryRepo) GetByID(id, depotID string) (*entity.DailySummary, error) {
	s, ok := r.rows[id]
	if !ok || s.DepotID != depotID {
		return nil, nil
	}
	return cloneSummary(s), nil
}

func (r *fakeSummaryRepo) GetByDepotAndBucket(depotID, bucketKey string) (*entity.DailySummary, error) {
	for _, s := range r.rows {
		if s.DepotID == depotID && s.BucketKey == bucketKey {
			return cloneSummary(s), nil
		}
	}
	return nil, nil
}

func (r *fakeSummaryRepo) Delete(id, depotID string) (bool, error) {
	s, ok := r.rows[id]
	if !ok || s.DepotID != depotID {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *fakeSummaryRepo) ListByDepot(depotID string, limit, offset int) ([]*entity.DailySummary, error) {
	var out []*entity.DailySummary
	for _, s := range r.rows {
		if s.DepotID == depotID {
			out = append(out, cloneSummary(s))
		}
	}
	sortByCreatedDesc(out, func(s *entity.DailySummary) time.Time { return s.CreatedAt })
	return paginate(out, limit, offset), nil
}

func (r *fakeSummaryRepo) ListAll(limit, offset int) ([]*entity.DailySummary, error) {
	var out []*entity.DailySummary
	for _, s := range r.rows {
		out = append(out, cloneSummary(s))
	}
	sortByCreatedDesc(out, func(s *entity.DailySummary) time.Time { return s.CreatedAt })
	return paginate(out, limit, offset), nil
}

func (r *fakeSummaryRepo) ListByRange(from, to time.Time, limit, offset int) ([]*entity.DailySummary, error) {
	var out []*entity.DailySummary
	for _, s := range r.rows {
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, cloneSummary(s))
		}
	}
	sortByCreatedDesc(out, func(s *entity.DailySummary) time.Time { return s.CreatedAt })
	return paginate(out, limit, offset), nil
}

var _ repository.DailySummaryRepository = (*fakeSummaryRepo)(nil)

// ─── cuentas ─────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	rows map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range r.rows {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// ─── transacciones y notificaciones ──────────────────────────────────────────

// fakeTxRunner ejecuta el callback directo contra el repositorio en memoria
// (los dobles no modelan transacciones).
type fakeTxRunner struct {
	repo repository.PurchaseRepository
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(repository.PurchaseRepository) error) error {
	return fn(t.repo)
}

// fakeNotifier registra cada aviso; con fail devuelve error para probar que
// la agregación lo tolera.
type fakeNotifier struct {
	fail  error
	calls []string // depotName de cada aviso
}

func (n *fakeNotifier) NotifySummary(_ context.Context, depotName string, _ *entity.DailySummary) error {
	n.calls = append(n.calls, depotName)
	return n.fail
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func sortByCreatedDesc[T any](list []T, createdAt func(T) time.Time) {
	sort.SliceStable(list, func(i, j int) bool {
		return createdAt(list[i]).After(createdAt(list[j]))
	})
}
