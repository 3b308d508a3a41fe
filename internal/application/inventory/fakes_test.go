package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repos, tx runner, reloj y publisher
// ──────────────────────────────────────────────────────────────────────────────

// fixedClock reloj determinista para los tests.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

// fakeStore contiene el estado compartido de los fakes. txMu serializa las
// transacciones (simula el bloqueo de fila de PostgreSQL); mu protege los
// accesos individuales a los mapas.
type fakeStore struct {
	txMu      sync.Mutex
	mu        sync.Mutex
	items     map[string]*entity.Item
	movements []*entity.StockMovement
	alerts    map[string]*entity.Alert
	audits    []*entity.AuditLog

	// inyección de fallos
	failMovementCreate error
	failAlertCreate    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:  make(map[string]*entity.Item),
		alerts: make(map[string]*entity.Alert),
	}
}

func (s *fakeStore) putItem(i *entity.Item) {
	c := *i
	s.items[i.ID] = &c
}

func cloneItem(i *entity.Item) *entity.Item {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// ── ItemRepository ────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	s *fakeStore
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.putItem(item)
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return cloneItem(r.s.items[id]), nil
}

func (r *fakeItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, i := range r.s.items {
		if i.SKU == sku {
			return cloneItem(i), nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return cloneItem(r.s.items[id]), nil
}

func (r *fakeItemRepo) Update(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.items[item.ID]
	if !ok {
		return nil
	}
	qty, lastRestock := stored.Quantity, stored.LastRestockDate
	c := *item
	c.Quantity, c.LastRestockDate = qty, lastRestock
	r.s.items[item.ID] = &c
	return nil
}

func (r *fakeItemRepo) UpdateQuantity(itemID string, quantity int64, lastRestock *time.Time, updatedBy string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.items[itemID]
	if !ok {
		return nil
	}
	stored.Quantity = quantity
	stored.LastRestockDate = lastRestock
	stored.UpdatedBy = updatedBy
	stored.UpdatedAt = updatedAt
	return nil
}

func (r *fakeItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Item
	for _, i := range r.s.items {
		out = append(out, cloneItem(i))
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeItemRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.items, id)
	return nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type fakeMovementRepo struct {
	s *fakeStore
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failMovementCreate != nil {
		return r.s.failMovementCreate
	}
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.movements {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			c := *m
			all = append(all, &c)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeMovementRepo) CountByItem(itemID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

// ── AlertRepository ───────────────────────────────────────────────────────────

type fakeAlertRepo struct {
	s *fakeStore
}

var _ repository.AlertRepository = (*fakeAlertRepo)(nil)

func (r *fakeAlertRepo) Create(a *entity.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failAlertCreate != nil {
		return r.s.failAlertCreate
	}
	// Igual que el índice único parcial del store real: a lo sumo una
	// alerta activa por (artículo, tipo).
	if a.Status == entity.AlertStatusActive {
		for _, existing := range r.s.alerts {
			if existing.ItemID == a.ItemID && existing.Type == a.Type &&
				existing.Status == entity.AlertStatusActive {
				return domain.ErrDuplicate
			}
		}
	}
	c := *a
	r.s.alerts[a.ID] = &c
	return nil
}

func (r *fakeAlertRepo) GetByID(id string) (*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.alerts[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *fakeAlertRepo) FindActiveByItemAndType(itemID, alertType string) (*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.alerts {
		if a.ItemID == itemID && a.Type == alertType && a.Status == entity.AlertStatusActive {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) List(filter repository.AlertFilter) ([]*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Alert
	for _, a := range r.s.alerts {
		if filter.ItemID != "" && a.ItemID != filter.ItemID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeAlertRepo) UpdateStatus(a *entity.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.alerts[a.ID]
	if !ok {
		return nil
	}
	stored.Status = a.Status
	stored.ResolvedAt = a.ResolvedAt
	stored.ResolvedBy = a.ResolvedBy
	return nil
}

func (r *fakeAlertRepo) CountByItem(itemID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, a := range r.s.alerts {
		if a.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

// ── AuditLogRepository ────────────────────────────────────────────────────────

type fakeAuditRepo struct {
	s *fakeStore
}

var _ repository.AuditLogRepository = (*fakeAuditRepo)(nil)

func (r *fakeAuditRepo) Create(l *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *l
	r.s.audits = append(r.s.audits, &c)
	return nil
}

func (r *fakeAuditRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.audits, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner serializa las transacciones con el mutex del store (equivalente
// al bloqueo de fila) y restaura un snapshot si la función devuelve error,
// simulando el rollback.
type fakeTxRunner struct {
	s *fakeStore
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (tr *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tr.s.txMu.Lock()
	defer tr.s.txMu.Unlock()

	tr.s.mu.Lock()
	snapItems := make(map[string]*entity.Item, len(tr.s.items))
	for id, i := range tr.s.items {
		snapItems[id] = cloneItem(i)
	}
	snapMovements := append([]*entity.StockMovement(nil), tr.s.movements...)
	tr.s.mu.Unlock()

	err := fn(&fakeItemRepo{s: tr.s}, &fakeMovementRepo{s: tr.s})
	if err != nil {
		tr.s.mu.Lock()
		tr.s.items = snapItems
		tr.s.movements = snapMovements
		tr.s.mu.Unlock()
		return err
	}
	return nil
}

// ── AlertPublisher ────────────────────────────────────────────────────────────

type fakePublisher struct {
	mu     sync.Mutex
	events []*inventory.AlertEvent
	err    error
}

var _ inventory.AlertPublisher = (*fakePublisher)(nil)

func (p *fakePublisher) PublishAlertEvent(_ context.Context, ev *inventory.AlertEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}
