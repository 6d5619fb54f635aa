package order_test

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/application/order"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria
//
// Un único memStore respalda todos los repositorios fake. Los Get devuelven copias
// y las mutaciones solo aterrizan vía Upsert/Update, igual que contra la BD real.
// El fakeTxRunner toma un snapshot antes de cada Run y lo restaura si fn falla,
// emulando el rollback de la transacción.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	variants   map[string]entity.Variant
	products   map[string]entity.Product
	customers  map[string]entity.Customer
	tiers      []entity.CustomerTier
	inventory  map[string]entity.InventoryRecord
	movements  []entity.StockMovement
	serials    map[string]entity.Serial
	orders     map[string]entity.Order
	orderItems []entity.OrderItem
	promotions map[string]entity.Promotion
	usages     []entity.PromotionUsage
	balances   map[string]entity.LoyaltyPoint
	loyaltyTxs []entity.LoyaltyTransaction
	settings   map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		variants:   map[string]entity.Variant{},
		products:   map[string]entity.Product{},
		customers:  map[string]entity.Customer{},
		inventory:  map[string]entity.InventoryRecord{},
		serials:    map[string]entity.Serial{},
		orders:     map[string]entity.Order{},
		promotions: map[string]entity.Promotion{},
		balances:   map[string]entity.LoyaltyPoint{},
		settings:   map[string]string{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() *memStore {
	return &memStore{
		variants:   copyMap(s.variants),
		products:   copyMap(s.products),
		customers:  copyMap(s.customers),
		tiers:      append([]entity.CustomerTier(nil), s.tiers...),
		inventory:  copyMap(s.inventory),
		movements:  append([]entity.StockMovement(nil), s.movements...),
		serials:    copyMap(s.serials),
		orders:     copyMap(s.orders),
		orderItems: append([]entity.OrderItem(nil), s.orderItems...),
		promotions: copyMap(s.promotions),
		usages:     append([]entity.PromotionUsage(nil), s.usages...),
		balances:   copyMap(s.balances),
		loyaltyTxs: append([]entity.LoyaltyTransaction(nil), s.loyaltyTxs...),
		settings:   copyMap(s.settings),
	}
}

func (s *memStore) restore(snap *memStore) {
	*s = *snap
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeVariantRepo struct{ s *memStore }

var _ repository.VariantRepository = (*fakeVariantRepo)(nil)

func (r *fakeVariantRepo) Create(v *entity.Variant) error {
	r.s.variants[v.ID] = *v
	return nil
}

func (r *fakeVariantRepo) GetByID(id string) (*entity.Variant, error) {
	if v, ok := r.s.variants[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *fakeVariantRepo) GetBySKU(sku string) (*entity.Variant, error) {
	for _, v := range r.s.variants {
		if v.SKU == sku {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *fakeVariantRepo) Update(v *entity.Variant) error {
	r.s.variants[v.ID] = *v
	return nil
}

func (r *fakeVariantRepo) UpdatePurchaseAvg(variantID string, avg decimal.Decimal) error {
	v := r.s.variants[variantID]
	v.PurchasePriceAvg = avg
	r.s.variants[variantID] = v
	return nil
}

func (r *fakeVariantRepo) List(limit, offset int) ([]*entity.Variant, error) { return nil, nil }

type fakeProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type fakeCustomerRepo struct{ s *memStore }

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) UpdateTier(customerID, tierID string) error {
	c := r.s.customers[customerID]
	c.TierID = tierID
	r.s.customers[customerID] = c
	return nil
}

func (r *fakeCustomerRepo) AccrueTotalPurchase(customerID string, amount decimal.Decimal) error {
	c := r.s.customers[customerID]
	c.TotalPurchase = c.TotalPurchase.Add(amount)
	r.s.customers[customerID] = c
	return nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }

type fakeTierRepo struct{ s *memStore }

var _ repository.TierRepository = (*fakeTierRepo)(nil)

func (r *fakeTierRepo) GetByID(id string) (*entity.CustomerTier, error) {
	for _, t := range r.s.tiers {
		if t.ID == id {
			tt := t
			return &tt, nil
		}
	}
	return nil, nil
}

func (r *fakeTierRepo) List() ([]*entity.CustomerTier, error) {
	out := make([]*entity.CustomerTier, 0, len(r.s.tiers))
	for i := range r.s.tiers {
		t := r.s.tiers[i]
		out = append(out, &t)
	}
	return out, nil
}

type fakeInventoryRepo struct{ s *memStore }

var _ repository.InventoryRepository = (*fakeInventoryRepo)(nil)

func (r *fakeInventoryRepo) Get(variantID string) (*entity.InventoryRecord, error) {
	if rec, ok := r.s.inventory[variantID]; ok {
		return &rec, nil
	}
	return &entity.InventoryRecord{VariantID: variantID}, nil
}

func (r *fakeInventoryRepo) GetForUpdate(variantID string) (*entity.InventoryRecord, error) {
	return r.Get(variantID)
}

func (r *fakeInventoryRepo) Upsert(rec *entity.InventoryRecord) error {
	r.s.inventory[rec.VariantID] = *rec
	return nil
}

type fakeMovementRepo struct{ s *memStore }

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *fakeMovementRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.s.movements {
		if r.s.movements[i].VariantID == variantID {
			m := r.s.movements[i]
			out = append(out, &m)
		}
	}
	return out, nil
}

type fakeSerialRepo struct{ s *memStore }

var _ repository.SerialRepository = (*fakeSerialRepo)(nil)

func (r *fakeSerialRepo) Create(sr *entity.Serial) error {
	r.s.serials[sr.ID] = *sr
	return nil
}

func (r *fakeSerialRepo) GetByID(id string) (*entity.Serial, error) {
	if sr, ok := r.s.serials[id]; ok {
		return &sr, nil
	}
	return nil, nil
}

func (r *fakeSerialRepo) GetForUpdate(id string) (*entity.Serial, error) { return r.GetByID(id) }

func (r *fakeSerialRepo) GetBySerialNumberForUpdate(variantID, serialNumber string) (*entity.Serial, error) {
	for _, sr := range r.s.serials {
		if sr.VariantID == variantID && sr.SerialNumber == serialNumber {
			ss := sr
			return &ss, nil
		}
	}
	return nil, nil
}

func (r *fakeSerialRepo) ListAvailableForUpdate(variantID string, limit int) ([]*entity.Serial, error) {
	var out []*entity.Serial
	for _, sr := range r.s.serials {
		if sr.VariantID == variantID && sr.Status == entity.SerialStatusAvailable {
			ss := sr
			out = append(out, &ss)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSerialRepo) CountAvailable(variantID string) (int, error) {
	n := 0
	for _, sr := range r.s.serials {
		if sr.VariantID == variantID && sr.Status == entity.SerialStatusAvailable {
			n++
		}
	}
	return n, nil
}

func (r *fakeSerialRepo) Update(sr *entity.Serial) error {
	r.s.serials[sr.ID] = *sr
	return nil
}

func (r *fakeSerialRepo) ListByOrder(orderID string) ([]*entity.Serial, error) {
	var out []*entity.Serial
	for _, sr := range r.s.serials {
		if sr.OrderID == orderID {
			ss := sr
			out = append(out, &ss)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeOrderRepo struct{ s *memStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	r.s.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) CreateItem(item *entity.OrderItem) error {
	r.s.orderItems = append(r.s.orderItems, *item)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	if o, ok := r.s.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.GetByID(id) }

func (r *fakeOrderRepo) Update(o *entity.Order) error {
	r.s.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) UpdateItem(item *entity.OrderItem) error {
	for i := range r.s.orderItems {
		if r.s.orderItems[i].ID == item.ID {
			r.s.orderItems[i] = *item
			return nil
		}
	}
	return nil
}

func (r *fakeOrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for i := range r.s.orderItems {
		if r.s.orderItems[i].OrderID == orderID {
			it := r.s.orderItems[i]
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}

type fakePromotionRepo struct{ s *memStore }

var _ repository.PromotionRepository = (*fakePromotionRepo)(nil)

func (r *fakePromotionRepo) Create(p *entity.Promotion) error {
	r.s.promotions[p.ID] = *p
	return nil
}

func (r *fakePromotionRepo) GetByID(id string) (*entity.Promotion, error) {
	if p, ok := r.s.promotions[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakePromotionRepo) GetByCode(code string) (*entity.Promotion, error) {
	for _, p := range r.s.promotions {
		if p.Code == code {
			pp := p
			return &pp, nil
		}
	}
	return nil, nil
}

func (r *fakePromotionRepo) GetForUpdate(id string) (*entity.Promotion, error) { return r.GetByID(id) }

func (r *fakePromotionRepo) Update(p *entity.Promotion) error {
	r.s.promotions[p.ID] = *p
	return nil
}

func (r *fakePromotionRepo) ListActiveAt(t time.Time) ([]*entity.Promotion, error) {
	var out []*entity.Promotion
	for _, p := range r.s.promotions {
		if p.ActiveAt(t) {
			pp := p
			out = append(out, &pp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority == out[j].Priority {
			return out[i].ID < out[j].ID
		}
		return out[i].Priority > out[j].Priority
	})
	return out, nil
}

func (r *fakePromotionRepo) ListByStatus(status string, limit, offset int) ([]*entity.Promotion, error) {
	var out []*entity.Promotion
	for _, p := range r.s.promotions {
		if p.Status == status {
			pp := p
			out = append(out, &pp)
		}
	}
	return out, nil
}

func (r *fakePromotionRepo) CreateUsage(u *entity.PromotionUsage) error {
	r.s.usages = append(r.s.usages, *u)
	return nil
}

func (r *fakePromotionRepo) DeleteUsageByOrder(orderID string) error {
	kept := r.s.usages[:0]
	for _, u := range r.s.usages {
		if u.OrderID != orderID {
			kept = append(kept, u)
		}
	}
	r.s.usages = kept
	return nil
}

func (r *fakePromotionRepo) ListUsageByOrder(orderID string) ([]*entity.PromotionUsage, error) {
	var out []*entity.PromotionUsage
	for i := range r.s.usages {
		if r.s.usages[i].OrderID == orderID {
			u := r.s.usages[i]
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *fakePromotionRepo) CountUsageByCustomer(promotionID, customerID string) (int, error) {
	n := 0
	for _, u := range r.s.usages {
		if u.PromotionID == promotionID && u.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

type fakeLoyaltyRepo struct{ s *memStore }

var _ repository.LoyaltyRepository = (*fakeLoyaltyRepo)(nil)

func (r *fakeLoyaltyRepo) GetBalance(customerID string) (*entity.LoyaltyPoint, error) {
	if b, ok := r.s.balances[customerID]; ok {
		return &b, nil
	}
	return &entity.LoyaltyPoint{CustomerID: customerID}, nil
}

func (r *fakeLoyaltyRepo) GetBalanceForUpdate(customerID string) (*entity.LoyaltyPoint, error) {
	return r.GetBalance(customerID)
}

func (r *fakeLoyaltyRepo) UpsertBalance(b *entity.LoyaltyPoint) error {
	r.s.balances[b.CustomerID] = *b
	return nil
}

func (r *fakeLoyaltyRepo) CreateTransaction(tx *entity.LoyaltyTransaction) error {
	r.s.loyaltyTxs = append(r.s.loyaltyTxs, *tx)
	return nil
}

func (r *fakeLoyaltyRepo) GetEarnByOrder(orderID string) (*entity.LoyaltyTransaction, error) {
	for i := range r.s.loyaltyTxs {
		if r.s.loyaltyTxs[i].OrderID == orderID && r.s.loyaltyTxs[i].Kind == entity.LoyaltyTxEarn {
			tx := r.s.loyaltyTxs[i]
			return &tx, nil
		}
	}
	return nil, nil
}

func (r *fakeLoyaltyRepo) ListTransactions(customerID string, limit, offset int) ([]*entity.LoyaltyTransaction, error) {
	var out []*entity.LoyaltyTransaction
	for i := range r.s.loyaltyTxs {
		if r.s.loyaltyTxs[i].CustomerID == customerID {
			tx := r.s.loyaltyTxs[i]
			out = append(out, &tx)
		}
	}
	return out, nil
}

type fakeSettingRepo struct{ s *memStore }

var _ repository.SettingRepository = (*fakeSettingRepo)(nil)

func (r *fakeSettingRepo) GetString(key, def string) (string, error) {
	if v, ok := r.s.settings[key]; ok {
		return v, nil
	}
	return def, nil
}

func (r *fakeSettingRepo) GetInt(key string, def int64) (int64, error) {
	v, ok := r.s.settings[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def, nil
	}
	return n, nil
}

func (r *fakeSettingRepo) GetDecimal(key string, def decimal.Decimal) (decimal.Decimal, error) {
	v, ok := r.s.settings[key]
	if !ok {
		return def, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return def, nil
	}
	return d, nil
}

func (r *fakeSettingRepo) GetBool(key string, def bool) (bool, error) {
	v, ok := r.s.settings[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, nil
	}
	return b, nil
}

func (r *fakeSettingRepo) Set(key, value string) error {
	r.s.settings[key] = value
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Colaboradores fake del orquestador
// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta fn contra el almacén compartido y restaura el snapshot
// previo cuando fn falla, imitando el rollback transaccional.
type fakeTxRunner struct {
	s     *memStore
	repos order.TxRepos
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(r order.TxRepos) error) error {
	snap := tr.s.snapshot()
	if err := fn(tr.repos); err != nil {
		tr.s.restore(snap)
		return err
	}
	return nil
}

type auditEntry struct {
	ActorID, Module, Action, ResourceID, OldValue, NewValue, Outcome string
}

type recordingAudit struct{ entries []auditEntry }

func (a *recordingAudit) Log(actorID, module, action, resourceID, oldValue, newValue, outcome string) {
	a.entries = append(a.entries, auditEntry{actorID, module, action, resourceID, oldValue, newValue, outcome})
}

func (a *recordingAudit) last() auditEntry {
	if len(a.entries) == 0 {
		return auditEntry{}
	}
	return a.entries[len(a.entries)-1]
}

type recordingNotifier struct{ created []*entity.Order }

func (n *recordingNotifier) OrderCreated(o *entity.Order) {
	n.created = append(n.created, o)
}
