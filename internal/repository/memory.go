package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopadmin/internal/domain"
)

// MemoryStore объединённое in-memory хранилище бэкенда-заглушки
type MemoryStore struct {
	mu             sync.RWMutex
	seq            int64
	productsByID   map[string]entry[domain.Product]
	ordersByID     map[string]entry[domain.Order]
	categoriesByID map[string]entry[domain.Category]
	usersByID      map[string]entry[domain.User]
	passwords      map[string][]byte // username -> bcrypt hash
}

// entry keeps insertion order so listings are stable.
type entry[T any] struct {
	seq int64
	v   T
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		productsByID:   make(map[string]entry[domain.Product]),
		ordersByID:     make(map[string]entry[domain.Order]),
		categoriesByID: make(map[string]entry[domain.Category]),
		usersByID:      make(map[string]entry[domain.User]),
		passwords:      make(map[string][]byte),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

func (m *MemoryStore) next() int64 {
	m.seq++
	return m.seq
}

func sorted[T any](in map[string]entry[T], keep func(T) bool) []T {
	es := make([]entry[T], 0, len(in))
	for _, e := range in {
		if keep == nil || keep(e.v) {
			es = append(es, e)
		}
	}
	sort.Slice(es, func(i, j int) bool { return es[i].seq < es[j].seq })
	out := make([]T, 0, len(es))
	for _, e := range es {
		out = append(out, e.v)
	}
	return out
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	p.Category = nil
	if c, ok := m.categoriesByID[p.CategoryID]; ok {
		cp := c.v
		p.Category = &cp
	}
	m.productsByID[p.ID] = entry[domain.Product]{seq: m.next(), v: *p}
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p.v
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	e, ok := m.productsByID[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.CreatedAt = e.v.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	p.Category = nil
	if c, ok := m.categoriesByID[p.CategoryID]; ok {
		cp := c.v
		p.Category = &cp
	}
	e.v = *p
	m.productsByID[p.ID] = e
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return sorted(m.productsByID, func(p domain.Product) bool {
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			return false
		}
		return f.CategoryID == "" || p.CategoryID == f.CategoryID
	}), nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	o.UpdatedAt = o.CreatedAt
	if o.DeliveryStatus == "" {
		o.DeliveryStatus = domain.DeliveryPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = domain.PaymentPending
	}
	if u, ok := mo.store.usersByID[o.UserID]; ok {
		cp := u.v
		o.User = &cp
	}
	for i := range o.OrderItems {
		it := &o.OrderItems[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.OrderID = o.ID
		if p, ok := mo.store.productsByID[it.ProductID]; ok {
			cp := p.v
			it.Product = &cp
		}
	}
	mo.store.ordersByID[o.ID] = entry[domain.Order]{seq: mo.store.next(), v: *o}
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o.v
	return &cp, nil
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	e, ok := mo.store.ordersByID[o.ID]
	if !ok {
		return ErrNotFound
	}
	o.UpdatedAt = time.Now().UTC()
	e.v = *o
	mo.store.ordersByID[o.ID] = e
	return nil
}

func (mo *MemoryOrders) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	return sorted(mo.store.ordersByID, func(o domain.Order) bool {
		if f.Status != "" && o.DeliveryStatus != f.Status {
			return false
		}
		if f.PaymentStatus != "" && o.PaymentStatus != f.PaymentStatus {
			return false
		}
		if f.Search == "" {
			return true
		}
		return containsIgnoreCase(o.ID, f.Search) || containsIgnoreCase(o.CustomerName(), f.Search)
	}), nil
}

// MemoryCategories категории поверх общего хранилища
type MemoryCategories struct{ store *MemoryStore }

func NewMemoryCategories(store *MemoryStore) *MemoryCategories {
	return &MemoryCategories{store: store}
}

var _ CategoryRepository = (*MemoryCategories)(nil)

func (mc *MemoryCategories) Create(ctx context.Context, c *domain.Category) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for _, e := range mc.store.categoriesByID {
		if e.v.Name == c.Name {
			return ErrConflict
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	mc.store.categoriesByID[c.ID] = entry[domain.Category]{seq: mc.store.next(), v: *c}
	return nil
}

func (mc *MemoryCategories) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	c, ok := mc.store.categoriesByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c.v
	return &cp, nil
}

func (mc *MemoryCategories) List(ctx context.Context) ([]domain.Category, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	return sorted(mc.store.categoriesByID, nil), nil
}

// MemoryUsers пользователи и их пароли (bcrypt)
type MemoryUsers struct{ store *MemoryStore }

func NewMemoryUsers(store *MemoryStore) *MemoryUsers { return &MemoryUsers{store: store} }

var _ UserRepository = (*MemoryUsers)(nil)

func (mu *MemoryUsers) Create(ctx context.Context, u *domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	if _, taken := mu.store.passwords[u.Username]; taken {
		return ErrConflict
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	mu.store.usersByID[u.ID] = entry[domain.User]{seq: mu.store.next(), v: *u}
	mu.store.passwords[u.Username] = hash
	return nil
}

func (mu *MemoryUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	u, ok := mu.store.usersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u.v
	return &cp, nil
}

func (mu *MemoryUsers) List(ctx context.Context) ([]domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	return sorted(mu.store.usersByID, nil), nil
}

func (mu *MemoryUsers) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	hash, ok := mu.store.passwords[username]
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	for _, e := range mu.store.usersByID {
		if e.v.Username == username {
			cp := e.v
			return &cp, nil
		}
	}
	return nil, ErrBadCredentials
}

// Delete removes the user together with its password; orders keep the
// dangling UserID.
func (mu *MemoryUsers) Delete(ctx context.Context, id string) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	u, ok := mu.store.usersByID[id]
	if !ok {
		return ErrNotFound
	}
	delete(mu.store.usersByID, id)
	delete(mu.store.passwords, u.v.Username)
	return nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// репозитории пропускают внутренние локи, пока контекст помечен
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
