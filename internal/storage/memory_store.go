// internal/storage/memory_store.go
package storage

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
)

// MemoryStore is an in-process Store. It keeps the same ordering, uniqueness and cascade
// rules as SQLStore and is used for STORE_BACKEND=memory and in tests.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[int64]domain.User
	collections map[int64]domain.Collection
	items       map[int64]domain.Item
	events      map[int64]domain.Event
	nextID      map[string]int64
	now         func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int64]domain.User),
		collections: make(map[int64]domain.Collection),
		items:       make(map[int64]domain.Item),
		events:      make(map[int64]domain.Event),
		nextID:      make(map[string]int64),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) allocID(table string) int64 {
	m.nextID[table]++
	return m.nextID[table]
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

// --- Users ---

func (m *MemoryStore) userConflict(u *domain.User) error {
	for _, existing := range m.users {
		if existing.ID == u.ID {
			continue
		}
		if existing.Email == u.Email {
			return ErrEmailExists
		}
		if existing.Username == u.Username {
			return ErrUsernameExists
		}
	}
	return nil
}

func (m *MemoryStore) CreateUser(_ context.Context, u *domain.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.userConflict(u); err != nil {
		return 0, err
	}
	u.ID = m.allocID("users")
	if u.CreatedAt.IsZero() {
		u.CreatedAt = m.now()
	}
	m.users[u.ID] = *u
	return u.ID, nil
}

func (m *MemoryStore) FindUserByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *MemoryStore) FindUserByLogin(_ context.Context, login string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == login || u.Username == login {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemoryStore) UpdateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[u.ID]
	if !ok {
		return ErrUserNotFound
	}
	if err := m.userConflict(u); err != nil {
		return err
	}
	existing.Name = u.Name
	existing.Username = u.Username
	existing.Email = u.Email
	existing.DateOfBirth = u.DateOfBirth
	existing.ProfilePicture = u.ProfilePicture
	m.users[u.ID] = existing
	return nil
}

// --- Collections ---

func (m *MemoryStore) CreateCollection(_ context.Context, c *domain.Collection) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[c.UserID]; !ok {
		return 0, storageErr("create collection", ErrUserNotFound)
	}
	c.ID = m.allocID("collections")
	if c.CreatedAt.IsZero() {
		c.CreatedAt = m.now()
	}
	m.collections[c.ID] = *c
	return c.ID, nil
}

func (m *MemoryStore) FindCollection(_ context.Context, id int64) (*domain.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[id]
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return &c, nil
}

func (m *MemoryStore) ListCollections(_ context.Context, userID int64, opts domain.ListOptions) ([]domain.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	opts = core.CollectionSort.Normalize(opts)
	var rows []domain.Collection
	for _, c := range m.collections {
		if c.UserID == userID {
			rows = append(rows, c)
		}
	}
	sortRows(rows, opts, func(a, b domain.Collection) int {
		switch opts.SortBy {
		case "name":
			return cmp.Compare(a.Name, b.Name)
		case "type":
			return cmp.Compare(a.Type, b.Type)
		case "created_at":
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return 0
	}, func(c domain.Collection) int64 { return c.ID })
	return page(rows, opts), nil
}

func (m *MemoryStore) UpdateCollection(_ context.Context, c *domain.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.collections[c.ID]
	if !ok {
		return ErrCollectionNotFound
	}
	existing.Name = c.Name
	existing.Type = c.Type
	existing.Description = c.Description
	existing.Image = c.Image
	m.collections[c.ID] = existing
	return nil
}

func (m *MemoryStore) DeleteCollection(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[id]; !ok {
		return ErrCollectionNotFound
	}
	delete(m.collections, id)
	for itemID, it := range m.items {
		if it.CollectionID == id {
			delete(m.items, itemID)
		}
	}
	for eventID, ev := range m.events {
		if ev.CollectionID == id {
			delete(m.events, eventID)
		}
	}
	return nil
}

func (m *MemoryStore) CollectionOwner(_ context.Context, id int64) (domain.Ownership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[id]
	if !ok {
		return domain.Ownership{CollectionID: id}, ErrCollectionNotFound
	}
	return domain.Ownership{OwnerID: c.UserID, CollectionID: id}, nil
}

// --- Items ---

func (m *MemoryStore) CreateItem(_ context.Context, it *domain.Item) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[it.CollectionID]; !ok {
		return 0, storageErr("create item", ErrCollectionNotFound)
	}
	it.ID = m.allocID("items")
	m.items[it.ID] = cloneItem(*it)
	return it.ID, nil
}

func (m *MemoryStore) FindItem(_ context.Context, id int64) (*domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	it = cloneItem(it)
	return &it, nil
}

func (m *MemoryStore) ListItems(_ context.Context, collectionID int64, opts domain.ListOptions) ([]domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	opts = core.ItemSort.Normalize(opts)
	rows := make([]domain.Item, 0)
	for _, it := range m.items {
		if it.CollectionID == collectionID {
			rows = append(rows, cloneItem(it))
		}
	}
	sortRows(rows, opts, func(a, b domain.Item) int {
		switch opts.SortBy {
		case "name":
			return cmp.Compare(a.Name, b.Name)
		case "importance":
			return cmp.Compare(a.Importance, b.Importance)
		case "price":
			return compareNullable(a.Price, b.Price)
		case "weight":
			return compareNullable(a.Weight, b.Weight)
		case "acquisition_date":
			return cmp.Compare(a.AcquisitionDate, b.AcquisitionDate)
		case "rating":
			return compareNullable(a.Rating, b.Rating)
		}
		return 0
	}, func(it domain.Item) int64 { return it.ID })
	return page(rows, opts), nil
}

func (m *MemoryStore) UpdateItem(_ context.Context, it *domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[it.ID]; !ok {
		return ErrItemNotFound
	}
	if _, ok := m.collections[it.CollectionID]; !ok {
		return storageErr("update item", ErrCollectionNotFound)
	}
	m.items[it.ID] = cloneItem(*it)
	return nil
}

func (m *MemoryStore) DeleteItem(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) ItemOwner(_ context.Context, id int64) (domain.Ownership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.items[id]
	if !ok {
		return domain.Ownership{}, ErrItemNotFound
	}
	c, ok := m.collections[it.CollectionID]
	if !ok {
		return domain.Ownership{}, ErrItemNotFound
	}
	return domain.Ownership{OwnerID: c.UserID, CollectionID: c.ID}, nil
}

// --- Events ---

func (m *MemoryStore) CreateEvent(_ context.Context, ev *domain.Event) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[ev.CollectionID]; !ok {
		return 0, storageErr("create event", ErrCollectionNotFound)
	}
	ev.ID = m.allocID("events")
	m.events[ev.ID] = cloneEvent(*ev)
	return ev.ID, nil
}

func (m *MemoryStore) FindEvent(_ context.Context, id int64) (*domain.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ev, ok := m.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	ev = cloneEvent(ev)
	return &ev, nil
}

func (m *MemoryStore) ListEvents(_ context.Context, collectionID int64, opts domain.ListOptions) ([]domain.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	opts = core.EventSort.Normalize(opts)
	rows := make([]domain.Event, 0)
	for _, ev := range m.events {
		if ev.CollectionID == collectionID {
			rows = append(rows, cloneEvent(ev))
		}
	}
	sortRows(rows, opts, func(a, b domain.Event) int {
		switch opts.SortBy {
		case "date":
			return cmp.Compare(a.Date, b.Date)
		case "name":
			return cmp.Compare(a.Name, b.Name)
		case "rating":
			return compareNullable(a.Rating, b.Rating)
		}
		return 0
	}, func(ev domain.Event) int64 { return ev.ID })
	return page(rows, opts), nil
}

func (m *MemoryStore) UpdateEvent(_ context.Context, ev *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[ev.ID]; !ok {
		return ErrEventNotFound
	}
	if _, ok := m.collections[ev.CollectionID]; !ok {
		return storageErr("update event", ErrCollectionNotFound)
	}
	m.events[ev.ID] = cloneEvent(*ev)
	return nil
}

func (m *MemoryStore) DeleteEvent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *MemoryStore) EventOwner(_ context.Context, id int64) (domain.Ownership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ev, ok := m.events[id]
	if !ok {
		return domain.Ownership{}, ErrEventNotFound
	}
	c, ok := m.collections[ev.CollectionID]
	if !ok {
		return domain.Ownership{}, ErrEventNotFound
	}
	return domain.Ownership{OwnerID: c.UserID, CollectionID: c.ID}, nil
}

// --- helpers ---

// sortRows orders rows by byColumn then id, both in opts.SortOrder.
func sortRows[T any](rows []T, opts domain.ListOptions, byColumn func(a, b T) int, id func(T) int64) {
	slices.SortFunc(rows, func(a, b T) int {
		c := byColumn(a, b)
		if c == 0 {
			c = cmp.Compare(id(a), id(b))
		}
		if opts.SortOrder == "desc" {
			return -c
		}
		return c
	})
}

func page[T any](rows []T, opts domain.ListOptions) []T {
	if opts.Offset >= len(rows) {
		return make([]T, 0)
	}
	end := min(opts.Offset+opts.Limit, len(rows))
	return rows[opts.Offset:end]
}

// compareNullable sorts nil before any value, as SQLite does for NULL.
func compareNullable[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

func cloneItem(it domain.Item) domain.Item {
	it.Weight = clonePtr(it.Weight)
	it.Price = clonePtr(it.Price)
	it.Rating = clonePtr(it.Rating)
	return it
}

func cloneEvent(ev domain.Event) domain.Event {
	ev.Rating = clonePtr(ev.Rating)
	return ev
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
