// internal/service/service_test.go
package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/auth"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/media"
	"github.com/Annany2002/collecta-backend/internal/storage"
)

// memFiles is an in-memory media.Storage.
type memFiles struct {
	mu    sync.Mutex
	files map[string][]byte
	next  int
}

func newMemFiles() *memFiles { return &memFiles{files: map[string][]byte{}} }

func (m *memFiles) Save(_ context.Context, data []byte, ext string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	path := fmt.Sprintf("uploads/%d.%s", m.next, ext)
	m.files[path] = data
	return path, nil
}

func (m *memFiles) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *memFiles) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

func (m *memFiles) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

// failingWrites makes every item and event insert fail like a broken database.
type failingWrites struct {
	storage.Store
}

func (f failingWrites) CreateItem(context.Context, *domain.Item) (int64, error) {
	return 0, fmt.Errorf("%w: disk I/O error", domain.ErrStorage)
}

func (f failingWrites) CreateEvent(context.Context, *domain.Event) (int64, error) {
	return 0, fmt.Errorf("%w: disk I/O error", domain.ErrStorage)
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *Service
	store storage.Store
	files *memFiles
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, storage.NewMemoryStore())
}

func newFixtureWith(t *testing.T, store storage.Store) *fixture {
	t.Helper()
	files := newMemFiles()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}
	svc := New(store, files, cfg)
	svc.SetClock(func() time.Time { return testNow })
	return &fixture{svc: svc, store: store, files: files}
}

func (f *fixture) user(t *testing.T, username string) *domain.Caller {
	t.Helper()
	u, err := f.svc.Register(context.Background(), RegisterInput{
		Name:     username,
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return domain.NewCaller(u.ID)
}

func (f *fixture) collection(t *testing.T, caller *domain.Caller, name string) *domain.Collection {
	t.Helper()
	c, err := f.svc.CreateCollection(context.Background(), caller, CollectionInput{Name: &name}, nil)
	require.NoError(t, err)
	return c
}

func (f *fixture) item(t *testing.T, caller *domain.Caller, collectionID int64, name string) *domain.Item {
	t.Helper()
	it, err := f.svc.CreateItem(context.Background(), caller, collectionID, ItemInput{Name: &name, Importance: ptr(5)}, nil)
	require.NoError(t, err)
	return it
}

func (f *fixture) event(t *testing.T, caller *domain.Caller, collectionID int64, date string) *domain.Event {
	t.Helper()
	ev, err := f.svc.CreateEvent(context.Background(), caller, collectionID, EventInput{Name: ptr("Con"), Date: &date}, nil)
	require.NoError(t, err)
	return ev
}

func ptr[T any](v T) *T { return &v }

func pngImage() *media.Image {
	return &media.Image{Data: []byte("png"), Ext: "png", MIME: "image/png"}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.svc.Register(ctx, RegisterInput{
		Name: "Ada", Username: "ada", Email: "  Ada@Example.com ", Password: "password123", DateOfBirth: "1990-12-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "password123", u.PasswordHash)

	_, err = f.svc.Register(ctx, RegisterInput{Name: "Ada", Username: "ada2", Email: "ADA@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = f.svc.Register(ctx, RegisterInput{Name: "Ada", Username: "ada", Email: "other@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	invalid := []RegisterInput{
		{Name: "X", Username: "xx1", Email: "x@example.com", Password: "short"},
		{Name: "X", Username: "xx1", Email: "not-an-email", Password: "password123"},
		{Name: "", Username: "xx1", Email: "x@example.com", Password: "password123"},
		{Name: "X", Username: "x@y", Email: "x@example.com", Password: "password123"},
		{Name: "X", Username: "xx1", Email: "x@example.com", Password: "password123", DateOfBirth: "10/12/1990"},
		{Name: "X", Username: "xx1", Email: "x@example.com", Password: "password123", DateOfBirth: "2099-01-01"},
	}
	for i, in := range invalid {
		_, err := f.svc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "case %d", i)
	}

	for _, login := range []string{"ada", "ADA@example.com"} {
		token, got, err := f.svc.Login(ctx, LoginInput{Login: login, Password: "password123"})
		require.NoError(t, err, login)
		assert.Equal(t, u.ID, got.ID)
		id, err := auth.ValidateJWT(token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, u.ID, id)
	}

	_, _, errWrong := f.svc.Login(ctx, LoginInput{Login: "ada", Password: "wrong-password"})
	_, _, errUnknown := f.svc.Login(ctx, LoginInput{Login: "nobody", Password: "password123"})
	assert.ErrorIs(t, errWrong, domain.ErrUnauthenticated)
	assert.ErrorIs(t, errUnknown, domain.ErrUnauthenticated)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.user(t, "ada")
	f.user(t, "bob")

	_, err := f.svc.Me(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	u, err := f.svc.UpdateProfile(ctx, ada, ProfileInput{Name: ptr("Ada L."), Email: ptr("ADA.L@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", u.Name)
	assert.Equal(t, "ada.l@example.com", u.Email)
	assert.Equal(t, "ada", u.Username)

	_, err = f.svc.UpdateProfile(ctx, ada, ProfileInput{Username: ptr("bob")})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = f.svc.UpdateProfile(ctx, ada, ProfileInput{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err = f.svc.SetProfilePicture(ctx, ada, pngImage())
	require.NoError(t, err)
	first := u.ProfilePicture
	assert.True(t, f.files.has(first))

	u, err = f.svc.SetProfilePicture(ctx, ada, pngImage())
	require.NoError(t, err)
	assert.True(t, f.files.has(u.ProfilePicture))
	assert.False(t, f.files.has(first), "replaced picture is removed")
}

func TestCrossUserAccessIsForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.user(t, "user1")
	u2 := f.user(t, "user2")

	minis := f.collection(t, u1, "Minis")
	it := f.item(t, u1, minis.ID, "Figure")
	ev := f.event(t, u1, minis.ID, "2024-01-01")
	own := f.collection(t, u2, "Mine")

	ops := map[string]func() error{
		"get collection":    func() error { _, err := f.svc.GetCollection(ctx, u2, minis.ID); return err },
		"update collection": func() error { _, err := f.svc.UpdateCollection(ctx, u2, minis.ID, CollectionInput{Name: ptr("x")}, nil); return err },
		"delete collection": func() error { return f.svc.DeleteCollection(ctx, u2, minis.ID) },
		"collection image":  func() error { _, err := f.svc.SetCollectionImage(ctx, u2, minis.ID, pngImage()); return err },
		"list items":        func() error { _, err := f.svc.ListItems(ctx, u2, minis.ID, domain.ListOptions{}); return err },
		"create item": func() error {
			_, err := f.svc.CreateItem(ctx, u2, minis.ID, ItemInput{Name: ptr("x"), Importance: ptr(1)}, nil)
			return err
		},
		"get item":     func() error { _, err := f.svc.GetItem(ctx, u2, it.ID); return err },
		"update item":  func() error { _, err := f.svc.UpdateItem(ctx, u2, it.ID, ItemInput{Name: ptr("x")}, nil); return err },
		"steal item":   func() error { _, err := f.svc.UpdateItem(ctx, u2, it.ID, ItemInput{CollectionID: &own.ID}, nil); return err },
		"rate item":    func() error { _, err := f.svc.RateItem(ctx, u2, it.ID, ptr(3)); return err },
		"item image":   func() error { _, err := f.svc.SetItemImage(ctx, u2, it.ID, pngImage()); return err },
		"delete item":  func() error { return f.svc.DeleteItem(ctx, u2, it.ID) },
		"list events":  func() error { _, err := f.svc.ListEvents(ctx, u2, minis.ID, domain.ListOptions{}); return err },
		"get event":    func() error { _, err := f.svc.GetEvent(ctx, u2, ev.ID); return err },
		"update event": func() error { _, err := f.svc.UpdateEvent(ctx, u2, ev.ID, EventInput{Name: ptr("x")}, nil); return err },
		"rate event":   func() error { _, err := f.svc.RateEvent(ctx, u2, ev.ID, ptr(3)); return err },
		"event image":  func() error { _, err := f.svc.SetEventImage(ctx, u2, ev.ID, pngImage()); return err },
		"delete event": func() error { return f.svc.DeleteEvent(ctx, u2, ev.ID) },
	}
	for name, op := range ops {
		assert.ErrorIs(t, op(), domain.ErrForbidden, name)
	}

	got, err := f.svc.GetItem(ctx, u1, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it, got)
	assert.Equal(t, 0, f.files.count(), "rejected uploads leave no file")

	_, err = f.svc.GetItem(ctx, nil, it.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = f.svc.ListItems(ctx, nil, minis.ID, domain.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestItemValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "user1")
	c := f.collection(t, u, "Minis")

	invalid := map[string]ItemInput{
		"importance above range": {Name: ptr("Figure A"), Importance: ptr(11)},
		"importance below range": {Name: ptr("Figure A"), Importance: ptr(-1)},
		"importance missing":     {Name: ptr("Figure A")},
		"rating above range":     {Name: ptr("Figure A"), Importance: ptr(1), Rating: ptr(6)},
		"rating below range":     {Name: ptr("Figure A"), Importance: ptr(1), Rating: ptr(-1)},
		"negative price":         {Name: ptr("Figure A"), Importance: ptr(1), Price: ptr(-0.5)},
		"negative weight":        {Name: ptr("Figure A"), Importance: ptr(1), Weight: ptr(-2.0)},
		"blank name":             {Name: ptr("   "), Importance: ptr(1)},
		"bad date":               {Name: ptr("Figure A"), Importance: ptr(1), AcquisitionDate: ptr("2024-13-01")},
	}
	for name, in := range invalid {
		_, err := f.svc.CreateItem(ctx, u, c.ID, in, pngImage())
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}

	items, err := f.svc.ListItems(ctx, u, c.ID, domain.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, items, "no row written")
	assert.Equal(t, 0, f.files.count(), "no file written")

	it := f.item(t, u, c.ID, "Figure A")
	_, err = f.svc.UpdateItem(ctx, u, it.ID, ItemInput{Importance: ptr(11)}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.RateItem(ctx, u, it.ID, ptr(6))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.svc.GetItem(ctx, u, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Importance)
	assert.Nil(t, got.Rating)
}

func TestItemRoundTripAndRating(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "user1")
	c := f.collection(t, u, "Minis")

	in := ItemInput{
		Name: ptr("Figure A"), Importance: ptr(7), Weight: ptr(0.25), Price: ptr(19.99),
		AcquisitionDate: ptr("2023-04-01"), Rating: ptr(4), Description: ptr("painted"),
	}
	created, err := f.svc.CreateItem(ctx, u, c.ID, in, pngImage())
	require.NoError(t, err)
	assert.True(t, f.files.has(created.Image))

	got, err := f.svc.GetItem(ctx, u, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "Figure A", got.Name)
	assert.Equal(t, 7, got.Importance)
	assert.Equal(t, 0.25, *got.Weight)
	assert.Equal(t, 19.99, *got.Price)
	assert.Equal(t, "2023-04-01", got.AcquisitionDate)
	assert.Equal(t, 4, *got.Rating)

	rated, err := f.svc.RateItem(ctx, u, created.ID, ptr(0))
	require.NoError(t, err)
	assert.Equal(t, 0, *rated.Rating)

	cleared, err := f.svc.RateItem(ctx, u, created.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.Rating)

	oldImage := created.Image
	withImage, err := f.svc.SetItemImage(ctx, u, created.ID, pngImage())
	require.NoError(t, err)
	assert.NotEqual(t, oldImage, withImage.Image)
	assert.False(t, f.files.has(oldImage))

	_, err = f.svc.SetItemImage(ctx, u, created.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "user1")
	c := f.collection(t, u, "Minis")
	it := f.item(t, u, c.ID, "Figure")

	require.NoError(t, f.svc.DeleteItem(ctx, u, it.ID))
	assert.ErrorIs(t, f.svc.DeleteItem(ctx, u, it.ID), domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteItem(ctx, u, it.ID), domain.ErrNotFound)

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, f.svc.DeleteEvent(ctx, u, 424242), domain.ErrNotFound)
		assert.ErrorIs(t, f.svc.DeleteCollection(ctx, u, 424242), domain.ErrNotFound)
	}
}

func TestEventValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "user1")
	c := f.collection(t, u, "Cons")

	invalid := map[string]EventInput{
		"rating above range": {Name: ptr("Expo"), Date: ptr("2024-03-02"), Rating: ptr(6)},
		"rating below range": {Name: ptr("Expo"), Date: ptr("2024-03-02"), Rating: ptr(-1)},
		"blank name":         {Name: ptr("   "), Date: ptr("2024-03-02")},
		"name missing":       {Date: ptr("2024-03-02")},
		"bad date":           {Name: ptr("Expo"), Date: ptr("2024-13-01")},
		"blank date":         {Name: ptr("Expo"), Date: ptr("")},
		"date missing":       {Name: ptr("Expo")},
	}
	for name, in := range invalid {
		_, err := f.svc.CreateEvent(ctx, u, c.ID, in, pngImage())
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}

	events, err := f.svc.ListEvents(ctx, u, c.ID, domain.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, events, "no row written")
	assert.Equal(t, 0, f.files.count(), "no file written")

	ev := f.event(t, u, c.ID, "2024-03-02")
	badUpdates := map[string]EventInput{
		"rating above range": {Rating: ptr(6)},
		"rating below range": {Rating: ptr(-1)},
		"blank name":         {Name: ptr("")},
		"bad date":           {Date: ptr("2024-13-01")},
	}
	for name, in := range badUpdates {
		_, err := f.svc.UpdateEvent(ctx, u, ev.ID, in, pngImage())
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	assert.Equal(t, 0, f.files.count(), "no file written")

	got, err := f.svc.GetEvent(ctx, u, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Con", got.Name)
	assert.Equal(t, "2024-03-02", got.Date)
	assert.Nil(t, got.Rating)
}

func TestEventRatingRequiresPastDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "user1")
	c := f.collection(t, u, "Cons")

	future := f.event(t, u, c.ID, "2025-07-01")
	_, err := f.svc.RateEvent(ctx, u, future.ID, ptr(4))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateEvent(ctx, u, c.ID, EventInput{Name: ptr("Later"), Date: ptr("2026-01-01"), Rating: ptr(3)}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	today := f.event(t, u, c.ID, "2025-06-15")
	rated, err := f.svc.RateEvent(ctx, u, today.ID, ptr(5))
	require.NoError(t, err)
	assert.Equal(t, 5, *rated.Rating)

	_, err = f.svc.UpdateEvent(ctx, u, today.ID, EventInput{Date: ptr("2025-12-24")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "a rated event cannot move into the future")

	past := f.event(t, u, c.ID, "2024-03-02")
	_, err = f.svc.RateEvent(ctx, u, past.ID, ptr(9))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateEvent(ctx, u, c.ID, EventInput{Name: ptr("No date")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	events, err := f.svc.ListEvents(ctx, u, c.ID, domain.ListOptions{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"2024-03-02", "2025-06-15", "2025-07-01"},
		[]string{events[0].Date, events[1].Date, events[2].Date})
}

func TestMoveItemAndEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.user(t, "user1")
	u2 := f.user(t, "user2")

	from := f.collection(t, u1, "From")
	to := f.collection(t, u1, "To")
	foreign := f.collection(t, u2, "Foreign")
	it := f.item(t, u1, from.ID, "Figure")
	ev := f.event(t, u1, from.ID, "2024-01-01")

	_, err := f.svc.UpdateItem(ctx, u1, it.ID, ItemInput{CollectionID: &foreign.ID}, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.UpdateEvent(ctx, u1, ev.ID, EventInput{CollectionID: &foreign.ID}, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.UpdateItem(ctx, u1, it.ID, ItemInput{CollectionID: ptr(int64(9999))}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	moved, err := f.svc.UpdateItem(ctx, u1, it.ID, ItemInput{CollectionID: &to.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, to.ID, moved.CollectionID)
	movedEv, err := f.svc.UpdateEvent(ctx, u1, ev.ID, EventInput{CollectionID: &to.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, to.ID, movedEv.CollectionID)

	left, err := f.svc.ListItems(ctx, u1, from.ID, domain.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestDeleteCollectionCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "user1")

	c, err := f.svc.CreateCollection(ctx, u, CollectionInput{Name: ptr("Minis"), Type: ptr("figures")}, pngImage())
	require.NoError(t, err)
	it, err := f.svc.CreateItem(ctx, u, c.ID, ItemInput{Name: ptr("Figure"), Importance: ptr(3)}, pngImage())
	require.NoError(t, err)
	ev, err := f.svc.CreateEvent(ctx, u, c.ID, EventInput{Name: ptr("Con"), Date: ptr("2024-01-01")}, pngImage())
	require.NoError(t, err)
	assert.Equal(t, 3, f.files.count())

	require.NoError(t, f.svc.DeleteCollection(ctx, u, c.ID))

	_, err = f.svc.GetItem(ctx, u, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.GetEvent(ctx, u, ev.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.GetCollection(ctx, u, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.files.count(), "images of the collection and its children are removed")
}

func TestCollectionsListedNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "user1")
	other := f.user(t, "user2")

	for i, name := range []string{"First", "Second", "Third"} {
		at := testNow.Add(time.Duration(i) * time.Minute)
		f.svc.SetClock(func() time.Time { return at })
		f.collection(t, u, name)
	}
	f.collection(t, other, "Not mine")

	list, err := f.svc.ListCollections(ctx, u, domain.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Third", list[0].Name)
	assert.Equal(t, "First", list[2].Name)

	updated, err := f.svc.UpdateCollection(ctx, u, list[0].ID, CollectionInput{Description: ptr("latest")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Third", updated.Name)
	assert.Equal(t, "latest", updated.Description)

	_, err = f.svc.UpdateCollection(ctx, u, list[0].ID, CollectionInput{Name: ptr("")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.ListCollections(ctx, nil, domain.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUploadRemovedWhenWriteFails(t *testing.T) {
	ctx := context.Background()
	base := storage.NewMemoryStore()
	f := newFixtureWith(t, failingWrites{Store: base})
	u := f.user(t, "user1")
	c := f.collection(t, u, "Minis")

	_, err := f.svc.CreateItem(ctx, u, c.ID, ItemInput{Name: ptr("Figure"), Importance: ptr(1)}, pngImage())
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = f.svc.CreateEvent(ctx, u, c.ID, EventInput{Name: ptr("Con"), Date: ptr("2024-01-01")}, pngImage())
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 0, f.files.count())
}
