// client/client_test.go
package client_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Annany2002/collecta-backend/api"
	"github.com/Annany2002/collecta-backend/api/middleware"
	"github.com/Annany2002/collecta-backend/client"
	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/media"
	"github.com/Annany2002/collecta-backend/internal/service"
	"github.com/Annany2002/collecta-backend/internal/storage"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		JWTSecret:          "client_test_secret",
		JWTExpiration:      5 * time.Minute,
		StoreBackend:       config.StoreMemory,
		UploadsDir:         dir,
		MaxUploadBytes:     1 << 20,
		MediaBackend:       config.MediaLocal,
		RateLimitRequests:  1000,
		RateLimitWindow:    time.Minute,
		CORSAllowedOrigins: []string{"*"},
	}
	files, err := media.NewLocalStorage(dir)
	require.NoError(t, err)

	svc := service.New(storage.NewMemoryStore(), files, cfg)
	svc.SetClock(func() time.Time { return fixedNow })
	srv := httptest.NewServer(api.SetupRouter(svc, cfg, middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)))
	t.Cleanup(srv.Close)
	return srv
}

func loggedIn(t *testing.T, srv *httptest.Server, username string) *client.Client {
	t.Helper()
	ctx := context.Background()
	c := client.New(srv.URL)
	_, err := c.Register(ctx, client.RegisterRequest{
		Name: username, Username: username, Email: username + "@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	u, err := c.Login(ctx, username, "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, username, u.Username)
	require.NotEmpty(t, c.Token())
	return c
}

func ptr[T any](v T) *T { return &v }

func TestClientRoundTrip(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := loggedIn(t, srv, "alice")

	require.NoError(t, c.Ping(ctx))

	me, err := c.UpdateMe(ctx, client.ProfileInput{Name: ptr("Alice A.")})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", me.Name)

	col, err := c.CreateCollection(ctx, client.CollectionInput{Name: ptr("Minis"), Type: ptr("figures")})
	require.NoError(t, err)

	it, err := c.CreateItem(ctx, col.ID, client.ItemInput{Name: ptr("Figure A"), Importance: ptr(9), Price: ptr(12.5)})
	require.NoError(t, err)
	got, err := c.GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Figure A", got.Name)
	assert.Equal(t, 9, got.Importance)
	require.NotNil(t, got.Price)
	assert.Equal(t, 12.5, *got.Price)

	rated, err := c.RateItem(ctx, it.ID, ptr(4))
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 4, *rated.Rating)
	cleared, err := c.RateItem(ctx, it.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.Rating)

	ev, err := c.CreateEvent(ctx, col.ID, client.EventInput{Name: ptr("Expo"), Date: ptr("2025-06-01")})
	require.NoError(t, err)
	_, err = c.RateEvent(ctx, ev.ID, ptr(5))
	require.NoError(t, err)

	items, err := c.ListItems(ctx, col.ID, client.ListQuery{Sort: "importance", Order: "desc"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	events, err := c.ListEvents(ctx, col.ID, client.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, events, 1)

	require.NoError(t, c.DeleteCollection(ctx, col.ID))
	_, err = c.GetItem(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.GetEvent(ctx, ev.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientErrorKinds(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	alice := loggedIn(t, srv, "alice")
	bob := loggedIn(t, srv, "bob")

	col, err := alice.CreateCollection(ctx, client.CollectionInput{Name: ptr("Minis")})
	require.NoError(t, err)
	it, err := alice.CreateItem(ctx, col.ID, client.ItemInput{Name: ptr("Figure A"), Importance: ptr(3)})
	require.NoError(t, err)

	err = bob.DeleteItem(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	_, err = alice.GetItem(ctx, it.ID)
	assert.NoError(t, err, "item survives the forbidden delete")

	_, err = alice.CreateItem(ctx, col.ID, client.ItemInput{Name: ptr("Figure B"), Importance: ptr(11)})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "importance: must be at most 10", apiErr.Message)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = alice.DeleteItem(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = alice.Register(ctx, client.RegisterRequest{Name: "x", Username: "alice", Email: "other@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	anon := client.New(srv.URL)
	_, err = anon.ListItems(ctx, col.ID, client.ListQuery{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = anon.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Empty(t, anon.Token())
}

func TestClientUpload(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := loggedIn(t, srv, "alice")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))

	col, err := c.CreateCollection(ctx, client.CollectionInput{Name: ptr("Minis")})
	require.NoError(t, err)
	col, err = c.SetCollectionImage(ctx, col.ID, client.Upload{Filename: "cover.png", Body: bytes.NewReader(buf.Bytes())})
	require.NoError(t, err)
	assert.Regexp(t, `^uploads/.+\.png$`, col.Image)

	_, err = c.SetProfilePicture(ctx, client.Upload{Filename: "notes.txt", Body: bytes.NewReader([]byte("plain text"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAPIErrorFromPlainBody(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ping":
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false,"error":"Too many requests. Please wait."}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("upstream exploded\n"))
		}
	}))
	defer stub.Close()

	c := client.New(stub.URL, client.WithToken("abc"))
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, client.ErrRateLimited)

	_, err = c.Me(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream exploded", apiErr.Message)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}
