// client/client.go

// Package client is a typed HTTP client for the Collecta API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Annany2002/collecta-backend/api/models"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/service"
)

// Rows and request bodies shared with the server.
type (
	User            = domain.User
	Collection      = domain.Collection
	Item            = domain.Item
	Event           = domain.Event
	RegisterRequest = models.RegisterRequest
	ProfileInput    = service.ProfileInput
	CollectionInput = service.CollectionInput
	ItemInput       = service.ItemInput
	EventInput      = service.EventInput
)

const defaultTimeout = 30 * time.Second

// Client calls one Collecta server. It is safe for concurrent use once the token is set.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken starts the client with an existing bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token in use, empty before Login.
func (c *Client) Token() string { return c.token }

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) { c.token = token }

// ListQuery selects a page of a list endpoint. Zero fields use the server defaults.
type ListQuery struct {
	Limit  int
	Offset int
	Sort   string
	Order  string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}

// Upload is an image file sent as the multipart "image" field.
type Upload struct {
	Filename string
	Body     io.Reader
}

// --- Auth and profile ---

// Ping checks that the server answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/ping", nil, nil, "", nil)
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var u User
	if err := c.call(ctx, http.MethodPost, "/auth/register", nil, req, models.KeyUser, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates by email or username and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, login, password string) (*User, error) {
	req := models.LoginRequest{Login: login, Password: password}
	var res models.LoginResponse
	if err := c.call(ctx, http.MethodPost, "/auth/login", nil, req, "", &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, errors.New("collecta: login response carried no token")
	}
	c.token = res.Token
	return res.User, nil
}

// Me returns the logged in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.call(ctx, http.MethodGet, "/api/v1/me", nil, nil, models.KeyUser, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateMe edits the profile. Nil fields are left unchanged.
func (c *Client) UpdateMe(ctx context.Context, in ProfileInput) (*User, error) {
	var u User
	if err := c.call(ctx, http.MethodPut, "/api/v1/me", nil, in, models.KeyUser, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetProfilePicture uploads a new profile picture.
func (c *Client) SetProfilePicture(ctx context.Context, img Upload) (*User, error) {
	var u User
	if err := c.upload(ctx, "/api/v1/me/picture", img, models.KeyUser, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// --- Collections ---

// ListCollections returns one page of the caller's collections.
func (c *Client) ListCollections(ctx context.Context, q ListQuery) ([]Collection, error) {
	var out []Collection
	err := c.call(ctx, http.MethodGet, "/api/v1/collections", q.values(), nil, models.KeyCollections, &out)
	return out, err
}

func (c *Client) GetCollection(ctx context.Context, id int64) (*Collection, error) {
	var col Collection
	if err := c.call(ctx, http.MethodGet, collectionPath(id), nil, nil, models.KeyCollection, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

func (c *Client) CreateCollection(ctx context.Context, in CollectionInput) (*Collection, error) {
	var col Collection
	if err := c.call(ctx, http.MethodPost, "/api/v1/collections", nil, in, models.KeyCollection, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

func (c *Client) UpdateCollection(ctx context.Context, id int64, in CollectionInput) (*Collection, error) {
	var col Collection
	if err := c.call(ctx, http.MethodPut, collectionPath(id), nil, in, models.KeyCollection, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

func (c *Client) SetCollectionImage(ctx context.Context, id int64, img Upload) (*Collection, error) {
	var col Collection
	if err := c.upload(ctx, collectionPath(id)+"/image", img, models.KeyCollection, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

// DeleteCollection removes the collection together with its items and events.
func (c *Client) DeleteCollection(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, collectionPath(id), nil, nil, "", nil)
}

// --- Items ---

func (c *Client) ListItems(ctx context.Context, collectionID int64, q ListQuery) ([]Item, error) {
	var out []Item
	err := c.call(ctx, http.MethodGet, collectionPath(collectionID)+"/items", q.values(), nil, models.KeyItems, &out)
	return out, err
}

func (c *Client) GetItem(ctx context.Context, id int64) (*Item, error) {
	var it Item
	if err := c.call(ctx, http.MethodGet, itemPath(id), nil, nil, models.KeyItem, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) CreateItem(ctx context.Context, collectionID int64, in ItemInput) (*Item, error) {
	var it Item
	if err := c.call(ctx, http.MethodPost, collectionPath(collectionID)+"/items", nil, in, models.KeyItem, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// UpdateItem edits an item; a set CollectionID moves it.
func (c *Client) UpdateItem(ctx context.Context, id int64, in ItemInput) (*Item, error) {
	var it Item
	if err := c.call(ctx, http.MethodPut, itemPath(id), nil, in, models.KeyItem, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// RateItem sets the rating, or clears it when rating is nil.
func (c *Client) RateItem(ctx context.Context, id int64, rating *int) (*Item, error) {
	var it Item
	if err := c.call(ctx, http.MethodPut, itemPath(id)+"/rating", nil, models.RatingRequest{Rating: rating}, models.KeyItem, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) SetItemImage(ctx context.Context, id int64, img Upload) (*Item, error) {
	var it Item
	if err := c.upload(ctx, itemPath(id)+"/image", img, models.KeyItem, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, itemPath(id), nil, nil, "", nil)
}

// --- Events ---

func (c *Client) ListEvents(ctx context.Context, collectionID int64, q ListQuery) ([]Event, error) {
	var out []Event
	err := c.call(ctx, http.MethodGet, collectionPath(collectionID)+"/events", q.values(), nil, models.KeyEvents, &out)
	return out, err
}

func (c *Client) GetEvent(ctx context.Context, id int64) (*Event, error) {
	var ev Event
	if err := c.call(ctx, http.MethodGet, eventPath(id), nil, nil, models.KeyEvent, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *Client) CreateEvent(ctx context.Context, collectionID int64, in EventInput) (*Event, error) {
	var ev Event
	if err := c.call(ctx, http.MethodPost, collectionPath(collectionID)+"/events", nil, in, models.KeyEvent, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, in EventInput) (*Event, error) {
	var ev Event
	if err := c.call(ctx, http.MethodPut, eventPath(id), nil, in, models.KeyEvent, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// RateEvent sets or clears the rating. Events dated after today cannot be rated.
func (c *Client) RateEvent(ctx context.Context, id int64, rating *int) (*Event, error) {
	var ev Event
	if err := c.call(ctx, http.MethodPut, eventPath(id)+"/rating", nil, models.RatingRequest{Rating: rating}, models.KeyEvent, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *Client) SetEventImage(ctx context.Context, id int64, img Upload) (*Event, error) {
	var ev Event
	if err := c.upload(ctx, eventPath(id)+"/image", img, models.KeyEvent, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, eventPath(id), nil, nil, "", nil)
}

// --- Transport ---

func collectionPath(id int64) string { return fmt.Sprintf("/api/v1/collections/%d", id) }
func itemPath(id int64) string       { return fmt.Sprintf("/api/v1/items/%d", id) }
func eventPath(id int64) string      { return fmt.Sprintf("/api/v1/events/%d", id) }

// call sends body as JSON and decodes the envelope. With a key, out receives that member
// of the envelope; without one, out receives the whole envelope.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any, key string, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("collecta: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("collecta: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, key, out)
}

func (c *Client) upload(ctx context.Context, path string, img Upload, key string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", img.Filename)
	if err != nil {
		return fmt.Errorf("collecta: build upload: %w", err)
	}
	if _, err := io.Copy(part, img.Body); err != nil {
		return fmt.Errorf("collecta: read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("collecta: build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("collecta: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, key, out)
}

func (c *Client) send(req *http.Request, key string, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("collecta: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("collecta: read response: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return newAPIError(res.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if key == "" {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("collecta: decode response: %w", err)
		}
		return nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("collecta: decode response: %w", err)
	}
	member, ok := env[key]
	if !ok {
		return fmt.Errorf("collecta: response has no %q member", key)
	}
	if err := json.Unmarshal(member, out); err != nil {
		return fmt.Errorf("collecta: decode %s: %w", key, err)
	}
	return nil
}
