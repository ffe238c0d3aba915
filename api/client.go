// Package api, harici Order API'ye erişim katmanıdır.
//
// Client interface'i ile HTTP detayları soyutlanır (Dependency Inversion):
// service katmanı bu interface'e bağımlıdır, concrete HTTP implementasyonuna
// değil. Testlerde mock Client kullanılır.
//
// Hata taksonomisi: HTTP status code'ları pkg'deki domain error'lara
// map'lenir — caller'lar errors.Is(err, pkg.ErrNotFound) gibi kontroller
// yapar, status code bilmez. Ağ seviyesindeki hatalar (bağlantı kopması,
// timeout) ErrUnavailable olarak döner — hepsi tekrar denenebilir.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/lezzet/models"
	"github.com/akinalp/lezzet/pkg"
)

// Client, Order API operasyonlarının interface'i.
type Client interface {
	// GetMenu, menü kataloğunu listeler.
	GetMenu(ctx context.Context) ([]models.MenuItem, error)

	// CreateOrder, yeni sipariş oluşturur. Her çağrı taze bir idempotency
	// key üretir ve Idempotency-Key header'ı olarak gönderir — retry edilen
	// submit'ler backend'de ikinci sipariş yaratmaz.
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)

	// GetOrder, tek bir siparişi ID ile getirir.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)

	// GetMyOrders, verilen email'e ait siparişleri listeler.
	GetMyOrders(ctx context.Context, email string) ([]models.Order, error)

	// GetAdminOrders, admin sipariş listesinin bir sayfasını getirir.
	// cursor boş string ise ilk sayfa döner.
	GetAdminOrders(ctx context.Context, limit int, cursor string) (*models.OrderPage, error)

	// UpdateOrderStatus, bir siparişin durumunu günceller (admin).
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}

// TokenSource, istek anında geçerli access token'ı döner.
// Boş string "token yok" demektir — Authorization header eklenmez.
// Pratikte SessionService bu interface'i karşılar; api paketinin
// services'e bağımlı olmaması için burada küçük ve odaklı tanımlanır.
type TokenSource interface {
	AccessToken() string
}

// httpClient, Client interface'inin net/http implementasyonu.
type httpClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource // nil olabilir — anonim kullanım
}

// NewClient, Order API için HTTP client oluşturur.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) Client {
	return &httpClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

func (c *httpClient) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *httpClient) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	headers := http.Header{}
	headers.Set("Idempotency-Key", uuid.NewString())

	var order models.Order
	if err := c.doWithHeaders(ctx, http.MethodPost, "/orders", nil, req, &order, headers); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *httpClient) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *httpClient) GetMyOrders(ctx context.Context, email string) ([]models.Order, error) {
	query := url.Values{}
	query.Set("email", email)

	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *httpClient) GetAdminOrders(ctx context.Context, limit int, cursor string) (*models.OrderPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var page models.OrderPage
	if err := c.do(ctx, http.MethodGet, "/orders/admin", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *httpClient) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	body := map[string]string{"status": string(status)}

	var order models.Order
	path := "/orders/" + url.PathEscape(orderID) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// do, tek bir API isteğini çalıştırır: body'yi JSON encode eder,
// Authorization header'ı ekler, yanıtı out'a decode eder.
func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.doWithHeaders(ctx, method, path, query, body, out, nil)
}

func (c *httpClient) doWithHeaders(ctx context.Context, method, path string, query url.Values, body, out any, headers http.Header) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Context iptali caller'ın bilinçli kararıdır — olduğu gibi yansıt,
		// geri kalan her transport hatası "tekrar dene" kategorisindedir.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", pkg.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatusToError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// errorBody, backend'in hata yanıtı gövdesi ({"message": "..."}).
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// mapStatusToError, HTTP status code'larını domain error'lara eşler.
// Backend'in mesajı varsa error'a eklenir — errors.Is ile match etmeye
// devam eder çünkü sentinel %w ile wrap edilir.
func mapStatusToError(resp *http.Response) error {
	var sentinel error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		sentinel = pkg.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		sentinel = pkg.ErrUnauthorized
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		sentinel = pkg.ErrBadRequest
	case resp.StatusCode >= 500:
		sentinel = pkg.ErrUnavailable
	default:
		sentinel = pkg.ErrInternal
	}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		if msg != "" {
			return fmt.Errorf("%w: %s", sentinel, msg)
		}
	}

	return fmt.Errorf("%w: status %d", sentinel, resp.StatusCode)
}
