package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akinalp/lezzet/api"
	"github.com/akinalp/lezzet/models"
	"github.com/akinalp/lezzet/pkg"
	"github.com/akinalp/lezzet/pkg/cache"
)

// Cache TTL'leri.
//
// TTL bir güvenlik ağıdır: asıl tazelik mekanizması stream'den gelen
// invalidation'dır. Stream koptuğunda bile menü 5 dakikada, sipariş
// verisi 1 dakikada kendiliğinden bayatlar ve yeniden çekilir.
const (
	menuTTL       = 5 * time.Minute
	orderTTL      = time.Minute
	cacheCleanup  = 5 * time.Minute
	adminKeyPref  = "admin:"
	menuCacheKey  = "menu"
)

// OrderService, sunucu verisinin cache'li okuma katmanı.
//
// Her okuma önce cache'e bakar; miss'te Order API'den çeker ve doldurur.
// Invalidate* metodları entry'leri yalnızca DÜŞÜRÜR — cache'e veri yazmaz
// (advisory invalidation). Stream event'leri ile bu metodlar tetiklenir;
// bir sonraki okuma taze veriyi kaynaktan alır.
//
// InvalidateOrder / InvalidateMyOrders / InvalidateAdminOrders üçlüsü
// ws.Invalidator interface'ini karşılar — wire-up main.go'da yapılır,
// bu paket ws'e bağımlı değildir (Dependency Inversion).
type OrderService interface {
	// Menu, menü kataloğunu döner (cache'li).
	Menu(ctx context.Context) ([]models.MenuItem, error)

	// Order, tek bir siparişi döner (cache'li).
	Order(ctx context.Context, orderID string) (*models.Order, error)

	// MyOrders, verilen email'e ait siparişleri döner (cache'li).
	MyOrders(ctx context.Context, email string) ([]models.Order, error)

	// AdminOrders, admin listesinin bir sayfasını döner (cache'li, SELLER).
	AdminOrders(ctx context.Context, limit int, cursor string) (*models.OrderPage, error)

	// UpdateStatus, sipariş durumunu günceller (admin) ve ilgili
	// cache'leri düşürür.
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)

	// InvalidateOrder, tek bir siparişin cache'ini düşürür.
	// Cache'te olmayan sipariş için no-op.
	InvalidateOrder(orderID string)

	// InvalidateMyOrders, tüm "benim siparişlerim" listelerini düşürür.
	InvalidateMyOrders()

	// InvalidateAdminOrders, admin listesinin tüm sayfalarını düşürür.
	InvalidateAdminOrders()

	// InvalidateMenu, menü cache'ini düşürür.
	InvalidateMenu()

	// Close, cache'lerin arka plan goroutine'lerini durdurur.
	Close()
}

type orderService struct {
	api api.Client

	menu     *cache.Cache[string, []models.MenuItem]
	orders   *cache.Cache[string, *models.Order]
	myOrders *cache.Cache[string, []models.Order]
	admin    *cache.Cache[string, *models.OrderPage]
}

// NewOrderService, constructor.
func NewOrderService(apiClient api.Client) OrderService {
	return &orderService{
		api:      apiClient,
		menu:     cache.New[string, []models.MenuItem](menuTTL, cacheCleanup),
		orders:   cache.New[string, *models.Order](orderTTL, cacheCleanup),
		myOrders: cache.New[string, []models.Order](orderTTL, cacheCleanup),
		admin:    cache.New[string, *models.OrderPage](orderTTL, cacheCleanup),
	}
}

func (s *orderService) Menu(ctx context.Context) ([]models.MenuItem, error) {
	if items, ok := s.menu.Get(menuCacheKey); ok {
		return items, nil
	}

	items, err := s.api.GetMenu(ctx)
	if err != nil {
		return nil, err
	}

	s.menu.Set(menuCacheKey, items)
	return items, nil
}

func (s *orderService) Order(ctx context.Context, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: order id is required", pkg.ErrBadRequest)
	}

	if order, ok := s.orders.Get(orderID); ok {
		return order, nil
	}

	order, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.orders.Set(orderID, order)
	return order, nil
}

func (s *orderService) MyOrders(ctx context.Context, email string) ([]models.Order, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", pkg.ErrBadRequest)
	}

	if orders, ok := s.myOrders.Get(email); ok {
		return orders, nil
	}

	orders, err := s.api.GetMyOrders(ctx, email)
	if err != nil {
		return nil, err
	}

	s.myOrders.Set(email, orders)
	return orders, nil
}

func (s *orderService) AdminOrders(ctx context.Context, limit int, cursor string) (*models.OrderPage, error) {
	key := adminPageKey(limit, cursor)

	if page, ok := s.admin.Get(key); ok {
		return page, nil
	}

	page, err := s.api.GetAdminOrders(ctx, limit, cursor)
	if err != nil {
		return nil, err
	}

	s.admin.Set(key, page)
	return page, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidStatus(string(status)) {
		return nil, fmt.Errorf("%w: unknown status %q", pkg.ErrBadRequest, status)
	}

	order, err := s.api.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	// Güncelleme başarılı — cache'lenmiş eski kopyaları düşür.
	// Dönen order cache'e YAZILMAZ: invalidation advisory'dir, bir sonraki
	// okuma zaten taze veriyi çeker. Stream event'i de aynı yoldan gelir.
	s.InvalidateOrder(orderID)
	s.InvalidateAdminOrders()
	s.InvalidateMyOrders()

	return order, nil
}

func (s *orderService) InvalidateOrder(orderID string) {
	s.orders.Invalidate(orderID)
}

func (s *orderService) InvalidateMyOrders() {
	s.myOrders.Clear()
}

func (s *orderService) InvalidateAdminOrders() {
	s.admin.InvalidateFunc(func(key string) bool {
		return strings.HasPrefix(key, adminKeyPref)
	})
}

func (s *orderService) InvalidateMenu() {
	s.menu.Invalidate(menuCacheKey)
}

func (s *orderService) Close() {
	s.menu.Close()
	s.orders.Close()
	s.myOrders.Close()
	s.admin.Close()
}

// adminPageKey, (limit, cursor) çiftinden cache key üretir.
func adminPageKey(limit int, cursor string) string {
	return fmt.Sprintf("%s%d:%s", adminKeyPref, limit, cursor)
}
