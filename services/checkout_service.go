package services

import (
	"context"
	"fmt"
	"log"

	"github.com/akinalp/lezzet/api"
	"github.com/akinalp/lezzet/models"
	"github.com/akinalp/lezzet/pkg"
)

// CustomerInfo, checkout formunun karşılığı — müşteri iletişim bilgileri.
type CustomerInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// CheckoutService, sepeti siparişe çevirir.
//
// Akış: sepet satırları → CreateOrderRequest → API'ye submit (idempotency
// key ile) → başarıda sipariş ID'si geçmişin başına eklenir ve sepet
// temizlenir.
//
// Hata durumunda sepet OLDUĞU GİBİ KALIR — kullanıcı bilgileri düzeltip
// tekrar deneyebilir, hiçbir şey kaybolmaz.
type CheckoutService interface {
	Submit(ctx context.Context, customer CustomerInfo) (*models.Order, error)
}

type checkoutService struct {
	cart    CartService
	history OrderHistoryService
	api     api.Client
}

// NewCheckoutService, constructor.
func NewCheckoutService(cart CartService, history OrderHistoryService, apiClient api.Client) CheckoutService {
	return &checkoutService{
		cart:    cart,
		history: history,
		api:     apiClient,
	}
}

func (s *checkoutService) Submit(ctx context.Context, customer CustomerInfo) (*models.Order, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", pkg.ErrBadRequest)
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
		})
	}

	req := &models.CreateOrderRequest{
		CustomerName:    customer.Name,
		CustomerAddress: customer.Address,
		CustomerPhone:   customer.Phone,
		CustomerEmail:   customer.Email,
		Items:           items,
	}

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		// Sepete dokunma — submit tekrar denenebilir.
		return nil, err
	}

	// Sipariş sunucuda oluştu; bundan sonrası local bookkeeping.
	// Local yazma hatası checkout'u "başarısız" yapmaz — sipariş gerçek,
	// sadece loglayıp devam ederiz.
	if err := s.history.RecordOrder(ctx, order.ID); err != nil {
		log.Printf("[checkout] failed to record order %s in history: %v", order.ID, err)
	}
	if err := s.cart.Clear(ctx); err != nil {
		log.Printf("[checkout] failed to clear cart after order %s: %v", order.ID, err)
	}

	return order, nil
}
