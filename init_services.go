// Package main — Service katmanı başlatma.
package main

import (
	"context"

	"github.com/akinalp/lezzet/api"
	"github.com/akinalp/lezzet/config"
	"github.com/akinalp/lezzet/services"
)

// Services, service instance'larını tutan container struct.
type Services struct {
	Cart     services.CartService
	History  services.OrderHistoryService
	Session  services.SessionService
	Orders   services.OrderService
	Checkout services.CheckoutService
}

// initServices, repository'lerden ve config'ten service katmanını kurar.
//
// Kuruluş sırası önemli: SessionService önce gelir çünkü API client,
// bearer token'ı ondan okur (api.TokenSource). Cart ve History storage'dan
// hydrate edilir — bozuk/eksik local veri sessizce boş default'a düşer,
// bu yüzden buradaki error'lar sadece gerçek DB arızalarıdır.
func initServices(ctx context.Context, cfg *config.Config, repos *Repositories) (*Services, error) {
	sessionService, err := services.NewSessionService(ctx, repos.Session)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, sessionService)

	cartService, err := services.NewCartService(ctx, repos.Cart)
	if err != nil {
		return nil, err
	}

	historyService, err := services.NewOrderHistoryService(ctx, repos.History)
	if err != nil {
		return nil, err
	}

	orderService := services.NewOrderService(apiClient)
	checkoutService := services.NewCheckoutService(cartService, historyService, apiClient)

	return &Services{
		Cart:     cartService,
		History:  historyService,
		Session:  sessionService,
		Orders:   orderService,
		Checkout: checkoutService,
	}, nil
}
