package services

import (
	"context"
	"sync"

	"github.com/akinalp/lezzet/models"
	"github.com/akinalp/lezzet/repository"
)

// CartService, sepet iş mantığı interface'i.
//
// Sepet tamamen local'dir — checkout'a kadar sunucunun haberi olmaz.
// Her mutation, dönmeden önce tam durumu storage'a senkron yazar;
// uygulama kapanıp açılsa da sepet korunur.
//
// Korunan invariant'lar:
//   - menu_item_id başına en fazla bir satır (ekleme sırası korunur)
//   - her satırın quantity'si >= 1 — 1'in altına inen satır silinir
type CartService interface {
	// AddItem, ürünü sepete ekler: satır varsa adedini 1 artırır,
	// yoksa 1 adetle yeni satır açar.
	AddItem(ctx context.Context, menuItemID string) error

	// UpdateQuantity, satırın adedini ayarlar. quantity < 1 ise satırı
	// siler (RemoveItem ile aynı). Satır yoksa no-op.
	UpdateQuantity(ctx context.Context, menuItemID string, quantity int) error

	// RemoveItem, satırı siler. Satır yoksa no-op.
	RemoveItem(ctx context.Context, menuItemID string) error

	// Clear, sepeti tamamen boşaltır.
	Clear(ctx context.Context) error

	// Lines, sepet satırlarının kopyasını ekleme sırasıyla döner.
	Lines() []models.CartLine

	// TotalItems, toplam adet sayısını döner (satır sayısı değil).
	TotalItems() int

	// TotalAmount, katalog fiyatlarıyla sepet tutarını hesaplar.
	// Katalogda olmayan ürün tutara sıfır katkı yapar — hata üretmez.
	TotalAmount(catalog models.PriceLookup) float64
}

type cartService struct {
	mu    sync.Mutex
	lines []models.CartLine
	repo  repository.CartRepository
}

// NewCartService, persist edilmiş sepeti hydrate ederek CartService oluşturur.
// Storage'da kayıt yoksa veya bozuksa boş sepetle başlar (repo permissive).
func NewCartService(ctx context.Context, repo repository.CartRepository) (CartService, error) {
	lines, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &cartService{lines: lines, repo: repo}, nil
}

func (s *cartService) AddItem(ctx context.Context, menuItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].MenuItemID == menuItemID {
			s.lines[i].Quantity++
			return s.persist(ctx)
		}
	}

	s.lines = append(s.lines, models.CartLine{MenuItemID: menuItemID, Quantity: 1})
	return s.persist(ctx)
}

func (s *cartService) UpdateQuantity(ctx context.Context, menuItemID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, menuItemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].MenuItemID == menuItemID {
			s.lines[i].Quantity = quantity
			return s.persist(ctx)
		}
	}

	// Satır yok — no-op, persist de gerekmez.
	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, menuItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].MenuItemID == menuItemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist(ctx)
		}
	}

	return nil
}

func (s *cartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []models.CartLine{}
	return s.repo.Clear(ctx)
}

func (s *cartService) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *cartService) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

func (s *cartService) TotalAmount(catalog models.PriceLookup) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		if price, ok := catalog.PriceOf(line.MenuItemID); ok {
			total += price * float64(line.Quantity)
		}
	}
	return total
}

// persist, mevcut durumu storage'a yazar. Caller lock tutuyor olmalı.
func (s *cartService) persist(ctx context.Context) error {
	return s.repo.Save(ctx, s.lines)
}
