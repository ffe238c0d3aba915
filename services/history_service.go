package services

import (
	"context"
	"sync"

	"github.com/akinalp/lezzet/repository"
)

// maxHistoryEntries, local sipariş geçmişinin üst sınırı.
// Sınır aşılınca en eski kayıtlar (listenin sonu) düşer.
const maxHistoryEntries = 50

// OrderHistoryService, bu client'ın oluşturduğu siparişlerin local index'i.
//
// Anonim bir kullanıcının "benim siparişlerim" listesini sunucu hesabı
// olmadan bulabilmesini sağlar: başarılı her checkout'tan sonra sipariş
// ID'si listenin başına eklenir ve local storage'a yazılır.
type OrderHistoryService interface {
	// RecordOrder, sipariş ID'sini listenin başına ekler.
	// Aynı ID zaten varsa ikinci kayıt oluşmaz — mevcut kayıt başa taşınır.
	// Liste 50 kaydı aşarsa en eskiler düşer.
	RecordOrder(ctx context.Context, orderID string) error

	// ListOrderIDs, geçmişin kopyasını en-yeni-önce sırayla döner.
	ListOrderIDs() []string
}

type historyService struct {
	mu   sync.Mutex
	ids  []string
	repo repository.OrderHistoryRepository
}

// NewOrderHistoryService, persist edilmiş geçmişi hydrate ederek oluşturur.
func NewOrderHistoryService(ctx context.Context, repo repository.OrderHistoryRepository) (OrderHistoryService, error) {
	ids, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &historyService{ids: ids, repo: repo}, nil
}

func (s *historyService) RecordOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Dedupe: mevcut kaydı çıkar, sonra başa ekle.
	next := make([]string, 0, len(s.ids)+1)
	next = append(next, orderID)
	for _, id := range s.ids {
		if id != orderID {
			next = append(next, id)
		}
	}

	if len(next) > maxHistoryEntries {
		next = next[:maxHistoryEntries]
	}

	s.ids = next
	return s.repo.Save(ctx, s.ids)
}

func (s *historyService) ListOrderIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
