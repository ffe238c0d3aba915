package repository

import "context"

// OrderHistoryRepository, bu client'ın oluşturduğu sipariş ID'lerinin
// persistence interface'i. Sıralama anlamlıdır: en yeni sipariş başta.
// Dedupe ve 50 kayıt limiti service katmanının sorumluluğudur —
// repository sadece listenin tamamını yazar/okur.
type OrderHistoryRepository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, orderIDs []string) error
}
