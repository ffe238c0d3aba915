package repository

import (
	"context"

	"github.com/akinalp/lezzet/models"
)

// CartRepository, sepetin durable local persistence'ı için interface.
//
// Storage-port: CartService iş kurallarını uygular, bu interface sadece
// "tam sepet durumunu yaz / oku" bilir. Testlerde in-memory mock ile
// değiştirilebilir.
//
// Load permissive'dir: kayıt yoksa veya bozuksa boş sepet döner, hata değil.
type CartRepository interface {
	Load(ctx context.Context) ([]models.CartLine, error)
	Save(ctx context.Context, lines []models.CartLine) error
	Clear(ctx context.Context) error
}
