package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"

	"github.com/akinalp/lezzet/models"
)

// sqliteCartRepo, CartRepository interface'inin SQLite implementasyonu.
// Sepetin tamamı "cart" key'i altında tek bir JSON array olarak saklanır.
type sqliteCartRepo struct {
	db *sql.DB
}

// NewSQLiteCartRepo, constructor.
func NewSQLiteCartRepo(db *sql.DB) CartRepository {
	return &sqliteCartRepo{db: db}
}

// Load, persist edilmiş sepeti okur.
//
// Permissive okuma: kayıt yoksa boş sepet; JSON bozuksa yine boş sepet.
// Bozuk local veri asla caller'a hata olarak yansıtılmaz — kullanıcı
// boş sepetle devam eder, bir sonraki mutation bozuk kaydın üzerine yazar.
func (r *sqliteCartRepo) Load(ctx context.Context) ([]models.CartLine, error) {
	raw, ok, err := kvGet(ctx, r.db, keyCart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.CartLine{}, nil
	}

	var lines []models.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		log.Printf("[store] malformed cart data, resetting to empty: %v", err)
		return []models.CartLine{}, nil
	}

	// Bozuk kayıtlara karşı invariant'ları yeniden uygula:
	// quantity >= 1 ve menu_item_id başına tek satır.
	seen := make(map[string]bool, len(lines))
	valid := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.MenuItemID == "" || line.Quantity < 1 || seen[line.MenuItemID] {
			continue
		}
		seen[line.MenuItemID] = true
		valid = append(valid, line)
	}

	return valid, nil
}

// Save, sepetin tam durumunu yazar (önceki durumun üzerine).
func (r *sqliteCartRepo) Save(ctx context.Context, lines []models.CartLine) error {
	if lines == nil {
		lines = []models.CartLine{}
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return kvSet(ctx, r.db, keyCart, raw)
}

// Clear, persist edilmiş sepeti siler.
func (r *sqliteCartRepo) Clear(ctx context.Context) error {
	return kvDelete(ctx, r.db, keyCart)
}
