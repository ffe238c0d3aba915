package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
)

// sqliteHistoryRepo, OrderHistoryRepository interface'inin SQLite implementasyonu.
// Liste "order_history" key'i altında tek bir JSON string array olarak saklanır.
type sqliteHistoryRepo struct {
	db *sql.DB
}

// NewSQLiteHistoryRepo, constructor.
func NewSQLiteHistoryRepo(db *sql.DB) OrderHistoryRepository {
	return &sqliteHistoryRepo{db: db}
}

// Load, persist edilmiş sipariş geçmişini okur.
// Kayıt yoksa veya JSON bozuksa boş liste döner — hata değil.
func (r *sqliteHistoryRepo) Load(ctx context.Context) ([]string, error) {
	raw, ok, err := kvGet(ctx, r.db, keyOrderHistory)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		log.Printf("[store] malformed order history, resetting to empty: %v", err)
		return []string{}, nil
	}

	return ids, nil
}

// Save, geçmişin tam durumunu yazar.
func (r *sqliteHistoryRepo) Save(ctx context.Context, orderIDs []string) error {
	if orderIDs == nil {
		orderIDs = []string{}
	}

	raw, err := json.Marshal(orderIDs)
	if err != nil {
		return err
	}
	return kvSet(ctx, r.db, keyOrderHistory, raw)
}
