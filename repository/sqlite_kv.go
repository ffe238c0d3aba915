package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Local store'daki sabit key'ler. Her persist edilen yapı tek bir key
// altında JSON-encoded tam durum olarak yaşar — tarayıcıdaki
// localStorage.setItem("cart", JSON.stringify(...)) ile aynı model.
const (
	keyCart         = "cart"
	keyOrderHistory = "order_history"
	keySession      = "session"
)

// kvGet, kv_store'dan bir key'in JSON değerini okur.
// Key yoksa (nil, false, nil) döner — "yok" bir hata durumu değildir.
func kvGet(ctx context.Context, db *sql.DB, key string) ([]byte, bool, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = ?`, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return []byte(value), true, nil
}

// kvSet, bir key'in değerini yazar (upsert).
func kvSet(ctx context.Context, db *sql.DB, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// kvDelete, bir key'i siler. Key yoksa no-op.
func kvDelete(ctx context.Context, db *sql.DB, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
