package repository

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/akinalp/lezzet/database"
	"github.com/akinalp/lezzet/models"
)

// newTestDB, geçici dizinde gerçek bir SQLite dosyası açar ve
// migration'ları çalıştırır. Test bitince dosya t.TempDir ile gider.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db.Conn
}

func TestCartRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteCartRepo(newTestDB(t))

	lines := []models.CartLine{
		{MenuItemID: "pizza-1", Quantity: 2},
		{MenuItemID: "soda-1", Quantity: 1},
	}
	if err := repo.Save(ctx, lines); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].MenuItemID != "pizza-1" || got[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", got)
	}
}

func TestCartRepoLoadEmptyWhenNoRecord(t *testing.T) {
	repo := NewSQLiteCartRepo(newTestDB(t))

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestCartRepoMalformedJSONResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSQLiteCartRepo(db)

	if err := kvSet(ctx, db, keyCart, []byte(`{not json!!`)); err != nil {
		t.Fatalf("kvSet: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("malformed data must not surface as error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestCartRepoLoadReappliesInvariants(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSQLiteCartRepo(db)

	// Elle bozulmuş kayıt: sıfır miktar, boş ID, duplicate satır.
	raw := []byte(`[
		{"menu_item_id":"pizza-1","quantity":2},
		{"menu_item_id":"soda-1","quantity":0},
		{"menu_item_id":"","quantity":3},
		{"menu_item_id":"pizza-1","quantity":9}
	]`)
	if err := kvSet(ctx, db, keyCart, raw); err != nil {
		t.Fatalf("kvSet: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].MenuItemID != "pizza-1" || got[0].Quantity != 2 {
		t.Fatalf("expected only the first valid pizza line, got %+v", got)
	}
}

func TestCartRepoClear(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteCartRepo(newTestDB(t))

	repo.Save(ctx, []models.CartLine{{MenuItemID: "pizza-1", Quantity: 1}})
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	got, _ := repo.Load(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", got)
	}
}

func TestHistoryRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteHistoryRepo(newTestDB(t))

	if err := repo.Save(ctx, []string{"order-3", "order-2", "order-1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 3 || got[0] != "order-3" {
		t.Fatalf("unexpected history: %v", got)
	}
}

func TestHistoryRepoMalformedJSONResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSQLiteHistoryRepo(db)

	kvSet(ctx, db, keyOrderHistory, []byte(`"just a string"`))

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %v", got)
	}
}

func TestSessionRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteSessionRepo(newTestDB(t))

	session := &models.Session{
		Role:        models.RoleSeller,
		Email:       "admin@example.com",
		AccessToken: "tok-123",
	}
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || got.Email != "admin@example.com" || !got.IsSeller() {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.AccessToken != "tok-123" {
		t.Fatalf("token must survive the round trip")
	}
}

func TestSessionRepoNoRecordMeansLoggedOut(t *testing.T) {
	repo := NewSQLiteSessionRepo(newTestDB(t))

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session, got %+v", got)
	}
}

func TestSessionRepoPartialRecordMeansLoggedOut(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSQLiteSessionRepo(db)

	// Email var, role yok — yarım oturum tam logout sayılır.
	kvSet(ctx, db, keySession, []byte(`{"email":"a@b.com"}`))

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Fatalf("partial session must load as nil, got %+v", got)
	}
}

func TestSessionRepoClearRemovesRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteSessionRepo(newTestDB(t))

	repo.Save(ctx, &models.Session{Role: models.RoleBuyer, Email: "a@b.com"})
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	got, _ := repo.Load(ctx)
	if got != nil {
		t.Fatalf("expected nil after clear, got %+v", got)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	cart := NewSQLiteCartRepo(db)
	history := NewSQLiteHistoryRepo(db)

	cart.Save(ctx, []models.CartLine{{MenuItemID: "pizza-1", Quantity: 1}})
	history.Save(ctx, []string{"order-1"})

	if err := cart.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	ids, err := history.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("clearing the cart must not touch history, got %v", ids)
	}
}
