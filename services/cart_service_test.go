package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/lezzet/models"
)

// Mock CartRepository — storage-port'un in-memory implementasyonu.
type mockCartRepo struct {
	lines     []models.CartLine
	saveCount int
	failSave  bool
}

func (m *mockCartRepo) Load(ctx context.Context) ([]models.CartLine, error) {
	out := make([]models.CartLine, len(m.lines))
	copy(out, m.lines)
	return out, nil
}

func (m *mockCartRepo) Save(ctx context.Context, lines []models.CartLine) error {
	if m.failSave {
		return errors.New("disk full")
	}
	m.saveCount++
	m.lines = make([]models.CartLine, len(lines))
	copy(m.lines, lines)
	return nil
}

func (m *mockCartRepo) Clear(ctx context.Context) error {
	m.lines = nil
	return nil
}

func newTestCart(t *testing.T, repo *mockCartRepo) CartService {
	t.Helper()
	cart, err := NewCartService(context.Background(), repo)
	if err != nil {
		t.Fatalf("NewCartService: %v", err)
	}
	return cart
}

func TestCartAddItemIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t, &mockCartRepo{})

	if err := cart.AddItem(ctx, "pizza-1"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := cart.AddItem(ctx, "pizza-1"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t, &mockCartRepo{})

	cart.AddItem(ctx, "pizza-1")
	cart.AddItem(ctx, "soda-2")
	cart.AddItem(ctx, "pizza-1")

	lines := cart.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].MenuItemID != "pizza-1" || lines[0].Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	if lines[1].MenuItemID != "soda-2" || lines[1].Quantity != 1 {
		t.Fatalf("unexpected second line: %+v", lines[1])
	}
	if cart.TotalItems() != 3 {
		t.Fatalf("expected TotalItems 3, got %d", cart.TotalItems())
	}
}

func TestCartUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		ctx := context.Background()
		cart := newTestCart(t, &mockCartRepo{})

		cart.AddItem(ctx, "pizza-1")
		if err := cart.UpdateQuantity(ctx, "pizza-1", quantity); err != nil {
			t.Fatalf("UpdateQuantity(%d): %v", quantity, err)
		}

		if len(cart.Lines()) != 0 {
			t.Fatalf("quantity %d: expected empty cart, got %v", quantity, cart.Lines())
		}
	}
}

func TestCartUpdateQuantityAbsentItemIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := &mockCartRepo{}
	cart := newTestCart(t, repo)

	if err := cart.UpdateQuantity(ctx, "ghost", 5); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if len(cart.Lines()) != 0 {
		t.Fatalf("expected empty cart, got %v", cart.Lines())
	}
	if repo.saveCount != 0 {
		t.Fatalf("no-op should not persist, save count %d", repo.saveCount)
	}
}

func TestCartRemoveItem(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t, &mockCartRepo{})

	cart.AddItem(ctx, "pizza-1")
	cart.AddItem(ctx, "soda-2")

	if err := cart.RemoveItem(ctx, "pizza-1"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := cart.RemoveItem(ctx, "ghost"); err != nil {
		t.Fatalf("RemoveItem absent: %v", err)
	}

	lines := cart.Lines()
	if len(lines) != 1 || lines[0].MenuItemID != "soda-2" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

// Her operasyon dizisi sonrasında invariant'lar korunmalı:
// ID başına tek satır, her quantity >= 1.
func TestCartInvariantsUnderOperationSequence(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t, &mockCartRepo{})

	ops := []func(){
		func() { cart.AddItem(ctx, "a") },
		func() { cart.AddItem(ctx, "b") },
		func() { cart.UpdateQuantity(ctx, "a", 7) },
		func() { cart.AddItem(ctx, "a") },
		func() { cart.UpdateQuantity(ctx, "b", 0) },
		func() { cart.AddItem(ctx, "b") },
		func() { cart.RemoveItem(ctx, "c") },
		func() { cart.UpdateQuantity(ctx, "a", -3) },
		func() { cart.AddItem(ctx, "a") },
	}

	for i, op := range ops {
		op()

		seen := make(map[string]bool)
		for _, line := range cart.Lines() {
			if seen[line.MenuItemID] {
				t.Fatalf("after op %d: duplicate line for %s", i, line.MenuItemID)
			}
			seen[line.MenuItemID] = true
			if line.Quantity < 1 {
				t.Fatalf("after op %d: quantity %d for %s", i, line.Quantity, line.MenuItemID)
			}
		}
	}
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	repo := &mockCartRepo{}
	cart := newTestCart(t, repo)

	cart.AddItem(ctx, "pizza-1")
	if err := cart.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if cart.TotalItems() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
	if len(repo.lines) != 0 {
		t.Fatalf("expected persisted cart cleared, got %v", repo.lines)
	}
}

func TestCartHydratesFromRepository(t *testing.T) {
	repo := &mockCartRepo{lines: []models.CartLine{
		{MenuItemID: "pizza-1", Quantity: 2},
		{MenuItemID: "soda-2", Quantity: 1},
	}}

	cart := newTestCart(t, repo)

	if cart.TotalItems() != 3 {
		t.Fatalf("expected hydrated TotalItems 3, got %d", cart.TotalItems())
	}
}

func TestCartTotalAmountSkipsUnknownItems(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t, &mockCartRepo{})

	cart.AddItem(ctx, "pizza-1")
	cart.AddItem(ctx, "pizza-1")
	cart.AddItem(ctx, "unknown-9")

	catalog := models.NewCatalog([]models.MenuItem{
		{ID: "pizza-1", Price: 10.5},
	})

	// unknown-9 katalogda yok — tutara sıfır katkı, hata yok.
	if got := cart.TotalAmount(catalog); got != 21.0 {
		t.Fatalf("expected total 21.0, got %v", got)
	}
}

func TestCartEveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	repo := &mockCartRepo{}
	cart := newTestCart(t, repo)

	cart.AddItem(ctx, "a")
	cart.AddItem(ctx, "b")
	cart.UpdateQuantity(ctx, "a", 3)
	cart.RemoveItem(ctx, "b")

	if repo.saveCount != 4 {
		t.Fatalf("expected 4 persisted writes, got %d", repo.saveCount)
	}
	if len(repo.lines) != 1 || repo.lines[0].Quantity != 3 {
		t.Fatalf("unexpected persisted state: %v", repo.lines)
	}
}
