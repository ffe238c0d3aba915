package services

import (
	"context"
	"fmt"
	"testing"
)

// Mock OrderHistoryRepository.
type mockHistoryRepo struct {
	ids []string
}

func (m *mockHistoryRepo) Load(ctx context.Context) ([]string, error) {
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out, nil
}

func (m *mockHistoryRepo) Save(ctx context.Context, orderIDs []string) error {
	m.ids = make([]string, len(orderIDs))
	copy(m.ids, orderIDs)
	return nil
}

func newTestHistory(t *testing.T, repo *mockHistoryRepo) OrderHistoryService {
	t.Helper()
	history, err := NewOrderHistoryService(context.Background(), repo)
	if err != nil {
		t.Fatalf("NewOrderHistoryService: %v", err)
	}
	return history
}

func TestHistoryRecordsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	history := newTestHistory(t, &mockHistoryRepo{})

	history.RecordOrder(ctx, "order-1")
	history.RecordOrder(ctx, "order-2")
	history.RecordOrder(ctx, "order-3")

	ids := history.ListOrderIDs()
	want := []string{"order-3", "order-2", "order-1"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
}

func TestHistoryDeduplicatesToFront(t *testing.T) {
	ctx := context.Background()
	history := newTestHistory(t, &mockHistoryRepo{})

	history.RecordOrder(ctx, "order-1")
	history.RecordOrder(ctx, "order-2")
	history.RecordOrder(ctx, "order-1")

	ids := history.ListOrderIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d: %v", len(ids), ids)
	}
	if ids[0] != "order-1" || ids[1] != "order-2" {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	ctx := context.Background()
	repo := &mockHistoryRepo{}
	history := newTestHistory(t, repo)

	for i := 1; i <= 51; i++ {
		history.RecordOrder(ctx, fmt.Sprintf("order-%d", i))
	}

	ids := history.ListOrderIDs()
	if len(ids) != 50 {
		t.Fatalf("expected 50 ids, got %d", len(ids))
	}
	if ids[0] != "order-51" {
		t.Fatalf("expected newest first, got %s", ids[0])
	}
	if ids[len(ids)-1] != "order-2" {
		t.Fatalf("expected order-1 evicted, tail is %s", ids[len(ids)-1])
	}

	// Persist edilen liste de cap'lenmiş olmalı.
	if len(repo.ids) != 50 {
		t.Fatalf("expected persisted list capped at 50, got %d", len(repo.ids))
	}
}

func TestHistoryIgnoresEmptyID(t *testing.T) {
	ctx := context.Background()
	history := newTestHistory(t, &mockHistoryRepo{})

	history.RecordOrder(ctx, "")

	if len(history.ListOrderIDs()) != 0 {
		t.Fatalf("empty id should not be recorded")
	}
}

func TestHistoryHydratesFromRepository(t *testing.T) {
	repo := &mockHistoryRepo{ids: []string{"order-2", "order-1"}}
	history := newTestHistory(t, repo)

	ids := history.ListOrderIDs()
	if len(ids) != 2 || ids[0] != "order-2" {
		t.Fatalf("unexpected hydrated history: %v", ids)
	}
}
