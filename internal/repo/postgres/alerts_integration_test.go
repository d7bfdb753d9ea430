//go:build integration

package postgres

// go test -tags=integration ./internal/repo/postgres -run AlertLifecycle -count=1

import (
	"context"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/pbaches/stockwatch/internal/domain"
)

func TestAlertLifecycle(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL empty")
	}

	ctx := context.Background()
	store, err := New(ctx, dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	a, err := store.Create(ctx, "PETR4.SA", 40.5, domain.ConditionAbove)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == 0 || a.CreatedAt.IsZero() {
		t.Fatalf("server-assigned fields missing: %+v", a)
	}

	pending, err := store.ListPending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	found := false
	for _, p := range pending {
		if p.ID == a.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("fresh alert missing from pending set")
	}

	if err := store.TouchChecked(ctx, a.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := store.MarkTriggered(ctx, a.ID); err != nil {
		t.Fatalf("trigger: %v", err)
	}

	pending, _ = store.ListPending(ctx)
	for _, p := range pending {
		if p.ID == a.ID {
			t.Fatalf("triggered alert must leave the pending set")
		}
	}

	if err := store.Deactivate(ctx, a.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, _ := store.ListActive(ctx)
	for _, p := range active {
		if p.ID == a.ID {
			t.Fatalf("dismissed alert must leave the active list")
		}
	}
}
