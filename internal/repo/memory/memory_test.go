package memory

import (
	"context"
	"testing"

	"github.com/pbaches/stockwatch/internal/domain"
	"github.com/pbaches/stockwatch/internal/repo"
)

func TestCreateAndListActive_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	a, err := s.Create(ctx, "PETR4.SA", 40.5, domain.ConditionAbove)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("expected store-assigned id")
	}
	if !a.IsActive || a.TriggeredAt != nil || a.LastCheckedAt != nil {
		t.Fatalf("fresh alert in wrong state: %+v", a)
	}

	all, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(all) != 1 || all[0].ID != a.ID || all[0].Symbol != "PETR4.SA" ||
		all[0].TargetPrice != 40.5 || all[0].Condition != domain.ConditionAbove {
		t.Fatalf("round-trip mismatch: %+v", all)
	}
}

func TestListActive_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	first, _ := s.Create(ctx, "PETR4.SA", 40, domain.ConditionAbove)
	second, _ := s.Create(ctx, "VALE3.SA", 60, domain.ConditionBelow)

	all, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected newest-created first, got %+v", all)
	}
}

func TestListPending_ExcludesTriggeredAndInactive(t *testing.T) {
	ctx := context.Background()
	s := New()
	pending, _ := s.Create(ctx, "PETR4.SA", 40, domain.ConditionAbove)
	triggered, _ := s.Create(ctx, "VALE3.SA", 60, domain.ConditionBelow)
	dismissed, _ := s.Create(ctx, "ITUB4.SA", 30, domain.ConditionAbove)

	if err := s.MarkTriggered(ctx, triggered.ID); err != nil {
		t.Fatalf("MarkTriggered: %v", err)
	}
	if err := s.Deactivate(ctx, dismissed.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	got, err := s.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(got) != 1 || got[0].ID != pending.ID {
		t.Fatalf("pending should exclude triggered and inactive: %+v", got)
	}

	// triggered stays visible in the active list until dismissed
	active, _ := s.ListActive(ctx)
	if len(active) != 2 {
		t.Fatalf("active should keep the triggered alert: %+v", active)
	}
}

func TestDeactivate_HidesTriggeredAlert(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, _ := s.Create(ctx, "PETR4.SA", 40, domain.ConditionAbove)
	_ = s.MarkTriggered(ctx, a.ID)

	if err := s.Deactivate(ctx, a.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	active, _ := s.ListActive(ctx)
	if len(active) != 0 {
		t.Fatalf("dismissed alert still listed: %+v", active)
	}
}

func TestTouchChecked_SetsTimestamp(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, _ := s.Create(ctx, "PETR4.SA", 40, domain.ConditionAbove)

	if err := s.TouchChecked(ctx, a.ID); err != nil {
		t.Fatalf("TouchChecked: %v", err)
	}
	all, _ := s.ListActive(ctx)
	if all[0].LastCheckedAt == nil {
		t.Fatalf("last_checked_at not stamped")
	}
	if all[0].TriggeredAt != nil {
		t.Fatalf("touch must not trigger")
	}
}

func TestUpdates_UnknownID(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, err := range []error{
		s.TouchChecked(ctx, 99),
		s.MarkTriggered(ctx, 99),
		s.Deactivate(ctx, 99),
	} {
		if err != repo.ErrNotFound {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	}
}
