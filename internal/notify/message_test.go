package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/pbaches/stockwatch/internal/domain"
)

func TestAlertMessage(t *testing.T) {
	price := 105.5
	volume := int64(1234567)
	ts := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	a := domain.Alert{
		ID:          3,
		Symbol:      "PETR4.SA",
		TargetPrice: 100,
		Condition:   domain.ConditionAbove,
		TriggeredAt: &ts,
	}
	q := domain.Quote{
		Symbol:   "PETR4.SA",
		Name:     "Petrobras PN",
		Currency: "BRL",
		Price:    &price,
		Volume:   &volume,
	}

	title, text := AlertMessage(a, q)
	if !strings.Contains(title, "PETR4.SA") || !strings.Contains(title, "above") {
		t.Fatalf("title missing symbol/direction: %q", title)
	}
	for _, want := range []string{"Petrobras PN", "BRL 105.5", "1,234,567", "2025-08-18"} {
		if !strings.Contains(text, want) {
			t.Fatalf("text missing %q:\n%s", want, text)
		}
	}
}

func TestAlertMessage_MissingFields(t *testing.T) {
	a := domain.Alert{Symbol: "VALE3.SA", TargetPrice: 60, Condition: domain.ConditionBelow}
	q := domain.Quote{Symbol: "VALE3.SA"}

	title, text := AlertMessage(a, q)
	if !strings.Contains(title, "below") {
		t.Fatalf("title missing direction: %q", title)
	}
	if !strings.Contains(text, "Price: n/a") || !strings.Contains(text, "Volume: n/a") {
		t.Fatalf("missing fields should render n/a:\n%s", text)
	}
}
