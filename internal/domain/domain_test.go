package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseCondition(t *testing.T) {
	cases := []struct {
		in      string
		want    Condition
		wantErr bool
	}{
		{"ABOVE", ConditionAbove, false},
		{"below", ConditionBelow, false},
		{" Above ", ConditionAbove, false},
		{"", "", true},
		{"sideways", "", true},
	}
	for _, c := range cases {
		got, err := ParseCondition(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseCondition(%q): expected error", c.in)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Fatalf("ParseCondition(%q) = %q, %v; want %q", c.in, got, err, c.want)
		}
	}
}

func TestShouldTrigger_StrictBoundaries(t *testing.T) {
	above := Alert{Symbol: "PETR4.SA", TargetPrice: 100, Condition: ConditionAbove}
	below := Alert{Symbol: "PETR4.SA", TargetPrice: 100, Condition: ConditionBelow}

	if !above.ShouldTrigger(105) {
		t.Fatalf("ABOVE should fire at 105 > 100")
	}
	if above.ShouldTrigger(100) {
		t.Fatalf("ABOVE must not fire at equality")
	}
	if above.ShouldTrigger(99.99) {
		t.Fatalf("ABOVE must not fire below target")
	}
	if !below.ShouldTrigger(99.99) {
		t.Fatalf("BELOW should fire at 99.99 < 100")
	}
	if below.ShouldTrigger(100) {
		t.Fatalf("BELOW must not fire at equality")
	}
	if below.ShouldTrigger(105) {
		t.Fatalf("BELOW must not fire above target")
	}
}

func TestAlert_JSONRoundTrip(t *testing.T) {
	checked := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	want := Alert{
		ID:            7,
		Symbol:        "VALE3.SA",
		TargetPrice:   61.5,
		Condition:     ConditionBelow,
		CreatedAt:     time.Date(2025, 8, 17, 9, 30, 0, 0, time.UTC),
		LastCheckedAt: &checked,
		IsActive:      true,
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Alert
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != want.ID || got.Symbol != want.Symbol || got.Condition != want.Condition ||
		got.TriggeredAt != nil || got.LastCheckedAt == nil || !got.LastCheckedAt.Equal(checked) {
		t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
	}
}
