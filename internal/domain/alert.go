package domain

import (
	"fmt"
	"strings"
	"time"
)

// Condition says which side of the target price fires the alert.
type Condition string

const (
	ConditionAbove Condition = "ABOVE"
	ConditionBelow Condition = "BELOW"
)

// ParseCondition accepts the stored/user-facing spellings ("above", "ABOVE").
func ParseCondition(s string) (Condition, error) {
	switch Condition(strings.ToUpper(strings.TrimSpace(s))) {
	case ConditionAbove:
		return ConditionAbove, nil
	case ConditionBelow:
		return ConditionBelow, nil
	}
	return "", fmt.Errorf("unknown condition %q", s)
}

// Alert is a persisted price-threshold rule. LastCheckedAt and TriggeredAt
// are pointers so NULL columns survive the round-trip; TriggeredAt set means
// the alert is terminal for evaluation even while the row stays visible.
type Alert struct {
	ID            int64      `json:"id"`
	Symbol        string     `json:"symbol"`
	TargetPrice   float64    `json:"target_price"`
	Condition     Condition  `json:"condition"`
	CreatedAt     time.Time  `json:"created_at"`
	LastCheckedAt *time.Time `json:"last_checked_at"`
	TriggeredAt   *time.Time `json:"triggered_at"`
	IsActive      bool       `json:"is_active"`
}

// ShouldTrigger applies the strict boundary rule: equality never fires.
func (a Alert) ShouldTrigger(price float64) bool {
	switch a.Condition {
	case ConditionAbove:
		return price > a.TargetPrice
	case ConditionBelow:
		return price < a.TargetPrice
	}
	return false
}
