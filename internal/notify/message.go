package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pbaches/stockwatch/internal/domain"
)

// AlertMessage renders the notification for a newly triggered alert.
func AlertMessage(a domain.Alert, q domain.Quote) (title, text string) {
	direction := "above"
	if a.Condition == domain.ConditionBelow {
		direction = "below"
	}
	title = fmt.Sprintf("🔔 %s crossed %s %s", a.Symbol, direction, money(q.Currency, a.TargetPrice))

	priceTxt := "n/a"
	if q.Price != nil {
		priceTxt = money(q.Currency, *q.Price)
	}
	volumeTxt := "n/a"
	if q.Volume != nil {
		volumeTxt = humanize.Comma(*q.Volume)
	}
	when := time.Now().UTC()
	if a.TriggeredAt != nil {
		when = *a.TriggeredAt
	}

	lines := []string{
		fmt.Sprintf("Target: %s %s", strings.ToUpper(string(a.Condition)), money(q.Currency, a.TargetPrice)),
		"Price: " + priceTxt,
		"Volume: " + volumeTxt,
		"Triggered: " + when.Format(time.RFC3339),
	}
	if q.Name != "" {
		lines = append([]string{"Name: " + q.Name}, lines...)
	}
	return title, strings.Join(lines, "\n")
}

func money(currency string, v float64) string {
	s := humanize.CommafWithDigits(v, 2)
	if currency == "" {
		return s
	}
	return currency + " " + s
}
