package repo

import (
	"context"
	"errors"

	"github.com/pbaches/stockwatch/internal/domain"
)

// ErrNotFound is returned by single-row updates when the id does not exist.
var ErrNotFound = errors.New("alert not found")

// AlertStore is the port for alert persistence — swap in any DB adapter.
//
// Rows are never deleted: a triggered alert stays visible until the user
// dismisses it (Deactivate), and a dismissed alert simply drops out of
// both list queries.
type AlertStore interface {
	// Create inserts a new active, untriggered alert and returns it with
	// the store-assigned id and creation timestamp.
	Create(ctx context.Context, symbol string, targetPrice float64, cond domain.Condition) (*domain.Alert, error)

	// ListActive returns alerts with is_active = true, newest-created first.
	ListActive(ctx context.Context) ([]domain.Alert, error)

	// ListPending returns the evaluation working set:
	// is_active = true AND triggered_at IS NULL.
	ListPending(ctx context.Context) ([]domain.Alert, error)

	// TouchChecked stamps last_checked_at = now for one alert.
	TouchChecked(ctx context.Context, id int64) error

	// MarkTriggered stamps triggered_at = now for one alert. Re-marking is
	// harmless, though the evaluator's selection predicate prevents it.
	MarkTriggered(ctx context.Context, id int64) error

	// Deactivate sets is_active = false (user dismissal; terminal).
	Deactivate(ctx context.Context, id int64) error
}
