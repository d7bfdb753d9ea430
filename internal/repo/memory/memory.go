package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pbaches/stockwatch/internal/domain"
	"github.com/pbaches/stockwatch/internal/repo"
)

var _ repo.AlertStore = (*Store)(nil)

// Store keeps alerts in memory. Used when DATABASE_URL is empty and in tests.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	alerts map[int64]*domain.Alert
}

func New() *Store {
	return &Store{alerts: make(map[int64]*domain.Alert)}
}

func (s *Store) Create(ctx context.Context, symbol string, targetPrice float64, cond domain.Condition) (*domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a := &domain.Alert{
		ID:          s.nextID,
		Symbol:      symbol,
		TargetPrice: targetPrice,
		Condition:   cond,
		CreatedAt:   time.Now().UTC(),
		IsActive:    true,
	}
	s.alerts[a.ID] = a
	out := *a
	return &out, nil
}

func (s *Store) ListActive(ctx context.Context) ([]domain.Alert, error) {
	return s.list(func(a *domain.Alert) bool { return a.IsActive })
}

func (s *Store) ListPending(ctx context.Context) ([]domain.Alert, error) {
	return s.list(func(a *domain.Alert) bool { return a.IsActive && a.TriggeredAt == nil })
}

func (s *Store) list(keep func(*domain.Alert) bool) ([]domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	// newest-created first, matching the postgres ORDER BY
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) TouchChecked(ctx context.Context, id int64) error {
	return s.update(id, func(a *domain.Alert) {
		now := time.Now().UTC()
		a.LastCheckedAt = &now
	})
}

func (s *Store) MarkTriggered(ctx context.Context, id int64) error {
	return s.update(id, func(a *domain.Alert) {
		now := time.Now().UTC()
		a.TriggeredAt = &now
	})
}

func (s *Store) Deactivate(ctx context.Context, id int64) error {
	return s.update(id, func(a *domain.Alert) { a.IsActive = false })
}

func (s *Store) update(id int64, fn func(*domain.Alert)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(a)
	return nil
}
