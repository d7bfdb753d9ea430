package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pbaches/stockwatch/internal/domain"
	"github.com/pbaches/stockwatch/internal/repo"
)

var _ repo.AlertStore = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{pool: pool, log: log}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS alerts (
    id              BIGSERIAL PRIMARY KEY,
    symbol          TEXT NOT NULL,
    target_price    DOUBLE PRECISION NOT NULL,
    condition       TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_checked_at TIMESTAMPTZ,
    triggered_at    TIMESTAMPTZ,
    is_active       BOOLEAN NOT NULL DEFAULT TRUE
)`)
	if err != nil {
		return fmt.Errorf("ensure alerts table: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, symbol string, targetPrice float64, cond domain.Condition) (*domain.Alert, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO alerts (symbol, target_price, condition)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		symbol, targetPrice, string(cond),
	)
	a := domain.Alert{
		Symbol:      symbol,
		TargetPrice: targetPrice,
		Condition:   cond,
		IsActive:    true,
	}
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert alert: %w", err)
	}
	return &a, nil
}

func (s *Store) ListActive(ctx context.Context) ([]domain.Alert, error) {
	return s.listWhere(ctx, `is_active`)
}

func (s *Store) ListPending(ctx context.Context) ([]domain.Alert, error) {
	return s.listWhere(ctx, `is_active AND triggered_at IS NULL`)
}

func (s *Store) listWhere(ctx context.Context, where string) ([]domain.Alert, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, symbol, target_price, condition, created_at, last_checked_at, triggered_at, is_active
		   FROM alerts
		  WHERE `+where+`
		  ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []domain.Alert
	for rows.Next() {
		var (
			a    domain.Alert
			cond string
		)
		if err := rows.Scan(&a.ID, &a.Symbol, &a.TargetPrice, &cond,
			&a.CreatedAt, &a.LastCheckedAt, &a.TriggeredAt, &a.IsActive); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Condition = domain.Condition(cond)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) TouchChecked(ctx context.Context, id int64) error {
	return s.updateOne(ctx, `UPDATE alerts SET last_checked_at = now() WHERE id = $1`, id)
}

func (s *Store) MarkTriggered(ctx context.Context, id int64) error {
	return s.updateOne(ctx, `UPDATE alerts SET triggered_at = now() WHERE id = $1`, id)
}

func (s *Store) Deactivate(ctx context.Context, id int64) error {
	return s.updateOne(ctx, `UPDATE alerts SET is_active = FALSE WHERE id = $1`, id)
}

func (s *Store) updateOne(ctx context.Context, sql string, id int64) error {
	tag, err := s.pool.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("update alert %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
