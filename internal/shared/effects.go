package shared

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EffectStore records side effects already applied for a sale so the
// recording saga stays idempotent: the stock decrement and the lead
// deletion run at most once per sale id however often the caller retries.
type EffectStore struct {
	pool *pgxpool.Pool
}

// NewEffectStore constructs the store.
func NewEffectStore(pool *pgxpool.Pool) *EffectStore {
	return &EffectStore{pool: pool}
}

// ErrEffectApplied indicates the effect was already recorded for this sale.
var ErrEffectApplied = errors.New("effect already applied")

// Effect names recorded by the sale workflow.
const (
	EffectStockDecrement = "stock_decrement"
	EffectLeadDeletion   = "lead_deletion"
)

// MarkApplied inserts the (saleID, effect) marker. A duplicate insert
// reports ErrEffectApplied so the caller skips the effect.
func (s *EffectStore) MarkApplied(ctx context.Context, saleID, effect string) error {
	if s == nil || s.pool == nil {
		return errors.New("effect store not initialised")
	}
	if saleID == "" {
		return errors.New("effect sale id required")
	}
	if effect == "" {
		return errors.New("effect name required")
	}
	_, err := s.pool.Exec(ctx, `INSERT INTO applied_effects (sale_id, effect, created_at) VALUES ($1, $2, $3)`, saleID, effect, time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEffectApplied
		}
		return err
	}
	return nil
}

// Unmark removes a marker, used when the effect itself failed after the
// marker was written.
func (s *EffectStore) Unmark(ctx context.Context, saleID, effect string) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `DELETE FROM applied_effects WHERE sale_id = $1 AND effect = $2`, saleID, effect)
	return err
}

// Cleanup removes markers older than the retention window.
func (s *EffectStore) Cleanup(ctx context.Context, olderThan time.Duration) error {
	if s == nil || s.pool == nil {
		return nil
	}
	cutoff := time.Now().Add(-olderThan)
	_, err := s.pool.Exec(ctx, `DELETE FROM applied_effects WHERE created_at < $1`, cutoff)
	return err
}
