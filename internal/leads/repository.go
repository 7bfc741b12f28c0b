package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rosetrack/rosetrack/internal/platform/db"
	"github.com/rosetrack/rosetrack/internal/shared"
)

// Repository is the leads slice of the persistence gateway.
type Repository interface {
	List(ctx context.Context) ([]Lead, error)
	Get(ctx context.Context, id string) (*Lead, error)
	Create(ctx context.Context, lead Lead) (*Lead, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the Postgres-backed leads repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const leadColumns = `id, client_name, phone, product_interest, expected_date, notes, status, created_at`

func (r *repository) List(ctx context.Context) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM leads ORDER BY created_at DESC`, leadColumns))
	if err != nil {
		return nil, fmt.Errorf("%w: list leads: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var result []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan lead: %v", shared.ErrStorage, err)
		}
		result = append(result, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list leads: %v", shared.ErrStorage, err)
	}
	return result, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Lead, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns), id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: lead %s", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: get lead: %v", shared.ErrStorage, err)
	}
	return &lead, nil
}

func (r *repository) Create(ctx context.Context, lead Lead) (*Lead, error) {
	var expected pgtype.Date
	if lead.ExpectedDate != nil {
		expected = pgtype.Date{Time: *lead.ExpectedDate, Valid: true}
	}
	var saved Lead
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO leads (id, client_name, phone, product_interest, expected_date, notes, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`,
			lead.ID, lead.ClientName, textOrNull(lead.Phone), textOrNull(lead.ProductInterest),
			expected, textOrNull(lead.Notes), string(lead.Status),
		); err != nil {
			return err
		}
		row := tx.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns), lead.ID)
		var err error
		saved, err = scanLead(row)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create lead: %v", shared.ErrStorage, err)
	}
	return &saved, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("%w: update lead status: %v", shared.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lead %s", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: delete lead: %v", shared.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lead %s", shared.ErrNotFound, id)
	}
	return nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var phone, interest, notes pgtype.Text
	var expected pgtype.Date
	var status string
	var createdAt pgtype.Timestamptz
	if err := row.Scan(&lead.ID, &lead.ClientName, &phone, &interest, &expected, &notes, &status, &createdAt); err != nil {
		return Lead{}, err
	}
	lead.Status = Status(status)
	if phone.Valid {
		val := phone.String
		lead.Phone = &val
	}
	if interest.Valid {
		val := interest.String
		lead.ProductInterest = &val
	}
	if expected.Valid {
		val := expected.Time
		lead.ExpectedDate = &val
	}
	if notes.Valid {
		val := notes.String
		lead.Notes = &val
	}
	if createdAt.Valid {
		lead.CreatedAt = createdAt.Time
	}
	return lead, nil
}

func textOrNull(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
