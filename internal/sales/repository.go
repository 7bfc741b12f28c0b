package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rosetrack/rosetrack/internal/shared"
)

// QueryFilter narrows the repository listing. Zero-value fields are open.
type QueryFilter struct {
	Start  *time.Time
	End    *time.Time
	Search string
}

// Repository is the sales slice of the persistence gateway.
type Repository interface {
	List(ctx context.Context, filter QueryFilter) ([]Sale, error)
	Create(ctx context.Context, sale Sale) (*Sale, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the Postgres-backed sales repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const saleColumns = `id, client_name, product_name, amount, cost, freight, discount, ad_cost,
	commission_rate, commission_value, sale_date, sale_type, status, created_at`

func (r *repository) List(ctx context.Context, filter QueryFilter) ([]Sale, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Start != nil {
		conditions = append(conditions, fmt.Sprintf("sale_date >= $%d", argPos))
		args = append(args, *filter.Start)
		argPos++
	}
	if filter.End != nil {
		conditions = append(conditions, fmt.Sprintf("sale_date <= $%d", argPos))
		args = append(args, *filter.End)
		argPos++
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(client_name ILIKE $%d OR product_name ILIKE $%d)", argPos, argPos))
		args = append(args, pattern)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM sales %s ORDER BY sale_date DESC, created_at DESC`, saleColumns, whereClause)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list sales: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var result []Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan sale: %v", shared.ErrStorage, err)
		}
		result = append(result, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list sales: %v", shared.ErrStorage, err)
	}
	return result, nil
}

func (r *repository) Create(ctx context.Context, sale Sale) (*Sale, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO sales (id, client_name, product_name, amount, cost, freight, discount, ad_cost,
			commission_rate, commission_value, sale_date, sale_type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING %s`, saleColumns),
		sale.ID, sale.ClientName, sale.ProductName, sale.Amount, sale.Cost, sale.Freight,
		sale.Discount, sale.AdCost, sale.CommissionRate, sale.CommissionValue,
		pgtype.Date{Time: sale.Date, Valid: true}, string(sale.SaleType), string(sale.Status),
	)
	saved, err := scanSale(row)
	if err != nil {
		return nil, fmt.Errorf("%w: create sale: %v", shared.ErrStorage, err)
	}
	return &saved, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: delete sale: %v", shared.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", shared.ErrNotFound, id)
	}
	return nil
}

func scanSale(row pgx.Row) (Sale, error) {
	var sale Sale
	var saleType, status string
	var date pgtype.Date
	var createdAt pgtype.Timestamptz
	if err := row.Scan(
		&sale.ID, &sale.ClientName, &sale.ProductName, &sale.Amount, &sale.Cost,
		&sale.Freight, &sale.Discount, &sale.AdCost, &sale.CommissionRate,
		&sale.CommissionValue, &date, &saleType, &status, &createdAt,
	); err != nil {
		return Sale{}, err
	}
	sale.SaleType = SaleType(saleType)
	sale.Status = SaleStatus(status)
	if date.Valid {
		sale.Date = date.Time
	}
	if createdAt.Valid {
		sale.CreatedAt = createdAt.Time
	}
	return sale, nil
}
