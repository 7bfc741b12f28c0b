package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rosetrack/rosetrack/internal/shared"
)

// Repository is the inventory slice of the persistence gateway.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByProduct(ctx context.Context, productName string) (*Item, error)
	Upsert(ctx context.Context, item Item) (*Item, error)
	AdjustStock(ctx context.Context, productName string, delta int) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the Postgres-backed inventory repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const itemColumns = `id, product_name, quantity, cost_price, default_sell_price, created_at, updated_at`

func (r *repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM inventory_items ORDER BY product_name`, itemColumns))
	if err != nil {
		return nil, fmt.Errorf("%w: list inventory: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan inventory: %v", shared.ErrStorage, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list inventory: %v", shared.ErrStorage, err)
	}
	return items, nil
}

func (r *repository) GetByProduct(ctx context.Context, productName string) (*Item, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM inventory_items WHERE product_name = $1`, itemColumns), productName)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get inventory item: %v", shared.ErrStorage, err)
	}
	return &item, nil
}

func (r *repository) Upsert(ctx context.Context, item Item) (*Item, error) {
	var sellPrice pgtype.Float8
	if item.DefaultSellPrice != nil {
		sellPrice = pgtype.Float8{Float64: *item.DefaultSellPrice, Valid: true}
	}
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO inventory_items (id, product_name, quantity, cost_price, default_sell_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (product_name) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			cost_price = EXCLUDED.cost_price,
			default_sell_price = EXCLUDED.default_sell_price,
			updated_at = NOW()
		RETURNING %s`, itemColumns),
		item.ID, item.ProductName, item.Quantity, item.CostPrice, sellPrice,
	)
	saved, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("%w: upsert inventory item: %v", shared.ErrStorage, err)
	}
	return &saved, nil
}

func (r *repository) AdjustStock(ctx context.Context, productName string, delta int) error {
	// Missing products are created on the fly with zero cost, matching the
	// upsert contract. No floor: quantity may go negative.
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO inventory_items (id, product_name, quantity, cost_price, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, 0, NOW(), NOW())
		ON CONFLICT (product_name) DO UPDATE SET
			quantity = inventory_items.quantity + EXCLUDED.quantity,
			updated_at = NOW()`,
		productName, delta,
	)
	if err != nil {
		return fmt.Errorf("%w: adjust stock: %v", shared.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: adjust stock: no row written", shared.ErrStorage)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: delete inventory item: %v", shared.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: inventory item %s", shared.ErrNotFound, id)
	}
	return nil
}

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	var sellPrice pgtype.Float8
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&item.ID, &item.ProductName, &item.Quantity, &item.CostPrice, &sellPrice, &createdAt, &updatedAt); err != nil {
		return Item{}, err
	}
	if sellPrice.Valid {
		val := sellPrice.Float64
		item.DefaultSellPrice = &val
	}
	if createdAt.Valid {
		item.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		item.UpdatedAt = updatedAt.Time
	}
	return item, nil
}
