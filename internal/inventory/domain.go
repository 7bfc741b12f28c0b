package inventory

import "time"

// DefaultLowStockThreshold flags items running low. Below this quantity the
// dashboard renders the stock badge in red; nothing is rejected.
const DefaultLowStockThreshold = 5

// Item is the stock and costing record for one distinct product name.
// CostPrice is frozen at registration time until the product is
// re-registered; historical sales keep their own cost snapshots.
type Item struct {
	ID               string    `json:"id" db:"id"`
	ProductName      string    `json:"product_name" db:"product_name"`
	Quantity         int       `json:"quantity" db:"quantity"`
	CostPrice        float64   `json:"cost_price" db:"cost_price"`
	DefaultSellPrice *float64  `json:"default_sell_price,omitempty" db:"default_sell_price"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// LowStock reports whether the item sits below the threshold. Negative
// quantity is representable and simply reads as low.
func (i Item) LowStock(threshold int) bool {
	return i.Quantity < threshold
}
