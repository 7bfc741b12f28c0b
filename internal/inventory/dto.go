package inventory

// RegisterItemRequest registers a batch purchase for a product. The unit
// cost is derived as TotalPurchaseValue / Quantity; re-registering a product
// replaces quantity, cost and sell price wholesale.
type RegisterItemRequest struct {
	ProductName        string   `json:"product_name" validate:"required,max=200"`
	Quantity           int      `json:"quantity" validate:"required,gt=0"`
	TotalPurchaseValue float64  `json:"total_purchase_value" validate:"gte=0"`
	DefaultSellPrice   *float64 `json:"default_sell_price,omitempty" validate:"omitempty,gte=0"`
}

// AdjustStockRequest applies a signed delta to a product's quantity.
type AdjustStockRequest struct {
	ProductName string `json:"product_name" validate:"required,max=200"`
	Delta       int    `json:"delta" validate:"required"`
}

// ItemView decorates an item with the derived low-stock flag for listing.
type ItemView struct {
	Item
	LowStock bool `json:"low_stock"`
}
