package sales

// CreateSaleRequest is the sale draft coming from the form. Monetary fields
// default to zero when absent; the channel policy may force commission and
// ad cost to zero regardless of what the form sent.
type CreateSaleRequest struct {
	ClientName     string   `json:"client_name" validate:"required,max=200"`
	ProductName    string   `json:"product_name" validate:"required,max=200"`
	Amount         float64  `json:"amount" validate:"gte=0"`
	Date           string   `json:"date" validate:"required"`
	SaleType       SaleType `json:"sale_type" validate:"required"`
	CommissionRate float64  `json:"commission_rate" validate:"gte=0,lte=100"`
	Discount       float64  `json:"discount" validate:"gte=0"`
	Freight        float64  `json:"freight" validate:"gte=0"`
	AdCost         float64  `json:"ad_cost" validate:"gte=0"`
	// LeadID marks a lead conversion; the lead is deleted once the sale is
	// recorded. The sale carries no back-link to it.
	LeadID *string `json:"lead_id,omitempty"`
}

// ListFilter narrows the sales listing. Bounds are inclusive calendar days;
// Search matches client or product name case-insensitively.
type ListFilter struct {
	Start  *string `json:"start,omitempty"`
	End    *string `json:"end,omitempty"`
	Search string  `json:"search,omitempty"`
}

// RecordResult reports the recorded sale plus any saga effects that failed
// and can be retried. The sale itself stays persisted either way.
type RecordResult struct {
	Sale           *Sale    `json:"sale"`
	PendingEffects []string `json:"pending_effects,omitempty"`
}

// RetryEffectsRequest re-runs the follow-up effects for a persisted sale.
// Effect markers make re-application safe.
type RetryEffectsRequest struct {
	ProductName string  `json:"product_name" validate:"required,max=200"`
	LeadID      *string `json:"lead_id,omitempty"`
}
