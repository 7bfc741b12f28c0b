package sales

import "time"

// SaleType is the acquisition channel of a sale.
type SaleType string

const (
	SaleTypeInstagram   SaleType = "Instagram"
	SaleTypeReferral    SaleType = "Referral"
	SaleTypePaidTraffic SaleType = "PaidTraffic"
	SaleTypePersonal    SaleType = "Personal"
)

// SaleStatus is the recorded lifecycle tag. It is stored but not
// state-machine-enforced anywhere in the core.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "Pending"
	SaleStatusPaid      SaleStatus = "Paid"
	SaleStatusCancelled SaleStatus = "Cancelled"
)

// ChannelPolicy states which derived cost fields apply for a channel.
// Adding a channel is a data change, not a code change.
type ChannelPolicy struct {
	CommissionApplicable bool
	AdCostApplicable     bool
}

// ChannelPolicies maps each sale type to its policy.
type ChannelPolicies map[SaleType]ChannelPolicy

// DefaultChannelPolicies mirrors the business rules of the sale form:
// commission only on referral sales, ad cost only on paid traffic.
func DefaultChannelPolicies() ChannelPolicies {
	return ChannelPolicies{
		SaleTypeInstagram:   {CommissionApplicable: false, AdCostApplicable: false},
		SaleTypeReferral:    {CommissionApplicable: true, AdCostApplicable: false},
		SaleTypePaidTraffic: {CommissionApplicable: false, AdCostApplicable: true},
		SaleTypePersonal:    {CommissionApplicable: false, AdCostApplicable: false},
	}
}

// ChannelPoliciesFromOverrides builds a policy map from explicit channel
// lists, for deployments that route commission or ad spend differently.
// Channels absent from both lists still resolve, with neither field set.
func ChannelPoliciesFromOverrides(commission, adCost []string) ChannelPolicies {
	policies := ChannelPolicies{
		SaleTypeInstagram:   {},
		SaleTypeReferral:    {},
		SaleTypePaidTraffic: {},
		SaleTypePersonal:    {},
	}
	for _, c := range commission {
		p := policies[SaleType(c)]
		p.CommissionApplicable = true
		policies[SaleType(c)] = p
	}
	for _, c := range adCost {
		p := policies[SaleType(c)]
		p.AdCostApplicable = true
		policies[SaleType(c)] = p
	}
	return policies
}

// Lookup resolves the policy for a channel.
func (p ChannelPolicies) Lookup(t SaleType) (ChannelPolicy, bool) {
	policy, ok := p[t]
	return policy, ok
}

// Sale is one completed transaction. Created by the recording workflow and
// immutable afterwards except for full deletion. Cost is a snapshot of the
// inventory unit cost at sale time, never a live reference.
type Sale struct {
	ID              string     `json:"id" db:"id"`
	ClientName      string     `json:"client_name" db:"client_name"`
	ProductName     string     `json:"product_name" db:"product_name"`
	Amount          float64    `json:"amount" db:"amount"`
	Cost            float64    `json:"cost" db:"cost"`
	Freight         float64    `json:"freight" db:"freight"`
	Discount        float64    `json:"discount" db:"discount"`
	AdCost          float64    `json:"ad_cost" db:"ad_cost"`
	CommissionRate  float64    `json:"commission_rate" db:"commission_rate"`
	CommissionValue float64    `json:"commission_value" db:"commission_value"`
	Date            time.Time  `json:"date" db:"date"`
	SaleType        SaleType   `json:"sale_type" db:"sale_type"`
	Status          SaleStatus `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// Commission derives the commission value from an amount and a rate.
func Commission(amount, rate float64) float64 {
	return amount * rate / 100
}

// NetProfit is always recomputed from stored fields, never persisted.
func (s Sale) NetProfit() float64 {
	return s.Amount - s.Discount - s.CommissionValue - s.Cost - s.Freight - s.AdCost
}
