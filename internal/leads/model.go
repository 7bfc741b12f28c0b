package leads

import "time"

// Status is the lead lifecycle tag.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusContacted Status = "Contacted"
	StatusConverted Status = "Converted"
	StatusLost      Status = "Lost"
)

// Valid reports whether the status belongs to the closed enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusContacted, StatusConverted, StatusLost:
		return true
	}
	return false
}

// Lead is a prospective client who has not yet purchased. Conversion into a
// sale deletes the lead; no record links the resulting sale back here.
type Lead struct {
	ID              string     `json:"id" db:"id"`
	ClientName      string     `json:"client_name" db:"client_name"`
	Phone           *string    `json:"phone,omitempty" db:"phone"`
	ProductInterest *string    `json:"product_interest,omitempty" db:"product_interest"`
	ExpectedDate    *time.Time `json:"expected_date,omitempty" db:"expected_date"`
	Notes           *string    `json:"notes,omitempty" db:"notes"`
	Status          Status     `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}
