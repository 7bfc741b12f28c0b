package leads

// CreateLeadRequest captures the lead form. ExpectedDate arrives as a
// calendar date string and is parsed strictly at the workflow boundary.
type CreateLeadRequest struct {
	ClientName      string  `json:"client_name" validate:"required,max=200"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	ProductInterest *string `json:"product_interest,omitempty" validate:"omitempty,max=200"`
	ExpectedDate    *string `json:"expected_date,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateStatusRequest moves a lead through its lifecycle tags.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}
