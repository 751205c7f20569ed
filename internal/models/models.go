package models

// APIResponse is the standard JSON envelope for all API responses.
type APIResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total int `json:"total,omitempty"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// User is a login account. The bcrypt hash stays in the database and is
// never serialized.
type User struct {
	ID        int    `json:"id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Rounding modes for tax amount calculation.
const (
	TaxCalcFloor = 1
	TaxCalcCeil  = 2
	TaxCalcRound = 3
)

type TaxRate struct {
	ID              int     `json:"id"`
	TaxCode         string  `json:"tax_code"`
	TaxName         string  `json:"tax_name"`
	Rate            float64 `json:"rate"`
	CalculationType int     `json:"calculation_type"`
	CreatedBy       string  `json:"created_by"`
	UpdatedBy       string  `json:"updated_by"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type Location struct {
	ID           int    `json:"id"`
	LocationCode string `json:"location_code"`
	LocationName string `json:"location_name"`
	CreatedBy    string `json:"created_by"`
	UpdatedBy    string `json:"updated_by"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// DropdownItem is one selectable value inside a named group.
// (dropdown_id, dropdown_value) is unique; dropdown_id alone is not.
type DropdownItem struct {
	ID            int    `json:"id"`
	DropdownID    string `json:"dropdown_id"`
	DropdownValue string `json:"dropdown_value"`
	CreatedBy     string `json:"created_by"`
	UpdatedBy     string `json:"updated_by"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type Customer struct {
	ID              int    `json:"id"`
	CustomerCode    string `json:"customer_code"`
	CustomerName    string `json:"customer_name"`
	DepartmentName  string `json:"department_name"`
	Honorific       string `json:"honorific"`
	PostalCode      string `json:"postal_code"`
	Address1        string `json:"address1"`
	Address2        string `json:"address2"`
	PhoneNumber     string `json:"phone_number"`
	FaxNumber       string `json:"fax_number"`
	Email           string `json:"email"`
	InvoiceNumber   string `json:"invoice_number"`
	InvoiceIssuance string `json:"invoice_issuance"`
	InvoiceMethod   string `json:"invoice_method"`
	ClosingDay      string `json:"closing_day"`
	PaymentDay      string `json:"payment_day"`
	PaymentSiteDay  string `json:"payment_site_day"`
	TaxProcessing   string `json:"tax_processing"`
	TaxRounding     string `json:"tax_rounding"`
	StaffID         *int   `json:"staff_id"`
	WoSpecialCode   string `json:"wo_special_code"`
	CreatedBy       string `json:"created_by"`
	UpdatedBy       string `json:"updated_by"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type Staff struct {
	ID          int    `json:"id"`
	StaffCode   string `json:"staff_code"`
	StaffName   string `json:"staff_name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Position    string `json:"position"`
	PhoneNumber string `json:"phone_number"`
	IsActive    bool   `json:"is_active"`
	CreatedBy   string `json:"created_by"`
	UpdatedBy   string `json:"updated_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
