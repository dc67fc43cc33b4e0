package model

type Company struct {
	ID             int64  `db:"id" json:"pk"`
	Name           string `db:"name" json:"name"`
	Description    string `db:"description" json:"description"`
	Website        string `db:"website" json:"website"`
	Currency       string `db:"currency" json:"currency"`
	IsSupplier     int    `db:"is_supplier" json:"is_supplier"`
	IsManufacturer int    `db:"is_manufacturer" json:"is_manufacturer"`
	IsCustomer     int    `db:"is_customer" json:"is_customer"`
	Active         int    `db:"active" json:"active"`
}

type CompanyInput struct {
	Name           string `db:"name" json:"name"`
	Description    string `db:"description" json:"description"`
	Website        string `db:"website" json:"website"`
	Currency       string `db:"currency" json:"currency"`
	IsSupplier     int    `db:"is_supplier" json:"is_supplier"`
	IsManufacturer int    `db:"is_manufacturer" json:"is_manufacturer"`
	IsCustomer     int    `db:"is_customer" json:"is_customer"`
	Active         int    `db:"active" json:"active"`
}
