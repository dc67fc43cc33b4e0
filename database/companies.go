package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stocktree/collection"
	"stocktree/model"
)

const companyColumns = `id, name, description, website, currency, is_supplier, is_manufacturer, is_customer, active`

var companyListSpec = ListSpec{
	Select:        companyColumns,
	From:          "companies",
	SearchColumns: []string{"name", "description", "website"},
	OrderColumns: map[string]string{
		"name":     "name",
		"currency": "currency",
	},
	FilterColumns: map[string]string{
		"is_supplier":     "is_supplier",
		"is_manufacturer": "is_manufacturer",
		"is_customer":     "is_customer",
		"active":          "active",
	},
	DefaultOrder: "name",
}

func ListCompanies(db DBTX, q collection.Query) ([]model.Company, int, error) {
	companies := []model.Company{}
	count, err := RunList(db, companyListSpec, q, &companies)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, count, nil
}

func GetCompany(db DBTX, id int64) (*model.Company, error) {
	var c model.Company
	err := db.Get(&c, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company %d: %w", id, err)
	}
	return &c, nil
}

func InsertCompany(db DBTX, in model.CompanyInput) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO companies (name, description, website, currency, is_supplier, is_manufacturer, is_customer, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Description, in.Website, in.Currency,
		in.IsSupplier, in.IsManufacturer, in.IsCustomer, in.Active)
	if err != nil {
		return 0, fmt.Errorf("failed to insert company: %w", err)
	}
	return res.LastInsertId()
}

func UpdateCompany(db DBTX, id int64, in model.CompanyInput) error {
	_, err := db.Exec(
		`UPDATE companies SET name = ?, description = ?, website = ?, currency = ?,
		 is_supplier = ?, is_manufacturer = ?, is_customer = ?, active = ? WHERE id = ?`,
		in.Name, in.Description, in.Website, in.Currency,
		in.IsSupplier, in.IsManufacturer, in.IsCustomer, in.Active, id)
	if err != nil {
		return fmt.Errorf("failed to update company %d: %w", id, err)
	}
	return nil
}

func DeleteCompanies(db *sqlx.DB, ids []int64) error {
	return deleteByIDs(db, "companies", ids)
}
