package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stocktree/collection"
	"stocktree/model"
)

const supplierPartColumns = `sp.id, sp.part_id, sp.supplier_id, sp.sku,
	p.name AS part_name, c.name AS supplier_name,
	sp.packaging, sp.pack_quantity, sp.unit_price, sp.available, sp.active, sp.note`

const supplierPartFrom = `supplier_parts sp
	JOIN parts p ON p.id = sp.part_id
	JOIN companies c ON c.id = sp.supplier_id`

var supplierPartListSpec = ListSpec{
	Select:        supplierPartColumns,
	From:          supplierPartFrom,
	SearchColumns: []string{"sp.sku", "p.name", "c.name", "sp.note"},
	OrderColumns: map[string]string{
		"SKU":           "sp.sku",
		"part_name":     "p.name",
		"supplier_name": "c.name",
		"unit_price":    "sp.unit_price",
		"available":     "sp.available",
	},
	FilterColumns: map[string]string{
		"part":     "sp.part_id",
		"supplier": "sp.supplier_id",
		"active":   "sp.active",
	},
	DefaultOrder: "sp.sku",
}

func ListSupplierParts(db DBTX, q collection.Query) ([]model.SupplierPart, int, error) {
	rows := []model.SupplierPart{}
	count, err := RunList(db, supplierPartListSpec, q, &rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list supplier parts: %w", err)
	}
	return rows, count, nil
}

func GetSupplierPart(db DBTX, id int64) (*model.SupplierPart, error) {
	var sp model.SupplierPart
	err := db.Get(&sp,
		`SELECT `+supplierPartColumns+` FROM `+supplierPartFrom+` WHERE sp.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier part %d: %w", id, err)
	}
	return &sp, nil
}

func InsertSupplierPart(db DBTX, in model.SupplierPartInput) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO supplier_parts (part_id, supplier_id, sku, packaging, pack_quantity, unit_price, available, active, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.PartID, in.SupplierID, in.SKU, in.Packaging, in.PackQuantity,
		in.UnitPrice.String(), in.Available, in.Active, in.Note)
	if err != nil {
		return 0, fmt.Errorf("failed to insert supplier part: %w", err)
	}
	return res.LastInsertId()
}

func UpdateSupplierPart(db DBTX, id int64, in model.SupplierPartInput) error {
	_, err := db.Exec(
		`UPDATE supplier_parts SET part_id = ?, supplier_id = ?, sku = ?, packaging = ?,
		 pack_quantity = ?, unit_price = ?, available = ?, active = ?, note = ? WHERE id = ?`,
		in.PartID, in.SupplierID, in.SKU, in.Packaging, in.PackQuantity,
		in.UnitPrice.String(), in.Available, in.Active, in.Note, id)
	if err != nil {
		return fmt.Errorf("failed to update supplier part %d: %w", id, err)
	}
	return nil
}

// UpdateSupplierPartPriceBySKU applies an imported price-list row. Returns
// false when the supplier does not carry the SKU.
func UpdateSupplierPartPriceBySKU(tx *sqlx.Tx, supplierID int64, sku, price string, available float64) (bool, error) {
	res, err := tx.Exec(
		`UPDATE supplier_parts SET unit_price = ?, available = ? WHERE supplier_id = ? AND sku = ?`,
		price, available, supplierID, sku)
	if err != nil {
		return false, fmt.Errorf("failed to update price for SKU %s: %w", sku, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func DeleteSupplierParts(db *sqlx.DB, ids []int64) error {
	return deleteByIDs(db, "supplier_parts", ids)
}
