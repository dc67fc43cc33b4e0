package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stocktree/collection"
	"stocktree/model"
)

const partColumns = `id, name, ipn, description, category, units, active, purchaseable, salable, in_stock, notes`

var partListSpec = ListSpec{
	Select:        partColumns,
	From:          "parts",
	SearchColumns: []string{"name", "ipn", "description", "category"},
	OrderColumns: map[string]string{
		"name":     "name",
		"IPN":      "ipn",
		"category": "category",
		"in_stock": "in_stock",
	},
	FilterColumns: map[string]string{
		"active":       "active",
		"purchaseable": "purchaseable",
		"salable":      "salable",
		"category":     "category",
	},
	DefaultOrder: "name",
}

func ListParts(db DBTX, q collection.Query) ([]model.Part, int, error) {
	parts := []model.Part{}
	count, err := RunList(db, partListSpec, q, &parts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list parts: %w", err)
	}
	return parts, count, nil
}

func GetPart(db DBTX, id int64) (*model.Part, error) {
	var p model.Part
	err := db.Get(&p, `SELECT `+partColumns+` FROM parts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get part %d: %w", id, err)
	}
	return &p, nil
}

func InsertPart(db DBTX, in model.PartInput) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO parts (name, ipn, description, category, units, active, purchaseable, salable, in_stock, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.IPN, in.Description, in.Category, in.Units,
		in.Active, in.Purchaseable, in.Salable, in.InStock, in.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert part: %w", err)
	}
	return res.LastInsertId()
}

func UpdatePart(db DBTX, id int64, in model.PartInput) error {
	_, err := db.Exec(
		`UPDATE parts SET name = ?, ipn = ?, description = ?, category = ?, units = ?,
		 active = ?, purchaseable = ?, salable = ?, in_stock = ?, notes = ? WHERE id = ?`,
		in.Name, in.IPN, in.Description, in.Category, in.Units,
		in.Active, in.Purchaseable, in.Salable, in.InStock, in.Notes, id)
	if err != nil {
		return fmt.Errorf("failed to update part %d: %w", id, err)
	}
	return nil
}

func DeleteParts(db *sqlx.DB, ids []int64) error {
	return deleteByIDs(db, "parts", ids)
}

// deleteByIDs batches an IN-list delete; large selections are chunked so
// the statement never exceeds SQLite's bind-variable limit.
func deleteByIDs(db *sqlx.DB, table string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	const batchSize = 100
	for i := 0; i < len(ids); i += batchSize {
		end := i + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		query, args, err := sqlx.In(`DELETE FROM `+table+` WHERE id IN (?)`, ids[i:end])
		if err != nil {
			return fmt.Errorf("failed to build delete for %s: %w", table, err)
		}
		query = db.Rebind(query)
		if _, err := db.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	return nil
}
