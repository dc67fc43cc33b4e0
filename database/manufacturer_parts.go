package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stocktree/collection"
	"stocktree/model"
)

const manufacturerPartColumns = `mp.id, mp.part_id, mp.manufacturer_id, mp.mpn,
	p.name AS part_name, c.name AS manufacturer_name, mp.description, mp.link`

const manufacturerPartFrom = `manufacturer_parts mp
	JOIN parts p ON p.id = mp.part_id
	JOIN companies c ON c.id = mp.manufacturer_id`

var manufacturerPartListSpec = ListSpec{
	Select:        manufacturerPartColumns,
	From:          manufacturerPartFrom,
	SearchColumns: []string{"mp.mpn", "p.name", "c.name", "mp.description"},
	OrderColumns: map[string]string{
		"MPN":               "mp.mpn",
		"part_name":         "p.name",
		"manufacturer_name": "c.name",
	},
	FilterColumns: map[string]string{
		"part":         "mp.part_id",
		"manufacturer": "mp.manufacturer_id",
	},
	DefaultOrder: "mp.mpn",
}

func ListManufacturerParts(db DBTX, q collection.Query) ([]model.ManufacturerPart, int, error) {
	rows := []model.ManufacturerPart{}
	count, err := RunList(db, manufacturerPartListSpec, q, &rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list manufacturer parts: %w", err)
	}
	return rows, count, nil
}

func GetManufacturerPart(db DBTX, id int64) (*model.ManufacturerPart, error) {
	var mp model.ManufacturerPart
	err := db.Get(&mp,
		`SELECT `+manufacturerPartColumns+` FROM `+manufacturerPartFrom+` WHERE mp.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manufacturer part %d: %w", id, err)
	}
	return &mp, nil
}

func InsertManufacturerPart(db DBTX, in model.ManufacturerPartInput) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO manufacturer_parts (part_id, manufacturer_id, mpn, description, link)
		 VALUES (?, ?, ?, ?, ?)`,
		in.PartID, in.ManufacturerID, in.MPN, in.Description, in.Link)
	if err != nil {
		return 0, fmt.Errorf("failed to insert manufacturer part: %w", err)
	}
	return res.LastInsertId()
}

func UpdateManufacturerPart(db DBTX, id int64, in model.ManufacturerPartInput) error {
	_, err := db.Exec(
		`UPDATE manufacturer_parts SET part_id = ?, manufacturer_id = ?, mpn = ?, description = ?, link = ? WHERE id = ?`,
		in.PartID, in.ManufacturerID, in.MPN, in.Description, in.Link, id)
	if err != nil {
		return fmt.Errorf("failed to update manufacturer part %d: %w", id, err)
	}
	return nil
}

func DeleteManufacturerParts(db *sqlx.DB, ids []int64) error {
	return deleteByIDs(db, "manufacturer_parts", ids)
}
