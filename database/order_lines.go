package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stocktree/collection"
	"stocktree/model"
)

const orderLineColumns = `l.id, l.order_id, l.supplier_part_id, sp.sku, p.name AS part_name,
	l.quantity, l.received, l.purchase_price, l.destination, l.notes`

const orderLineFrom = `purchase_order_lines l
	JOIN supplier_parts sp ON sp.id = l.supplier_part_id
	JOIN parts p ON p.id = sp.part_id`

var orderLineListSpec = ListSpec{
	Select:        orderLineColumns,
	From:          orderLineFrom,
	SearchColumns: []string{"sp.sku", "p.name", "l.notes"},
	OrderColumns: map[string]string{
		"SKU":       "sp.sku",
		"part_name": "p.name",
		"quantity":  "l.quantity",
		"received":  "l.received",
	},
	FilterColumns: map[string]string{
		"order": "l.order_id",
		"part":  "l.supplier_part_id",
	},
	DefaultOrder: "l.id",
}

func ListOrderLines(db DBTX, q collection.Query) ([]model.PurchaseOrderLine, int, error) {
	lines := []model.PurchaseOrderLine{}
	count, err := RunList(db, orderLineListSpec, q, &lines)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list order lines: %w", err)
	}
	return lines, count, nil
}

func GetOrderLine(db DBTX, id int64) (*model.PurchaseOrderLine, error) {
	var l model.PurchaseOrderLine
	err := db.Get(&l, `SELECT `+orderLineColumns+` FROM `+orderLineFrom+` WHERE l.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order line %d: %w", id, err)
	}
	return &l, nil
}

func InsertOrderLine(db DBTX, in model.PurchaseOrderLineInput) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO purchase_order_lines (order_id, supplier_part_id, quantity, received, purchase_price, destination, notes)
		 VALUES (?, ?, ?, 0, ?, ?, ?)`,
		in.OrderID, in.SupplierPartID, in.Quantity,
		in.PurchasePrice.String(), in.Destination, in.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order line: %w", err)
	}
	return res.LastInsertId()
}

func UpdateOrderLine(db DBTX, id int64, in model.PurchaseOrderLineInput) error {
	_, err := db.Exec(
		`UPDATE purchase_order_lines SET supplier_part_id = ?, quantity = ?, purchase_price = ?, destination = ?, notes = ?
		 WHERE id = ?`,
		in.SupplierPartID, in.Quantity, in.PurchasePrice.String(), in.Destination, in.Notes, id)
	if err != nil {
		return fmt.Errorf("failed to update order line %d: %w", id, err)
	}
	return nil
}

// ReceiveOrderLineInTx books a received quantity against a line and moves
// the same quantity into the part's stock level.
func ReceiveOrderLineInTx(tx *sqlx.Tx, lineID int64, quantity float64) error {
	if quantity <= 0 {
		return fmt.Errorf("received quantity must be positive")
	}

	var line struct {
		PartID   int64   `db:"part_id"`
		Quantity float64 `db:"quantity"`
		Received float64 `db:"received"`
		OrderID  int64   `db:"order_id"`
		Status   int     `db:"status"`
	}
	err := tx.Get(&line, `
		SELECT sp.part_id, l.quantity, l.received, l.order_id, po.status
		FROM purchase_order_lines l
		JOIN supplier_parts sp ON sp.id = l.supplier_part_id
		JOIN purchase_orders po ON po.id = l.order_id
		WHERE l.id = ?`, lineID)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("failed to load order line %d: %w", lineID, err)
	}

	if line.Status != model.OrderStatusPlaced {
		return ErrInvalidStatus
	}
	if line.Received+quantity > line.Quantity {
		return fmt.Errorf("cannot receive %.2f: only %.2f outstanding", quantity, line.Quantity-line.Received)
	}

	if _, err := tx.Exec(
		`UPDATE purchase_order_lines SET received = received + ? WHERE id = ?`,
		quantity, lineID); err != nil {
		return fmt.Errorf("failed to update received quantity: %w", err)
	}

	if _, err := tx.Exec(
		`UPDATE parts SET in_stock = in_stock + ? WHERE id = ?`,
		quantity, line.PartID); err != nil {
		return fmt.Errorf("failed to update part stock: %w", err)
	}
	return nil
}

func DeleteOrderLines(db *sqlx.DB, ids []int64) error {
	return deleteByIDs(db, "purchase_order_lines", ids)
}
