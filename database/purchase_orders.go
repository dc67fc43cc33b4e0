package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"stocktree/collection"
	"stocktree/model"
)

const orderColumns = `po.id, po.reference, po.supplier_id, c.name AS supplier_name,
	po.description, po.status, po.currency, po.creation_date, po.issue_date, po.target_date,
	(SELECT COUNT(*) FROM purchase_order_lines l WHERE l.order_id = po.id) AS line_count,
	COALESCE((SELECT SUM(l.quantity * l.purchase_price) FROM purchase_order_lines l WHERE l.order_id = po.id), 0) AS total_price`

const orderFrom = `purchase_orders po JOIN companies c ON c.id = po.supplier_id`

var orderListSpec = ListSpec{
	Select:        orderColumns,
	From:          orderFrom,
	SearchColumns: []string{"po.reference", "po.description", "c.name"},
	OrderColumns: map[string]string{
		"reference":     "po.reference",
		"supplier_name": "c.name",
		"status":        "po.status",
		"creation_date": "po.creation_date",
		"target_date":   "po.target_date",
	},
	FilterColumns: map[string]string{
		"supplier": "po.supplier_id",
		"status":   "po.status",
	},
	DefaultOrder: "po.reference",
}

func ListPurchaseOrders(db DBTX, q collection.Query) ([]model.PurchaseOrder, int, error) {
	orders := []model.PurchaseOrder{}
	count, err := RunList(db, orderListSpec, q, &orders)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	return orders, count, nil
}

func GetPurchaseOrder(db DBTX, id int64) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := db.Get(&po, `SELECT `+orderColumns+` FROM `+orderFrom+` WHERE po.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order %d: %w", id, err)
	}
	return &po, nil
}

// CreatePurchaseOrderInTx inserts a pending order with the next reference
// from the PO sequence.
func CreatePurchaseOrderInTx(tx *sqlx.Tx, in model.PurchaseOrderInput) (int64, string, error) {
	reference, err := NextSequenceInTx(tx, SequencePurchaseOrder, "PO-", 4)
	if err != nil {
		return 0, "", err
	}

	res, err := tx.Exec(
		`INSERT INTO purchase_orders (reference, supplier_id, description, status, currency, creation_date, target_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		reference, in.SupplierID, in.Description, model.OrderStatusPending,
		in.Currency, time.Now().Format("2006-01-02"), in.TargetDate)
	if err != nil {
		return 0, "", fmt.Errorf("failed to insert purchase order: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}
	return id, reference, nil
}

var ErrInvalidStatus = errors.New("invalid order status transition")

// SetOrderStatus enforces the pending -> placed -> complete progression;
// cancel is allowed from any state short of complete. The guard lives in
// the UPDATE itself so two concurrent transitions cannot both pass it.
func SetOrderStatus(db DBTX, id int64, status int) error {
	var res sql.Result
	var err error

	switch status {
	case model.OrderStatusPlaced:
		res, err = db.Exec(
			`UPDATE purchase_orders SET status = ?, issue_date = ? WHERE id = ? AND status = ?`,
			status, time.Now().Format("2006-01-02"), id, model.OrderStatusPending)
	case model.OrderStatusComplete:
		res, err = db.Exec(`UPDATE purchase_orders SET status = ? WHERE id = ? AND status = ?`,
			status, id, model.OrderStatusPlaced)
	case model.OrderStatusCancelled:
		res, err = db.Exec(`UPDATE purchase_orders SET status = ? WHERE id = ? AND status != ?`,
			status, id, model.OrderStatusComplete)
	default:
		return ErrInvalidStatus
	}
	if err != nil {
		return fmt.Errorf("failed to update order %d status: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order %d status: %w", id, err)
	}
	if affected == 0 {
		var current int
		if err := db.Get(&current, `SELECT status FROM purchase_orders WHERE id = ?`, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sql.ErrNoRows
			}
			return fmt.Errorf("failed to read order %d status: %w", id, err)
		}
		return ErrInvalidStatus
	}
	return nil
}

func DeletePurchaseOrders(db *sqlx.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM purchase_order_lines WHERE order_id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("failed to build order line delete: %w", err)
	}
	if _, err := db.Exec(db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to delete order lines: %w", err)
	}
	return deleteByIDs(db, "purchase_orders", ids)
}
