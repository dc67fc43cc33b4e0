package model

import "github.com/shopspring/decimal"

// Purchase order status codes. Orders move Pending -> Placed -> Complete;
// Cancelled is terminal from any non-complete state.
const (
	OrderStatusPending   = 10
	OrderStatusPlaced    = 20
	OrderStatusComplete  = 30
	OrderStatusCancelled = 40
)

type PurchaseOrder struct {
	ID           int64           `db:"id" json:"pk"`
	Reference    string          `db:"reference" json:"reference"`
	SupplierID   int64           `db:"supplier_id" json:"supplier"`
	SupplierName string          `db:"supplier_name" json:"supplier_name"`
	Description  string          `db:"description" json:"description"`
	Status       int             `db:"status" json:"status"`
	Currency     string          `db:"currency" json:"order_currency"`
	TotalPrice   decimal.Decimal `db:"total_price" json:"total_price"`
	CreationDate string          `db:"creation_date" json:"creation_date"`
	IssueDate    string          `db:"issue_date" json:"issue_date"`
	TargetDate   string          `db:"target_date" json:"target_date"`
	LineCount    int             `db:"line_count" json:"line_items"`
}

type PurchaseOrderInput struct {
	SupplierID  int64  `db:"supplier_id" json:"supplier"`
	Description string `db:"description" json:"description"`
	Currency    string `db:"currency" json:"order_currency"`
	TargetDate  string `db:"target_date" json:"target_date"`
}

type PurchaseOrderLine struct {
	ID             int64           `db:"id" json:"pk"`
	OrderID        int64           `db:"order_id" json:"order"`
	SupplierPartID int64           `db:"supplier_part_id" json:"part"`
	SKU            string          `db:"sku" json:"SKU"`
	PartName       string          `db:"part_name" json:"part_name"`
	Quantity       float64         `db:"quantity" json:"quantity"`
	Received       float64         `db:"received" json:"received"`
	PurchasePrice  decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	Destination    string          `db:"destination" json:"destination"`
	Notes          string          `db:"notes" json:"notes"`
}

type PurchaseOrderLineInput struct {
	OrderID        int64           `db:"order_id" json:"order"`
	SupplierPartID int64           `db:"supplier_part_id" json:"part"`
	Quantity       float64         `db:"quantity" json:"quantity"`
	PurchasePrice  decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	Destination    string          `db:"destination" json:"destination"`
	Notes          string          `db:"notes" json:"notes"`
}
