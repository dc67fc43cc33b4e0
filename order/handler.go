package order

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"stocktree/collection"
	"stocktree/config"
	"stocktree/database"
	"stocktree/export"
	"stocktree/model"
)

func Fields() []collection.Field {
	return []collection.Field{
		{Name: "reference", Label: "Reference", Sortable: true},
		{Name: "supplier", Label: "Supplier", Type: "related", Required: true, Sortable: true},
		{Name: "description", Label: "Description"},
		{Name: "status", Label: "Status", Type: "choice", Sortable: true},
		{Name: "order_currency", Label: "Order Currency"},
		{Name: "creation_date", Label: "Created", Type: "date", Sortable: true},
		{Name: "target_date", Label: "Target Date", Type: "date", Sortable: true},
		{Name: "line_items", Label: "Line Items", Type: "number"},
		{Name: "total_price", Label: "Total Price", Type: "number"},
	}
}

func LineFields() []collection.Field {
	return []collection.Field{
		{Name: "order", Label: "Order", Type: "related", Required: true},
		{Name: "part", Label: "Supplier Part", Type: "related", Required: true},
		{Name: "quantity", Label: "Quantity", Type: "number", Required: true, Sortable: true},
		{Name: "received", Label: "Received", Type: "number", Sortable: true},
		{Name: "purchase_price", Label: "Purchase Price", Type: "number"},
		{Name: "destination", Label: "Destination"},
		{Name: "notes", Label: "Notes"},
	}
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := collection.ParseQuery(r)

		if q.Export != "" {
			exportOrders(w, db, q)
			return
		}

		orders, count, err := database.ListPurchaseOrders(db, q)
		if err != nil {
			log.Printf("Error listing purchase orders: %v", err)
			http.Error(w, "Failed to list purchase orders", http.StatusInternalServerError)
			return
		}
		collection.WriteList(w, orders, count)
	}
}

func exportOrders(w http.ResponseWriter, db *sqlx.DB, q collection.Query) {
	format, err := export.ParseFormat(q.Export)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q.Limit = 0
	q.Offset = 0
	orders, _, err := database.ListPurchaseOrders(db, q)
	if err != nil {
		log.Printf("Error exporting purchase orders: %v", err)
		http.Error(w, "Failed to export purchase orders", http.StatusInternalServerError)
		return
	}

	header := []string{"Reference", "Supplier", "Description", "Status", "Currency", "Created", "Target", "Lines", "Total"}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.Reference, o.SupplierName, o.Description, fmt.Sprintf("%d", o.Status),
			o.Currency, o.CreationDate, o.TargetDate,
			fmt.Sprintf("%d", o.LineCount), o.TotalPrice.String(),
		})
	}

	if err := export.Write(w, "purchase_orders", format, header, rows); err != nil {
		log.Printf("Error writing purchase orders export: %v", err)
	}
}

func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.PurchaseOrderInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.SupplierID == 0 {
			http.Error(w, "supplier is required", http.StatusBadRequest)
			return
		}

		supplier, err := database.GetCompany(db, in.SupplierID)
		if err != nil {
			log.Printf("Error checking supplier %d: %v", in.SupplierID, err)
			http.Error(w, "Failed to check supplier", http.StatusInternalServerError)
			return
		}
		if supplier == nil || supplier.IsSupplier == 0 {
			http.Error(w, "supplier does not exist or is not a supplier", http.StatusBadRequest)
			return
		}
		if in.Currency == "" {
			in.Currency = supplier.Currency
		}
		if in.Currency == "" {
			in.Currency = config.GetConfig().DefaultCurrency
		}

		tx, err := db.Beginx()
		if err != nil {
			log.Printf("Failed to begin transaction for order create: %v", err)
			http.Error(w, "Failed to create order", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		id, reference, err := database.CreatePurchaseOrderInTx(tx, in)
		if err != nil {
			log.Printf("Error creating purchase order: %v", err)
			http.Error(w, "Failed to create order", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			log.Printf("Failed to commit order create: %v", err)
			http.Error(w, "Failed to create order", http.StatusInternalServerError)
			return
		}

		log.Printf("Created purchase order %s for supplier %s", reference, supplier.Name)
		created, err := database.GetPurchaseOrder(db, id)
		if err != nil {
			log.Printf("Error re-reading created order %d: %v", id, err)
			http.Error(w, "Failed to read created order", http.StatusInternalServerError)
			return
		}
		collection.WriteJSON(w, http.StatusCreated, created)
	}
}

func DetailHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		po, err := database.GetPurchaseOrder(db, id)
		if err != nil {
			log.Printf("Error getting purchase order %d: %v", id, err)
			http.Error(w, "Failed to get purchase order", http.StatusInternalServerError)
			return
		}
		if po == nil {
			http.NotFound(w, r)
			return
		}
		collection.WriteJSON(w, http.StatusOK, po)
	}
}

// StatusHandler serves the issue / complete / cancel transitions.
func StatusHandler(db *sqlx.DB, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = database.SetOrderStatus(db, id, status)
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		if errors.Is(err, database.ErrInvalidStatus) {
			http.Error(w, "invalid status transition", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Printf("Error setting order %d status to %d: %v", id, status, err)
			http.Error(w, "Failed to update order status", http.StatusInternalServerError)
			return
		}

		updated, err := database.GetPurchaseOrder(db, id)
		if err != nil {
			log.Printf("Error re-reading order %d: %v", id, err)
			http.Error(w, "Failed to read updated order", http.StatusInternalServerError)
			return
		}
		collection.WriteJSON(w, http.StatusOK, updated)
	}
}

func BulkDeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return collection.BulkDeleteHandler("purchase order", func(ids []int64) error {
		return database.DeletePurchaseOrders(db, ids)
	})
}

func ListLinesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := collection.ParseQuery(r)

		if q.Export != "" {
			exportLines(w, db, q)
			return
		}

		lines, count, err := database.ListOrderLines(db, q)
		if err != nil {
			log.Printf("Error listing order lines: %v", err)
			http.Error(w, "Failed to list order lines", http.StatusInternalServerError)
			return
		}
		collection.WriteList(w, lines, count)
	}
}

func exportLines(w http.ResponseWriter, db *sqlx.DB, q collection.Query) {
	format, err := export.ParseFormat(q.Export)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q.Limit = 0
	q.Offset = 0
	lines, _, err := database.ListOrderLines(db, q)
	if err != nil {
		log.Printf("Error exporting order lines: %v", err)
		http.Error(w, "Failed to export order lines", http.StatusInternalServerError)
		return
	}

	header := []string{"SKU", "Part", "Quantity", "Received", "Purchase Price", "Destination"}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{
			l.SKU, l.PartName, fmt.Sprintf("%g", l.Quantity), fmt.Sprintf("%g", l.Received),
			l.PurchasePrice.String(), l.Destination,
		})
	}

	if err := export.Write(w, "purchase_order_lines", format, header, rows); err != nil {
		log.Printf("Error writing order lines export: %v", err)
	}
}

func CreateLineHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.PurchaseOrderLineInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.OrderID == 0 || in.SupplierPartID == 0 || in.Quantity <= 0 {
			http.Error(w, "order, part and a positive quantity are required", http.StatusBadRequest)
			return
		}

		po, err := database.GetPurchaseOrder(db, in.OrderID)
		if err != nil {
			log.Printf("Error checking order %d: %v", in.OrderID, err)
			http.Error(w, "Failed to check order", http.StatusInternalServerError)
			return
		}
		if po == nil {
			http.Error(w, "order does not exist", http.StatusBadRequest)
			return
		}
		if po.Status != model.OrderStatusPending {
			http.Error(w, "lines can only be added to pending orders", http.StatusBadRequest)
			return
		}

		// Default the line price from the supplier part when not provided.
		if in.PurchasePrice.IsZero() {
			sp, err := database.GetSupplierPart(db, in.SupplierPartID)
			if err != nil {
				log.Printf("Error reading supplier part %d: %v", in.SupplierPartID, err)
				http.Error(w, "Failed to read supplier part", http.StatusInternalServerError)
				return
			}
			if sp == nil {
				http.Error(w, "supplier part does not exist", http.StatusBadRequest)
				return
			}
			in.PurchasePrice = sp.UnitPrice
		}

		id, err := database.InsertOrderLine(db, in)
		if err != nil {
			log.Printf("Error creating order line: %v", err)
			http.Error(w, "Failed to create order line", http.StatusInternalServerError)
			return
		}

		created, err := database.GetOrderLine(db, id)
		if err != nil {
			log.Printf("Error re-reading created line %d: %v", id, err)
			http.Error(w, "Failed to read created line", http.StatusInternalServerError)
			return
		}
		collection.WriteJSON(w, http.StatusCreated, created)
	}
}

func UpdateLineHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		existing, err := database.GetOrderLine(db, id)
		if err != nil {
			log.Printf("Error getting order line %d: %v", id, err)
			http.Error(w, "Failed to get order line", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.NotFound(w, r)
			return
		}

		var in model.PurchaseOrderLineInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.SupplierPartID == 0 {
			in.SupplierPartID = existing.SupplierPartID
		}
		if err := database.UpdateOrderLine(db, id, in); err != nil {
			log.Printf("Error updating order line %d: %v", id, err)
			http.Error(w, "Failed to update order line", http.StatusInternalServerError)
			return
		}

		updated, err := database.GetOrderLine(db, id)
		if err != nil {
			log.Printf("Error re-reading order line %d: %v", id, err)
			http.Error(w, "Failed to read updated line", http.StatusInternalServerError)
			return
		}
		collection.WriteJSON(w, http.StatusOK, updated)
	}
}

// ReceiveLineHandler books received stock against a line inside one
// transaction: the line's received counter and the part's stock level move
// together or not at all.
func ReceiveLineHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var payload struct {
			Quantity float64 `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			log.Printf("Failed to begin transaction for receive: %v", err)
			http.Error(w, "Failed to receive line", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		err = database.ReceiveOrderLineInTx(tx, id, payload.Quantity)
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		if errors.Is(err, database.ErrInvalidStatus) {
			http.Error(w, "order is not in a receivable state", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Printf("Error receiving order line %d: %v", id, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := tx.Commit(); err != nil {
			log.Printf("Failed to commit receive for line %d: %v", id, err)
			http.Error(w, "Failed to receive line", http.StatusInternalServerError)
			return
		}

		updated, err := database.GetOrderLine(db, id)
		if err != nil {
			log.Printf("Error re-reading order line %d: %v", id, err)
			http.Error(w, "Failed to read updated line", http.StatusInternalServerError)
			return
		}
		collection.WriteJSON(w, http.StatusOK, updated)
	}
}

func BulkDeleteLinesHandler(db *sqlx.DB) http.HandlerFunc {
	return collection.BulkDeleteHandler("order line", func(ids []int64) error {
		return database.DeleteOrderLines(db, ids)
	})
}
