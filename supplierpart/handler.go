package supplierpart

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"stocktree/collection"
	"stocktree/database"
	"stocktree/export"
	"stocktree/model"
)

func Fields() []collection.Field {
	return []collection.Field{
		{Name: "part", Label: "Part", Type: "related", Required: true},
		{Name: "supplier", Label: "Supplier", Type: "related", Required: true},
		{Name: "SKU", Label: "SKU", Required: true, Sortable: true},
		{Name: "packaging", Label: "Packaging"},
		{Name: "pack_quantity", Label: "Pack Quantity", Type: "number"},
		{Name: "unit_price", Label: "Unit Price", Type: "number", Sortable: true},
		{Name: "available", Label: "Availability", Type: "number", Sortable: true},
		{Name: "active", Label: "Active", Type: "boolean"},
		{Name: "note", Label: "Note"},
	}
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := collection.ParseQuery(r)

		if q.Export != "" {
			exportSupplierParts(w, db, q)
			return
		}

		rows, count, err := database.ListSupplierParts(db, q)
		if err != nil {
			log.Printf("Error listing supplier parts: %v", err)
			http.Error(w, "Failed to list supplier parts", http.StatusInternalServerError)
			return
		}
		collection.WriteList(w, rows, count)
	}
}

func exportSupplierParts(w http.ResponseWriter, db *sqlx.DB, q collection.Query) {
	format, err := export.ParseFormat(q.Export)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q.Limit = 0
	q.Offset = 0
	parts, _, err := database.ListSupplierParts(db, q)
	if err != nil {
		log.Printf("Error exporting supplier parts: %v", err)
		http.Error(w, "Failed to export supplier parts", http.StatusInternalServerError)
		return
	}

	header := []string{"SKU", "Part", "Supplier", "Packaging", "Unit Price", "Availability"}
	rows := make([][]string, 0, len(parts))
	for _, sp := range parts {
		rows = append(rows, []string{
			sp.SKU, sp.PartName, sp.SupplierName, sp.Packaging,
			sp.UnitPrice.String(), fmt.Sprintf("%g", sp.Available),
		})
	}

	if err := export.Write(w, "supplier_parts", format, header, rows); err != nil {
		log.Printf("Error writing supplier parts export: %v", err)
	}
}

func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.SupplierPartInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.PartID == 0 || in.SupplierID == 0 || in.SKU == "" {
			http.Error(w, "part, supplier and SKU are required", http.StatusBadRequest)
			return
		}
		if in.PackQuantity <= 0 {
			in.PackQuantity = 1
		}

		id, err := database.InsertSupplierPart(db, in)
		if err != nil {
			log.Printf("Error creating supplier part: %v", err)
			http.Error(w, "Failed to create supplier part", http.StatusInternalServerError)
			return
		}

		created, err := database.GetSupplierPart(db, id)
		if err != nil {
			log.Printf("Error re-reading created supplier part %d: %v", id, err)
			http.Error(w, "Failed to read created supplier part", http.StatusInternalServerError)
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

		sp, err := database.GetSupplierPart(db, id)
		if err != nil {
			log.Printf("Error getting supplier part %d: %v", id, err)
			http.Error(w, "Failed to get supplier part", http.StatusInternalServerError)
			return
		}
		if sp == nil {
			http.NotFound(w, r)
			return
		}
		collection.WriteJSON(w, http.StatusOK, sp)
	}
}

func UpdateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		existing, err := database.GetSupplierPart(db, id)
		if err != nil {
			log.Printf("Error getting supplier part %d: %v", id, err)
			http.Error(w, "Failed to get supplier part", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.NotFound(w, r)
			return
		}

		var in model.SupplierPartInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.UpdateSupplierPart(db, id, in); err != nil {
			log.Printf("Error updating supplier part %d: %v", id, err)
			http.Error(w, "Failed to update supplier part", http.StatusInternalServerError)
			return
		}

		updated, err := database.GetSupplierPart(db, id)
		if err != nil {
			log.Printf("Error re-reading supplier part %d: %v", id, err)
			http.Error(w, "Failed to read updated supplier part", http.StatusInternalServerError)
			return
		}
		collection.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := database.DeleteSupplierParts(db, []int64{id}); err != nil {
			log.Printf("Error deleting supplier part %d: %v", id, err)
			http.Error(w, "Failed to delete supplier part", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return collection.BulkDeleteHandler("supplier part", func(ids []int64) error {
		return database.DeleteSupplierParts(db, ids)
	})
}
