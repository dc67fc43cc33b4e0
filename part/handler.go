package part

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

// Fields drives both the OPTIONS metadata and export headers.
func Fields() []collection.Field {
	return []collection.Field{
		{Name: "name", Label: "Name", Required: true, Sortable: true},
		{Name: "IPN", Label: "Internal Part Number", Sortable: true},
		{Name: "description", Label: "Description"},
		{Name: "category", Label: "Category", Sortable: true},
		{Name: "units", Label: "Units"},
		{Name: "active", Label: "Active", Type: "boolean"},
		{Name: "purchaseable", Label: "Purchaseable", Type: "boolean"},
		{Name: "salable", Label: "Salable", Type: "boolean"},
		{Name: "in_stock", Label: "In Stock", Type: "number", Sortable: true},
		{Name: "notes", Label: "Notes"},
	}
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := collection.ParseQuery(r)

		if q.Export != "" {
			exportParts(w, db, q)
			return
		}

		parts, count, err := database.ListParts(db, q)
		if err != nil {
			log.Printf("Error listing parts: %v", err)
			http.Error(w, "Failed to list parts", http.StatusInternalServerError)
			return
		}
		collection.WriteList(w, parts, count)
	}
}

// exportParts re-runs the filtered query without pagination and streams
// the whole result set as a file.
func exportParts(w http.ResponseWriter, db *sqlx.DB, q collection.Query) {
	format, err := export.ParseFormat(q.Export)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q.Limit = 0
	q.Offset = 0
	parts, _, err := database.ListParts(db, q)
	if err != nil {
		log.Printf("Error exporting parts: %v", err)
		http.Error(w, "Failed to export parts", http.StatusInternalServerError)
		return
	}

	header := []string{"Name", "IPN", "Description", "Category", "Units", "Active", "In Stock"}
	rows := make([][]string, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, []string{
			p.Name, p.IPN, p.Description, p.Category, p.Units,
			fmt.Sprintf("%d", p.Active), fmt.Sprintf("%g", p.InStock),
		})
	}

	if err := export.Write(w, "parts", format, header, rows); err != nil {
		log.Printf("Error writing parts export: %v", err)
	}
}

func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.PartInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		id, err := database.InsertPart(db, in)
		if err != nil {
			log.Printf("Error creating part: %v", err)
			http.Error(w, "Failed to create part", http.StatusInternalServerError)
			return
		}

		created, err := database.GetPart(db, id)
		if err != nil {
			log.Printf("Error re-reading created part %d: %v", id, err)
			http.Error(w, "Failed to read created part", http.StatusInternalServerError)
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

		p, err := database.GetPart(db, id)
		if err != nil {
			log.Printf("Error getting part %d: %v", id, err)
			http.Error(w, "Failed to get part", http.StatusInternalServerError)
			return
		}
		if p == nil {
			http.NotFound(w, r)
			return
		}
		collection.WriteJSON(w, http.StatusOK, p)
	}
}

func UpdateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		existing, err := database.GetPart(db, id)
		if err != nil {
			log.Printf("Error getting part %d: %v", id, err)
			http.Error(w, "Failed to get part", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.NotFound(w, r)
			return
		}

		var in model.PartInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.UpdatePart(db, id, in); err != nil {
			log.Printf("Error updating part %d: %v", id, err)
			http.Error(w, "Failed to update part", http.StatusInternalServerError)
			return
		}

		updated, err := database.GetPart(db, id)
		if err != nil {
			log.Printf("Error re-reading part %d: %v", id, err)
			http.Error(w, "Failed to read updated part", http.StatusInternalServerError)
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
		if err := database.DeleteParts(db, []int64{id}); err != nil {
			log.Printf("Error deleting part %d: %v", id, err)
			http.Error(w, "Failed to delete part", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return collection.BulkDeleteHandler("part", func(ids []int64) error {
		return database.DeleteParts(db, ids)
	})
}
