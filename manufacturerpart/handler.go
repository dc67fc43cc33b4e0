package manufacturerpart

import (
	"encoding/json"
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
		{Name: "manufacturer", Label: "Manufacturer", Type: "related", Required: true},
		{Name: "MPN", Label: "MPN", Required: true, Sortable: true},
		{Name: "description", Label: "Description"},
		{Name: "link", Label: "External Link"},
	}
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := collection.ParseQuery(r)

		if q.Export != "" {
			exportManufacturerParts(w, db, q)
			return
		}

		rows, count, err := database.ListManufacturerParts(db, q)
		if err != nil {
			log.Printf("Error listing manufacturer parts: %v", err)
			http.Error(w, "Failed to list manufacturer parts", http.StatusInternalServerError)
			return
		}
		collection.WriteList(w, rows, count)
	}
}

func exportManufacturerParts(w http.ResponseWriter, db *sqlx.DB, q collection.Query) {
	format, err := export.ParseFormat(q.Export)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q.Limit = 0
	q.Offset = 0
	parts, _, err := database.ListManufacturerParts(db, q)
	if err != nil {
		log.Printf("Error exporting manufacturer parts: %v", err)
		http.Error(w, "Failed to export manufacturer parts", http.StatusInternalServerError)
		return
	}

	header := []string{"MPN", "Part", "Manufacturer", "Description", "Link"}
	rows := make([][]string, 0, len(parts))
	for _, mp := range parts {
		rows = append(rows, []string{mp.MPN, mp.PartName, mp.ManufacturerName, mp.Description, mp.Link})
	}

	if err := export.Write(w, "manufacturer_parts", format, header, rows); err != nil {
		log.Printf("Error writing manufacturer parts export: %v", err)
	}
}

func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.ManufacturerPartInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.PartID == 0 || in.ManufacturerID == 0 || in.MPN == "" {
			http.Error(w, "part, manufacturer and MPN are required", http.StatusBadRequest)
			return
		}

		id, err := database.InsertManufacturerPart(db, in)
		if err != nil {
			log.Printf("Error creating manufacturer part: %v", err)
			http.Error(w, "Failed to create manufacturer part", http.StatusInternalServerError)
			return
		}

		created, err := database.GetManufacturerPart(db, id)
		if err != nil {
			log.Printf("Error re-reading created manufacturer part %d: %v", id, err)
			http.Error(w, "Failed to read created manufacturer part", http.StatusInternalServerError)
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

		mp, err := database.GetManufacturerPart(db, id)
		if err != nil {
			log.Printf("Error getting manufacturer part %d: %v", id, err)
			http.Error(w, "Failed to get manufacturer part", http.StatusInternalServerError)
			return
		}
		if mp == nil {
			http.NotFound(w, r)
			return
		}
		collection.WriteJSON(w, http.StatusOK, mp)
	}
}

func UpdateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		existing, err := database.GetManufacturerPart(db, id)
		if err != nil {
			log.Printf("Error getting manufacturer part %d: %v", id, err)
			http.Error(w, "Failed to get manufacturer part", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.NotFound(w, r)
			return
		}

		var in model.ManufacturerPartInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.UpdateManufacturerPart(db, id, in); err != nil {
			log.Printf("Error updating manufacturer part %d: %v", id, err)
			http.Error(w, "Failed to update manufacturer part", http.StatusInternalServerError)
			return
		}

		updated, err := database.GetManufacturerPart(db, id)
		if err != nil {
			log.Printf("Error re-reading manufacturer part %d: %v", id, err)
			http.Error(w, "Failed to read updated manufacturer part", http.StatusInternalServerError)
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
		if err := database.DeleteManufacturerParts(db, []int64{id}); err != nil {
			log.Printf("Error deleting manufacturer part %d: %v", id, err)
			http.Error(w, "Failed to delete manufacturer part", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return collection.BulkDeleteHandler("manufacturer part", func(ids []int64) error {
		return database.DeleteManufacturerParts(db, ids)
	})
}
