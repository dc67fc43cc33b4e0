package company

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
		{Name: "name", Label: "Company Name", Required: true, Sortable: true},
		{Name: "description", Label: "Description"},
		{Name: "website", Label: "Website"},
		{Name: "currency", Label: "Currency", Sortable: true},
		{Name: "is_supplier", Label: "Supplier", Type: "boolean"},
		{Name: "is_manufacturer", Label: "Manufacturer", Type: "boolean"},
		{Name: "is_customer", Label: "Customer", Type: "boolean"},
		{Name: "active", Label: "Active", Type: "boolean"},
	}
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := collection.ParseQuery(r)

		if q.Export != "" {
			exportCompanies(w, db, q)
			return
		}

		companies, count, err := database.ListCompanies(db, q)
		if err != nil {
			log.Printf("Error listing companies: %v", err)
			http.Error(w, "Failed to list companies", http.StatusInternalServerError)
			return
		}
		collection.WriteList(w, companies, count)
	}
}

func exportCompanies(w http.ResponseWriter, db *sqlx.DB, q collection.Query) {
	format, err := export.ParseFormat(q.Export)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q.Limit = 0
	q.Offset = 0
	companies, _, err := database.ListCompanies(db, q)
	if err != nil {
		log.Printf("Error exporting companies: %v", err)
		http.Error(w, "Failed to export companies", http.StatusInternalServerError)
		return
	}

	header := []string{"Name", "Description", "Website", "Currency", "Supplier", "Manufacturer", "Customer"}
	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{
			c.Name, c.Description, c.Website, c.Currency,
			fmt.Sprintf("%d", c.IsSupplier), fmt.Sprintf("%d", c.IsManufacturer), fmt.Sprintf("%d", c.IsCustomer),
		})
	}

	if err := export.Write(w, "companies", format, header, rows); err != nil {
		log.Printf("Error writing companies export: %v", err)
	}
}

func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.CompanyInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		if in.Currency == "" {
			in.Currency = "USD"
		}

		id, err := database.InsertCompany(db, in)
		if err != nil {
			log.Printf("Error creating company: %v", err)
			http.Error(w, "Failed to create company", http.StatusInternalServerError)
			return
		}

		created, err := database.GetCompany(db, id)
		if err != nil {
			log.Printf("Error re-reading created company %d: %v", id, err)
			http.Error(w, "Failed to read created company", http.StatusInternalServerError)
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

		c, err := database.GetCompany(db, id)
		if err != nil {
			log.Printf("Error getting company %d: %v", id, err)
			http.Error(w, "Failed to get company", http.StatusInternalServerError)
			return
		}
		if c == nil {
			http.NotFound(w, r)
			return
		}
		collection.WriteJSON(w, http.StatusOK, c)
	}
}

func UpdateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		existing, err := database.GetCompany(db, id)
		if err != nil {
			log.Printf("Error getting company %d: %v", id, err)
			http.Error(w, "Failed to get company", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.NotFound(w, r)
			return
		}

		var in model.CompanyInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.UpdateCompany(db, id, in); err != nil {
			log.Printf("Error updating company %d: %v", id, err)
			http.Error(w, "Failed to update company", http.StatusInternalServerError)
			return
		}

		updated, err := database.GetCompany(db, id)
		if err != nil {
			log.Printf("Error re-reading company %d: %v", id, err)
			http.Error(w, "Failed to read updated company", http.StatusInternalServerError)
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
		if err := database.DeleteCompanies(db, []int64{id}); err != nil {
			log.Printf("Error deleting company %d: %v", id, err)
			http.Error(w, "Failed to delete company", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return collection.BulkDeleteHandler("company", func(ids []int64) error {
		return database.DeleteCompanies(db, ids)
	})
}
