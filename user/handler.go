package user

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"stocktree/collection"
	"stocktree/database"
	"stocktree/export"
	"stocktree/model"
)

func Fields() []collection.Field {
	return []collection.Field{
		{Name: "username", Label: "Username", Required: true, Sortable: true},
		{Name: "first_name", Label: "First Name", Sortable: true},
		{Name: "last_name", Label: "Last Name", Sortable: true},
		{Name: "email", Label: "Email", Sortable: true},
		{Name: "is_staff", Label: "Staff", Type: "boolean"},
		{Name: "is_active", Label: "Active", Type: "boolean"},
	}
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := collection.ParseQuery(r)

		if q.Export != "" {
			exportUsers(w, db, q)
			return
		}

		users, count, err := database.ListUsers(db, q)
		if err != nil {
			log.Printf("Error listing users: %v", err)
			http.Error(w, "Failed to list users", http.StatusInternalServerError)
			return
		}
		collection.WriteList(w, users, count)
	}
}

func exportUsers(w http.ResponseWriter, db *sqlx.DB, q collection.Query) {
	format, err := export.ParseFormat(q.Export)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q.Limit = 0
	q.Offset = 0
	users, _, err := database.ListUsers(db, q)
	if err != nil {
		log.Printf("Error exporting users: %v", err)
		http.Error(w, "Failed to export users", http.StatusInternalServerError)
		return
	}

	header := []string{"Username", "First Name", "Last Name", "Email"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Username, u.FirstName, u.LastName, u.Email})
	}

	if err := export.Write(w, "users", format, header, rows); err != nil {
		log.Printf("Error writing users export: %v", err)
	}
}

func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.UserInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.Username == "" || in.Password == "" {
			http.Error(w, "username and password are required", http.StatusBadRequest)
			return
		}

		existing, err := database.GetUserByUsername(db, in.Username)
		if err != nil {
			log.Printf("Error checking username %s: %v", in.Username, err)
			http.Error(w, "Failed to check username", http.StatusInternalServerError)
			return
		}
		if existing != nil {
			http.Error(w, "username already taken", http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}

		id, err := database.InsertUser(db, in, string(hash))
		if err != nil {
			log.Printf("Error creating user: %v", err)
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}

		created, err := database.GetUser(db, id)
		if err != nil {
			log.Printf("Error re-reading created user %d: %v", id, err)
			http.Error(w, "Failed to read created user", http.StatusInternalServerError)
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

		u, err := database.GetUser(db, id)
		if err != nil {
			log.Printf("Error getting user %d: %v", id, err)
			http.Error(w, "Failed to get user", http.StatusInternalServerError)
			return
		}
		if u == nil {
			http.NotFound(w, r)
			return
		}
		collection.WriteJSON(w, http.StatusOK, u)
	}
}

func UpdateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := collection.IDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		existing, err := database.GetUser(db, id)
		if err != nil {
			log.Printf("Error getting user %d: %v", id, err)
			http.Error(w, "Failed to get user", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.NotFound(w, r)
			return
		}

		var in model.UserInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.UpdateUser(db, id, in); err != nil {
			log.Printf("Error updating user %d: %v", id, err)
			http.Error(w, "Failed to update user", http.StatusInternalServerError)
			return
		}

		updated, err := database.GetUser(db, id)
		if err != nil {
			log.Printf("Error re-reading user %d: %v", id, err)
			http.Error(w, "Failed to read updated user", http.StatusInternalServerError)
			return
		}
		collection.WriteJSON(w, http.StatusOK, updated)
	}
}

func BulkDeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return collection.BulkDeleteHandler("user", func(ids []int64) error {
		return database.DeleteUsers(db, ids)
	})
}
