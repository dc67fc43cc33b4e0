package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"stocktree/collection"
	"stocktree/database"
	"stocktree/model"
)

// LoginHandler checks credentials and hands out a token. Wrong username and
// wrong password produce the same response.
func LoginHandler(db *sqlx.DB, a *Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username and password are required", http.StatusBadRequest)
			return
		}

		record, err := database.GetUserByUsername(db, req.Username)
		if err != nil {
			log.Printf("Error looking up user %s: %v", req.Username, err)
			http.Error(w, "Login failed", http.StatusInternalServerError)
			return
		}
		if record == nil || record.IsActive == 0 {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(req.Password)); err != nil {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}

		token, err := a.IssueToken(record.ID)
		if err != nil {
			log.Printf("Error issuing token for user %d: %v", record.ID, err)
			http.Error(w, "Login failed", http.StatusInternalServerError)
			return
		}

		log.Printf("User %s logged in", record.Username)
		collection.WriteJSON(w, http.StatusOK, model.LoginResponse{
			Token: token,
			User:  record.User,
		})
	}
}
