package collection

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the list response shape: the full filtered record count plus
// the current page of results.
type Envelope struct {
	Count   int         `json:"count"`
	Results interface{} `json:"results"`
}

// WriteList writes the {count, results} envelope.
func WriteList(w http.ResponseWriter, results interface{}, count int) {
	WriteJSON(w, http.StatusOK, Envelope{Count: count, Results: results})
}

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
