package collection

import (
	"encoding/json"
	"log"
	"net/http"
)

// BulkDeleteRequest is the body of DELETE on a collection endpoint.
type BulkDeleteRequest struct {
	Items []int64 `json:"items"`
}

// BulkDeleteHandler decodes {"items": [...]} and hands the ids to del.
// Responds 204 on success so clients re-fetch rather than patch local state.
func BulkDeleteHandler(name string, del func(ids []int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if len(req.Items) == 0 {
			http.Error(w, "items is required", http.StatusBadRequest)
			return
		}

		if err := del(req.Items); err != nil {
			log.Printf("Error bulk-deleting %s (%d items): %v", name, len(req.Items), err)
			http.Error(w, "Failed to delete records", http.StatusInternalServerError)
			return
		}

		log.Printf("Bulk-deleted %d %s records", len(req.Items), name)
		w.WriteHeader(http.StatusNoContent)
	}
}
