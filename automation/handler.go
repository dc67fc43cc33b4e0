package automation

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"

	"stocktree/config"
	"stocktree/database"
	"stocktree/parsers"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DownloadPriceListHandler drives the portal automation for one supplier
// and imports the downloaded price list into its supplier parts.
func DownloadPriceListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID, err := strconv.ParseInt(r.URL.Query().Get("supplier"), 10, 64)
		if err != nil || supplierID <= 0 {
			writeJSONError(w, "supplier query parameter is required", http.StatusBadRequest)
			return
		}

		cfg := config.GetConfig()
		if cfg.PortalURL == "" || cfg.PortalUserID == "" || cfg.PortalPassword == "" {
			writeJSONError(w, "Portal URL or credentials are not configured", http.StatusBadRequest)
			return
		}

		saveDir := cfg.PriceListFolder
		if saveDir == "" {
			saveDir = os.TempDir()
			log.Printf("No price list folder configured, using temp folder: %s", saveDir)
		}

		log.Println("Starting supplier portal automation...")
		filePath, err := DownloadPriceList(cfg.PortalURL, cfg.PortalUserID, cfg.PortalPassword, saveDir)
		if err != nil {
			log.Printf("Automation error: %v", err)
			writeJSONError(w, "Automation failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if filePath == NoData {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "no_data",
				"message": "No new price list was available.",
			})
			return
		}

		log.Printf("Importing downloaded price list: %s", filePath)
		file, err := os.Open(filePath)
		if err != nil {
			writeJSONError(w, "Failed to open downloaded file: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer file.Close()

		updated, skipped, err := ImportPriceList(db, supplierID, file)
		if err != nil {
			writeJSONError(w, "Price list import failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   "success",
			"message":  fmt.Sprintf("Imported %d prices (%d unknown SKUs skipped)", updated, skipped),
			"filePath": filePath,
			"updated":  updated,
			"skipped":  skipped,
		})
	}
}

// ImportPriceList applies a parsed price list to one supplier's parts in a
// single transaction. SKUs the supplier does not carry are counted, not
// failed.
func ImportPriceList(db *sqlx.DB, supplierID int64, src io.Reader) (updated, skipped int, err error) {
	rows, err := parsers.ParsePriceListCSV(src)
	if err != nil {
		return 0, 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		ok, err := database.UpdateSupplierPartPriceBySKU(tx, supplierID, row.SKU, row.UnitPrice.String(), row.Available)
		if err != nil {
			return 0, 0, err
		}
		if ok {
			updated++
		} else {
			skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit price import: %w", err)
	}
	return updated, skipped, nil
}
