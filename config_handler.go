package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"stocktree/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler returns the current runtime configuration with the
// secrets masked.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		cfg.JWTSecret = ""
		cfg.PortalPassword = ""
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler validates and persists a new configuration.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := validateFolderPath(newCfg.PriceListFolder); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Masked secrets come back empty from the UI; keep the stored values.
		current := config.GetConfig()
		if newCfg.JWTSecret == "" {
			newCfg.JWTSecret = current.JWTSecret
		}
		if newCfg.PortalPassword == "" {
			newCfg.PortalPassword = current.PortalPassword
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "Failed to save configuration", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Configuration saved"})
	}
}

func validateFolderPath(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("folder does not exist: " + path)
		}
		log.Printf("Error checking folder path: %v", err)
		return errors.New("failed to check folder path")
	}
	if !info.IsDir() {
		return errors.New("path is not a folder: " + path)
	}
	return nil
}
