package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	ListenAddr      string `json:"listenAddr"`
	DatabasePath    string `json:"databasePath"`
	JWTSecret       string `json:"jwtSecret"`
	TokenTTLHours   int    `json:"tokenTTLHours"`
	DefaultCurrency string `json:"defaultCurrency"`
	PriceListFolder string `json:"priceListFolder"`
	PortalURL       string `json:"portalURL"`
	PortalUserID    string `json:"portalUserID"`
	PortalPassword  string `json:"portalPassword"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./stocktree_config.json"

func applyDefaults(c *Config) {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "./stocktree.db"
	}
	if c.TokenTTLHours == 0 {
		c.TokenTTLHours = 24
	}
	if c.DefaultCurrency == "" {
		c.DefaultCurrency = "USD"
	}
	if c.PriceListFolder == "" {
		c.PriceListFolder = "./pricelists"
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&tempCfg)
	cfg = tempCfg

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
