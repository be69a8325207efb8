package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	StoreDriver    string
	StoreDSN       string
	CatalogURL     string
	CatalogTimeout time.Duration
	LogFile        string
}

// Load reads the environment, after merging an optional .env file that never
// overrides variables already set.
func Load() Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	driver := os.Getenv("STORE_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	dsn := os.Getenv("STORE_DSN")
	if dsn == "" {
		switch driver {
		case "pebble":
			dsn = "./shopfront-data" // pebble wants a directory
		default:
			dsn = "shopfront.db"
		}
	}
	catalog := os.Getenv("CATALOG_URL")
	if catalog == "" {
		catalog = "https://fakestoreapi.com"
	}
	timeout := 10 * time.Second
	if v := os.Getenv("CATALOG_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		} else {
			log.Printf("[warn] bad CATALOG_TIMEOUT %q, using %s", v, timeout)
		}
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./shopfront.log"
	}

	cfg := Config{
		Port:           port,
		StoreDriver:    driver,
		StoreDSN:       dsn,
		CatalogURL:     catalog,
		CatalogTimeout: timeout,
		LogFile:        logFile,
	}
	log.Printf("[config] PORT=%s STORE_DRIVER=%s STORE_DSN=%s CATALOG_URL=%s CATALOG_TIMEOUT=%s LOG_FILE=%s",
		cfg.Port, cfg.StoreDriver, cfg.StoreDSN, cfg.CatalogURL, cfg.CatalogTimeout, cfg.LogFile)
	return cfg
}
