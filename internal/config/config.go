package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/moftahak/studio-service/internal/utils"
)

const AppName = "studio-service"

type Config struct {
	AppName          string
	AppPort          string
	AppUrl           string
	DataDir          string
	DBPath           string
	FlushQuietPeriod time.Duration
	LibraryCacheTTL  time.Duration
}

// LoadConfig reads the runtime environment. Only DATA_DIR has no safe
// default in production containers, but a local-fallback keeps the dev
// loop trivial.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:3000"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
		utils.Logger.Warnf("DATA_DIR not set, defaulting to %s", dataDir)
	}

	quiet := DefaultQuietPeriod
	if v := os.Getenv("FLUSH_QUIET_MS"); v != "" {
		if d, err := time.ParseDuration(v + "ms"); err == nil && d > 0 {
			quiet = d
		} else {
			utils.Logger.Warnf("Invalid FLUSH_QUIET_MS %q, using %s", v, quiet)
		}
	}

	return &Config{
		AppName:          AppName,
		AppPort:          port,
		AppUrl:           appURL,
		DataDir:          dataDir,
		DBPath:           filepath.Join(dataDir, "studies.db"),
		FlushQuietPeriod: quiet,
		LibraryCacheTTL:  10 * time.Minute,
	}
}

const DefaultQuietPeriod = 500 * time.Millisecond
