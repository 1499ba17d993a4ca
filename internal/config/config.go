package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	AppName    = "Grammar Guide"
	AppVersion = "1.0.0"
)

// UserAgent identifies the client to the Content API.
var UserAgent = "grammar-guide/" + AppVersion

type Config struct {
	Addr            string
	DataDir         string
	DBDriver        string
	DBDSN           string
	StaticDir       string
	LogLevel        string
	LogFormat       string
	NodeID          int64
	CORSOrigins     []string
	WriteRate       float64
	ProbeInterval   time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	dataDir := envOr("GRAMMAR_DATA_DIR", "./data")
	driver := strings.ToLower(envOr("GRAMMAR_DB_DRIVER", "sqlite"))

	dsn := os.Getenv("GRAMMAR_DB_DSN")
	if dsn == "" && driver == "sqlite" {
		dsn = filepath.Join(dataDir, "grammar.db")
	}
	if driver == "sqlite" {
		dsn = filepath.Clean(dsn)
	}

	staticDir := os.Getenv("GRAMMAR_STATIC_DIR")
	if staticDir == "" {
		staticDir = detectStaticDir()
	}

	return Config{
		Addr:            envOr("GRAMMAR_ADDR", ":5000"),
		DataDir:         filepath.Clean(dataDir),
		DBDriver:        driver,
		DBDSN:           dsn,
		StaticDir:       staticDir,
		LogLevel:        envOr("GRAMMAR_LOG_LEVEL", "info"),
		LogFormat:       envOr("GRAMMAR_LOG_FORMAT", "text"),
		NodeID:          envInt("GRAMMAR_NODE_ID", 1),
		CORSOrigins:     splitList(envOr("GRAMMAR_CORS_ORIGINS", "*")),
		WriteRate:       envFloat("GRAMMAR_WRITE_RATE", 5),
		ProbeInterval:   envDuration("GRAMMAR_PROBE_INTERVAL", time.Minute),
		ShutdownTimeout: envDuration("GRAMMAR_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// detectStaticDir looks for a built frontend next to the binary. An empty
// result disables static serving.
func detectStaticDir() string {
	candidates := []string{
		"./frontend/dist",
		"../frontend/dist",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return filepath.Clean(candidate)
		}
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int64) int64 {
	n, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
