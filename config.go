package main

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ScriptURL string
	Addr      string
	DBPath    string
	Timeout   time.Duration
}

// LoadConfig reads the environment, after loading a .env file when one is
// present. An empty ScriptURL means local-only mode.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		ScriptURL: os.Getenv("TIMEPUNCH_SCRIPT_URL"),
		Addr:      getEnv("TIMEPUNCH_ADDR", ":8080"),
		DBPath:    getEnv("TIMEPUNCH_DB_PATH", defaultDBPath()),
		Timeout:   time.Duration(getEnvInt("TIMEPUNCH_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func defaultDBPath() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "timepunch", "records.db")
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
