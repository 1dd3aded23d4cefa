package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultTeamOrder is the display order of teams on the standup board
var DefaultTeamOrder = []string{"RCM", "Core", "AI", "Design", "Product"}

// Config holds the runtime settings read from the environment
type Config struct {
	Port            string
	DatabaseURL     string
	DataPath        string
	JWTSecret       string
	APIMasterSecret string
	AdminUsername   string
	AdminPassword   string
	LogLevel        string
	RosterFile      string
	TeamOrder       []string
	GinMode         string
}

// LoadEnv loads the first .env file found in the working directory or its parents.
// A missing file is not an error.
func LoadEnv() {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}
}

// Load reads the configuration from the environment, applying defaults
func Load() Config {
	cfg := Config{
		Port:            getenv("PORT", "8000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DataPath:        getenv("DATA_PATH", "standup.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		APIMasterSecret: os.Getenv("API_MASTER_SECRET"),
		AdminUsername:   getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getenv("ADMIN_PASSWORD", "admin123"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		RosterFile:      os.Getenv("ROSTER_FILE"),
		TeamOrder:       DefaultTeamOrder,
		GinMode:         os.Getenv("GIN_MODE"),
	}

	if order := os.Getenv("TEAM_ORDER"); order != "" {
		cfg.TeamOrder = splitList(order)
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
