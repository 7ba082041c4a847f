package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	MongoURI         string
	MongoDB          string // Database name; required alongside MONGODB_URI
	RedisURI         string // Optional; rate limiting falls back to in-memory when empty
	Port             string
	AllowedOrigins   []string // CORS for the HTTP API; default "*"
	WSAllowedOrigins []string // Origin allowlist for WebSocket upgrades
	Environment      string   // ENV: production, development, etc.
	ExposeClientID   bool     // Include client_id in GET /api/feedback responses
}

// Load reads configuration from the environment. MONGODB_URI and MONGODB_DB
// are required; missing either is fatal before any listener starts.
func Load() *Config {
	mongoURI := getEnv("MONGODB_URI", getEnv("MONGO_URI", ""))
	if mongoURI == "" {
		log.Fatal("MONGODB_URI is required")
	}
	mongoDB := getEnv("MONGODB_DB", "")
	if mongoDB == "" {
		log.Fatal("MONGODB_DB is required")
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	wsOrigins := parseOrigins(getEnv("WS_ALLOWED_ORIGINS", ""))
	if len(wsOrigins) == 0 {
		wsOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	return &Config{
		MongoURI:         mongoURI,
		MongoDB:          mongoDB,
		RedisURI:         getEnv("REDIS_URI", ""),
		Port:             getEnv("PORT", "4000"),
		AllowedOrigins:   allowedOrigins,
		WSAllowedOrigins: wsOrigins,
		Environment:      strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		ExposeClientID:   parseBool(getEnv("EXPOSE_CLIENT_ID", "false")),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
