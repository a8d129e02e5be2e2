package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config stores the application configuration. Everything comes from
// environment variables (optionally via a .env file) with simple defaults.
type Config struct {
	// HTTP server
	BackendHost string
	BackendPort string
	// BackendURL overrides the host/port-derived public URL. Set it in
	// production where the service sits behind a proxy.
	BackendURL     string
	AllowedOrigins []string
	ImportPassword string

	// MongoDB (song metadata)
	MongoURI        string
	MongoDBName     string
	MongoCollection string

	// MinIO (audio and lyric blobs)
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool

	// Robot comment generation (OpenAI-compatible chat completions API)
	CommentAPIBaseURL string
	CommentAPIKey     string
	CommentModel      string

	// Logging
	LogLevel string
	LogFile  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	return &Config{
		BackendHost:    getEnv("BACKEND_HOST", "0.0.0.0"),
		BackendPort:    getEnv("PORT", getEnv("BACKEND_PORT", "8000")),
		BackendURL:     os.Getenv("BACKEND_URL"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		ImportPassword: os.Getenv("IMPORT_PASSWORD"), // no hardcoded default for secrets

		MongoURI:        getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDBName:     getEnv("MONGODB_DB", "tunify"),
		MongoCollection: getEnv("MONGODB_COLLECTION", "song_playlist_metadata"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "tunify"),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		CommentAPIBaseURL: getEnv("COMMENT_API_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		CommentAPIKey:     os.Getenv("GEMINI_API_KEY"),
		CommentModel:      getEnv("COMMENT_MODEL", "gemini-2.0-flash"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// splitOrigins parses a comma-separated origin list, dropping empty entries.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.BackendHost, c.BackendPort)
}

// PublicBaseURL returns the externally reachable base URL of this API.
// Song listings embed it so that audio links route back through the
// redirect endpoint instead of exposing raw object-store URLs.
func (c *Config) PublicBaseURL() string {
	if c.BackendURL != "" {
		return strings.TrimRight(c.BackendURL, "/")
	}
	host := c.BackendHost
	if host == "0.0.0.0" || host == "" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%s", host, c.BackendPort)
}
