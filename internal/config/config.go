package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Upload   UploadConfig
	Cache    CacheConfig
	Index    IndexConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type UploadConfig struct {
	Dir      string
	BaseURL  string
	MaxBytes int
}

type CacheConfig struct {
	DescriptorTTL time.Duration
	DraftTTL      time.Duration
}

type IndexConfig struct {
	TopicName   string // watermill topic carrying changed content ids
	LogFilePath string // isolated log for the indexing consumer
	PublishNats bool
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string  // OTLP HTTP collector, host:port
	SampleRatio float64 // fraction of root spans kept
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	baseURL := getEnv("APP_BASE_URL", "http://localhost:3000")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            baseURL,
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "./uploads"),
			BaseURL:  getEnv("UPLOAD_BASE_URL", baseURL+"/uploads"),
			MaxBytes: getEnvAsInt("UPLOAD_MAX_BYTES", 5<<20),
		},
		Cache: CacheConfig{
			DescriptorTTL: getEnvAsDuration("DESCRIPTOR_CACHE_TTL", 10*time.Minute),
			DraftTTL:      getEnvAsDuration("DRAFT_TTL", 24*time.Hour),
		},
		Index: IndexConfig{
			TopicName:   getEnv("INDEX_TOPIC_NAME", "INDEX_CONTENT"),
			LogFilePath: getEnv("INDEX_LOG_FILE_PATH", "logs/index.log"),
			PublishNats: getEnv("INDEX_PUBLISH_NATS", "true") == "true",
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
	}
}

// IsProduction reports whether GO_ENV selects production logging.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "12h").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
