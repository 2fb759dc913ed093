package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	DatabaseURL       string
	RedisAddr         string
	ObjectStoreType   string
	LocalStoreDir     string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	SSEKMSKeyID       string
	OpenAIAPIKey      string
	AnalysisModel     string
	ConsultModel      string
	AnalysisTextLimit int
	ConsultTextLimit  int
	ReportRenderer    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               env,
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:       dbURL,
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		ObjectStoreType:   normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:     getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:         getEnv("AWS_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:       getEnv("SSE_KMS_KEY_ID", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		AnalysisModel:     getEnv("ANALYSIS_MODEL", "gpt-3.5-turbo"),
		ConsultModel:      getEnv("CONSULT_MODEL", "gpt-4o-mini"),
		AnalysisTextLimit: getEnvInt("ANALYSIS_TEXT_LIMIT", 3000),
		ConsultTextLimit:  getEnvInt("CONSULT_TEXT_LIMIT", 16000),
		ReportRenderer:    normalizeRenderer(getEnv("REPORT_RENDERER", "html")),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeRenderer(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "chrome":
		return "chrome"
	default:
		return "html"
	}
}
