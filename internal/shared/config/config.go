package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration, read once at process start.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	DatabaseURL string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	AIGatewayURL    string
	AIGatewayAPIKey string
	AIModel         string
	AnalysisInput   string

	MaxCurriculoBytes int64

	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

const defaultMaxCurriculoBytes = 5 << 20 // 5 MiB

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),

		AIGatewayURL:    getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		AIGatewayAPIKey: os.Getenv("AI_GATEWAY_API_KEY"),
		AIModel:         getEnv("AI_MODEL", "google/gemini-2.5-flash"),
		AnalysisInput:   normalizeAnalysisInput(getEnv("ANALYSIS_INPUT", "pdf")),

		MaxCurriculoBytes: defaultMaxCurriculoBytes,

		JWTSecret:          os.Getenv("JWT_SECRET"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}
}

// Validate reports missing credentials the process cannot run without.
// Checked at bootstrap, before any network call is made.
func (c Config) Validate() error {
	var missing []string
	if c.Env == "production" {
		if strings.TrimSpace(c.DatabaseURL) == "" {
			missing = append(missing, "DATABASE_URL")
		}
		if strings.TrimSpace(c.JWTSecret) == "" {
			missing = append(missing, "JWT_SECRET")
		}
		if strings.TrimSpace(c.AIGatewayAPIKey) == "" {
			missing = append(missing, "AI_GATEWAY_API_KEY")
		}
		if c.ObjectStoreType == "s3" && strings.TrimSpace(c.S3Bucket) == "" {
			missing = append(missing, "S3_BUCKET")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("configuration error: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
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

func normalizeAnalysisInput(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text":
		return "text"
	default:
		return "pdf"
	}
}
