package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultPageSize is the number of courses revealed per "load more" step
	DefaultPageSize = 6
	// DefaultSearchDebounceMS is the quiet period before a search is applied
	DefaultSearchDebounceMS = 300
)

type Config struct {
	ServerPort  string
	Environment string
	AppURL      string
	// Course catalog
	CatalogPath    string // YAML or XLSX; empty uses the embedded catalog
	PageSize       int
	SearchDebounce time.Duration
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	ContactInbox  string
	// Other
	AllowedOrigins []string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
	// Cloudflare R2 Storage (catalog source)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	pageSize := getEnvInt("PAGE_SIZE", DefaultPageSize)
	if pageSize <= 0 {
		log.Printf("[WARNING] PAGE_SIZE must be positive, using %d", DefaultPageSize)
		pageSize = DefaultPageSize
	}

	debounceMS := getEnvInt("SEARCH_DEBOUNCE_MS", DefaultSearchDebounceMS)
	if debounceMS < 0 {
		debounceMS = DefaultSearchDebounceMS
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		AppURL:             strings.TrimSuffix(getEnv("APP_URL", "http://localhost:8080"), "/"),
		CatalogPath:        getEnv("CATALOG_PATH", ""),
		PageSize:           pageSize,
		SearchDebounce:     time.Duration(debounceMS) * time.Millisecond,
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@learned.example.org"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "LearnEd"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		ContactInbox:       getEnv("CONTACT_INBOX", "info@learned.example.org"),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TurnstileSiteKey:   getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey: getEnv("TURNSTILE_SECRET_KEY", ""),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
	}
}

// R2Configured reports whether every R2 credential is present
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("[WARNING] Invalid integer for %s (%q), using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
