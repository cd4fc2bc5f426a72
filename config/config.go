package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zapkash/vendor-console/platform"
)

var (
	// DB is the console's gorm handle
	DB *gorm.DB
	// Platform is the shared client for the cashback platform API
	Platform *platform.Client
	// App is the loaded configuration
	App *Config
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	PlatformBaseURL string
	PlatformAPIKey  string

	// QRUnitRate is the per-unit QR generation fee before tax
	QRUnitRate decimal.Decimal
	// ExportDir is where chunked export parts are written
	ExportDir string
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// LoadConfig loads configuration from environment variables. A missing
// .env file is fine outside development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	rate, err := decimal.NewFromString(getEnv("QR_UNIT_RATE", "2"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "vendor_console"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		PlatformBaseURL: getEnv("PLATFORM_BASE_URL", "https://api.zapkash.io"),
		PlatformAPIKey:  os.Getenv("PLATFORM_API_KEY"),
		QRUnitRate:      rate,
		ExportDir:       getEnv("EXPORT_DIR", "exports"),
	}

	App = config
	return config, nil
}

// InitPlatform initializes the shared platform API client
func InitPlatform() {
	if App == nil {
		if _, err := LoadConfig(); err != nil {
			panic("Failed to load config: " + err.Error())
		}
	}
	Platform = platform.NewClient(App.PlatformBaseURL, App.PlatformAPIKey)
}
