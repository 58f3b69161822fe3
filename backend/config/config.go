package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// Generation gateway (server-side proxy in front of the AI provider)
	GeminiProxyURL string
	GeminiAPIKey   string

	// Feed ingestion
	CORSProxyURL   string
	DefaultFeedURL string

	// Checkout provider (external collaborator, verified server-side)
	CheckoutSecret string

	// Directory for course progress files
	ProgressDir string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "vetorre"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GeminiProxyURL: getEnv("GEMINI_PROXY_URL", "http://localhost:3000/api/gemini"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		CORSProxyURL:   getEnv("CORS_PROXY_URL", "https://api.allorigins.win/get"),
		DefaultFeedURL: getEnv("DEFAULT_FEED_URL", "https://feeds.feedburner.com/TechCrunch/"),
		CheckoutSecret: getEnv("CHECKOUT_SECRET", ""),
		ProgressDir:    getEnv("PROGRESS_DIR", "./data/progress"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
