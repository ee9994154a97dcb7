package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DATABASE_URL   string
	HTTP_ADDR      string
	LOG_LEVEL      string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	ES_INDEX       string
	JWT_SECRET     string
	WEBHOOK_SECRET string
	IDP_URL        string
	IDP_API_KEY    string
	KAFKA_ADDRESS  string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DATABASE_URL:   os.Getenv("DATABASE_URL"),
		HTTP_ADDR:      getenvDefault("HTTP_ADDR", ":8080"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		ES_INDEX:       getenvDefault("ES_INDEX", "products"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		WEBHOOK_SECRET: os.Getenv("WEBHOOK_SECRET"),
		IDP_URL:        os.Getenv("IDP_URL"),
		IDP_API_KEY:    os.Getenv("IDP_API_KEY"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
	}

	return config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
