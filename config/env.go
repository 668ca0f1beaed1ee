package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config là cấu hình của ứng dụng, đọc từ biến môi trường
type Config struct {
	Port        string
	PostgresURI string
	MQTTURL     string
	CORSOrigins string
}

// LoadENV nạp biến môi trường từ file .env nếu có.
// Biến đã có trong môi trường không bị ghi đè.
func LoadENV(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// FromEnv đọc Config từ môi trường, dùng giá trị mặc định khi thiếu
func FromEnv() Config {
	return Config{
		Port:        getenv("PORT", "3000"),
		PostgresURI: strings.TrimSpace(os.Getenv("POSTGRESQL_URI")),
		MQTTURL:     strings.TrimSpace(os.Getenv("MQTT_URL")),
		CORSOrigins: getenv("CORS_ORIGINS", "*"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
