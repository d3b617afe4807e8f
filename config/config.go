package config

import (
	"os"
)

type Config struct {
	ServerAddr  string
	MongoURI    string
	MongoDB     string
	CafesDBPath string
	JWTSecret   string
	UploadDir   string
}

var Cfg *Config

func Load() {
	Cfg = &Config{
		ServerAddr:  ":" + getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "cafehopper"),
		CafesDBPath: getEnv("CAFES_DB_PATH", "./assets/cafes.db"),
		JWTSecret:   getEnv("JWT_SECRET", "cafehopper-secret-key-change-in-production"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
