package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config berisi semua pengaturan aplikasi dari environment (.env dibaca lebih dulu oleh godotenv).
type Config struct {
	AppPort string

	DBDriver string
	DBDSN    string
	DBHost   string
	DBPort   string
	DBUser   string
	DBPass   string
	DBName   string

	RedisHost   string
	RedisPort   string
	RedisPass   string
	RedisDB     int
	MapCacheTTL time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	BoundaryCheck    bool
	IndexRefreshCron string
	UploadDir        string
}

func Load() Config {
	driver := strings.ToLower(GetEnv("DB_DRIVER", "mysql"))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	return Config{
		AppPort: GetEnv("APP_PORT", "3000"),

		DBDriver: driver,
		DBDSN:    GetEnv("DB_DSN", ""),
		DBHost:   GetEnv("DB_HOST", "127.0.0.1"),
		DBPort:   GetEnv("DB_PORT", defaultPort),
		DBUser:   GetEnv("DB_USER", "root"),
		DBPass:   GetEnv("DB_PASS", ""),
		DBName:   GetEnv("DB_NAME", "sistem_desa"),

		RedisHost:   GetEnv("REDIS_HOST", ""),
		RedisPort:   GetEnv("REDIS_PORT", "6379"),
		RedisPass:   GetEnv("REDIS_PASS", ""),
		RedisDB:     GetEnvAsInt("REDIS_DB", 0),
		MapCacheTTL: time.Duration(GetEnvAsInt("MAP_CACHE_TTL", 300)) * time.Second,

		JWTSecret: GetEnv("JWT_SECRET", "rahasia_desa"),
		JWTTTL:    time.Duration(GetEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,

		BoundaryCheck:    GetEnvAsBool("BOUNDARY_CHECK", true),
		IndexRefreshCron: GetEnv("INDEX_REFRESH_CRON", "@every 10m"),
		UploadDir:        GetEnv("UPLOAD_DIR", "./uploads"),
	}
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsFloat(key string, fallback float64) float64 {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsBool menerima nilai yang dikenal strconv.ParseBool (true/false/1/0/...).
func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
