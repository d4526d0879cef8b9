package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	RedisAddr      string
	JWTSecret      string
	AccessTokenTTL time.Duration

	// Fixed two-tier delivery charges in BDT.
	DeliveryChargeInside  float64
	DeliveryChargeOutside float64

	// Rolling analytics window and event retention.
	CollectionPeriodDays int
	RetentionDays        int

	AllowedOrigins []string
	UploadRootDir  string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:              getEnvOrDefault("MONGO_URI", ""),
		DBName:                getEnvOrDefault("DB_NAME", "mazzstudio"),
		RedisAddr:             getEnvOrDefault("REDIS_ADDR", ""),
		JWTSecret:             getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:        getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),
		DeliveryChargeInside:  getFloatEnv("DELIVERY_CHARGE_INSIDE", 80),
		DeliveryChargeOutside: getFloatEnv("DELIVERY_CHARGE_OUTSIDE", 100),
		CollectionPeriodDays:  getIntEnv("COLLECTION_PERIOD_DAYS", 30),
		RetentionDays:         getIntEnv("ANALYTICS_RETENTION_DAYS", 60),
		AllowedOrigins:        getListEnv("ALLOWED_ORIGINS", []string{"*"}),
		UploadRootDir:         getEnvOrDefault("UPLOAD_ROOT_DIR", "/app/public"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
