package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first if present; real environment
// variables win over it.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddrHTTP = getEnv("ADDRESS", config.EndpointAddrHTTP)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.RedisAddr = getEnv("REDIS_ADDR", config.RedisAddr)
	config.S3RootUser = getEnv("S3_ROOT_USER", config.S3RootUser)
	config.S3RootPassword = getEnv("S3_ROOT_PASSWORD", config.S3RootPassword)
	config.S3Bucket = getEnv("S3_BUCKET", config.S3Bucket)
	config.S3Region = getEnv("S3_REGION", config.S3Region)
	config.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", config.S3BaseEndpoint)

	if v, ok := os.LookupEnv("SESSION_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionTTL = d
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
