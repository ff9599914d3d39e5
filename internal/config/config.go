package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTSecret     string
	JWTExpiryDays int

	AdminKey   string
	BcryptCost int
	OTPTTL     time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	SMTPSecure   bool // implicit TLS (port 465 style) instead of STARTTLS

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users                string
	UserUniques          string
	PendingRegistrations string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "5000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:                getEnv("DYNAMO_TABLE_USERS", "users"),
			UserUniques:          getEnv("DYNAMO_TABLE_USER_UNIQUES", "user_uniques"),
			PendingRegistrations: getEnv("DYNAMO_TABLE_PENDING_REGISTRATIONS", "pending_registrations"),
		},

		JWTSecret:     getEnv("JWT_SECRET", "dev_jwt_secret"),
		JWTExpiryDays: getEnvInt("JWT_EXPIRY_DAYS", 7),

		AdminKey:   getEnv("ADMIN_KEY", ""),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),
		OTPTTL:     time.Duration(getEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute,

		SMTPHost:     getEnv("EMAIL_HOST", ""),
		SMTPPort:     getEnv("EMAIL_PORT", "587"),
		SMTPFrom:     getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),
		SMTPUsername: getEnv("EMAIL_USER", ""),
		SMTPPassword: getEnv("EMAIL_PASS", ""),
		SMTPSecure:   getEnv("EMAIL_SECURE", "") == "true" || getEnv("EMAIL_PORT", "") == "465",

		AllowedOrigins: strings.Split(getEnv("FRONTEND_URL", "*"), ","),
	}
}

// IsProduction reports whether the service runs with production hardening:
// the OTP is never echoed in responses and an unconfigured mailer is an error.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
