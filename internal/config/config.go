package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Token and OTP lifetimes are fixed product decisions, not tunables.
const (
	TokenTTL = 48 * time.Hour
	OtpTTL   = 10 * time.Minute
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
	S3BucketName   string

	// JWTSecret is the base64-encoded HMAC signing secret. Decoded once at
	// startup; the process refuses to serve if it is missing or malformed.
	JWTSecret string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPFromName string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	// OtpChannel selects the reset-code delivery channel: "email" | "sms".
	OtpChannel string
	// OtpSweepInterval is how often expired codes are swept. Housekeeping
	// only — lookups already filter by expiry.
	OtpSweepInterval time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Meetings    string
	Users       string
	Otps        string
	Attachments string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Meetings:    getEnv("DYNAMO_TABLE_MEETINGS", "meetings"),
			Users:       getEnv("DYNAMO_TABLE_USERS", "users"),
			Otps:        getEnv("DYNAMO_TABLE_OTPS", "otps"),
			Attachments: getEnv("DYNAMO_TABLE_ATTACHMENTS", "meeting_attachments"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "crm-attachments"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Incial Security"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		OtpChannel:       getEnv("OTP_CHANNEL", "email"),
		OtpSweepInterval: time.Duration(getEnvInt("OTP_SWEEP_INTERVAL_MINUTES", 60)) * time.Minute,

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
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
