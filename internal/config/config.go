package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// DefaultJWTSecret is only safe while operator login is disabled.
const DefaultJWTSecret = "dev-secret-change-in-production"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a non-default value when OPERATOR_PIN_HASH is set")

type Config struct {
	Port string

	// StoreDriver selects the catalog/history backend: file, sqlite, mysql, postgres.
	StoreDriver string
	ItemsFile   string
	TxnFile     string
	DatabaseURL string

	UPIPayeeID   string
	UPIPayeeName string
	UPICurrency  string
	QRSize       int

	JWTSecret       string
	OperatorPINHash string
	CORSOrigins     []string

	// ArchiveDriver selects where receipt QR images go: none, fs, s3.
	ArchiveDriver      string
	ArchiveDir         string
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	S3PathStyle        bool
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "5000"),

		StoreDriver: getEnv("STORE_DRIVER", "file"),
		ItemsFile:   getEnv("ITEMS_FILE", "data/items.xlsx"),
		TxnFile:     getEnv("TXN_FILE", "data/transactions.xlsx"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		UPIPayeeID:   getEnv("UPI_PAYEE_ID", "upadhyay.priyanka1-1@okaxis"),
		UPIPayeeName: getEnv("UPI_PAYEE_NAME", "Priyanka Upadhyay"),
		UPICurrency:  getEnv("UPI_CURRENCY", "INR"),
		QRSize:       getEnvInt("QR_SIZE", 256),

		JWTSecret:       getEnv("JWT_SECRET", DefaultJWTSecret),
		OperatorPINHash: getEnv("OPERATOR_PIN_HASH", ""),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:5000")),

		ArchiveDriver:      getEnv("ARCHIVE_DRIVER", "none"),
		ArchiveDir:         getEnv("ARCHIVE_DIR", "data/receipts"),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Region:           getEnv("S3_REGION", "ap-south-1"),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		S3PathStyle:        getEnvBool("S3_PATH_STYLE", false),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}
}

// AuthEnabled reports whether catalog edits require an operator login.
func (c *Config) AuthEnabled() bool {
	return c.OperatorPINHash != ""
}

// Validate rejects configurations that would run with forgeable operator tokens.
func (c *Config) Validate() error {
	if c.AuthEnabled() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return ErrInsecureJWTSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
