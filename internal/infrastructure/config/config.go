package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"vetclinic/internal/domain/billing"

	"github.com/shopspring/decimal"
)

const (
	DriverDynamoDB = "dynamodb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port          string
	StorageDriver string

	TaxRate        decimal.Decimal
	InvoiceDueDays int
	ClinicLocation *time.Location

	Postgres   PostgresConfig
	SQLitePath string

	KafkaBrokers     []string
	KafkaTopicPrefix string

	OTLPEndpoint    string
	ServiceName     string
	TraceSampleRate float64

	MercadoPagoAccessToken     string
	MercadoPagoTestPayerEmail  string
	MercadoPagoTestPayerUserID string
	PaymentGatewayMock         bool
}

type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime time.Duration
}

func Load() Config {
	return Config{
		Port:           readString("PORT", "8080"),
		StorageDriver:  strings.ToLower(readString("STORAGE_DRIVER", DriverDynamoDB)),
		TaxRate:        readDecimal("TAX_RATE", billing.DefaultTaxRate),
		InvoiceDueDays: readInt("INVOICE_DUE_DAYS", 30),
		ClinicLocation: readLocation("CLINIC_TIMEZONE"),
		Postgres: PostgresConfig{
			Host:            readString("DB_HOST", "localhost"),
			Port:            readInt("DB_PORT", 5432),
			User:            readString("DB_USER", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            readString("DB_NAME", "vetclinic"),
			SSLMode:         readString("DB_SSLMODE", "disable"),
			TimeZone:        readString("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    readInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    readInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifeTime: time.Duration(readInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		},
		SQLitePath:       readString("SQLITE_PATH", "vetclinic.db"),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicPrefix: readString("KAFKA_TOPIC_PREFIX", "vetclinic"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:      readString("OTEL_SERVICE_NAME", "vetclinic-api"),
		TraceSampleRate:  readFloat("OTEL_SAMPLING_RATIO", 1),

		MercadoPagoAccessToken:     strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
		MercadoPagoTestPayerEmail:  strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")),
		MercadoPagoTestPayerUserID: strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID")),
		PaymentGatewayMock:         readBool("PAYMENT_GATEWAY_MOCK") || readBool("MERCADOPAGO_MOCK"),
	}
}

func readString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func readDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		log.Printf("[config] ignoring invalid %s=%q", key, raw)
		return fallback
	}
	return value
}

func readLocation(key string) *time.Location {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(raw)
	if err != nil {
		log.Printf("[config] unknown %s=%q, falling back to UTC", key, raw)
		return time.UTC
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
