package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "TAX_RATE", "INVOICE_DUE_DAYS", "CLINIC_TIMEZONE", "KAFKA_BROKERS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, DriverDynamoDB, cfg.StorageDriver)
	require.Equal(t, "0.13", cfg.TaxRate.String())
	require.Equal(t, 30, cfg.InvoiceDueDays)
	require.Equal(t, time.UTC, cfg.ClinicLocation)
	require.Empty(t, cfg.KafkaBrokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("TAX_RATE", "0.15")
	t.Setenv("INVOICE_DUE_DAYS", "15")
	t.Setenv("CLINIC_TIMEZONE", "America/El_Salvador")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")

	cfg := Load()
	require.Equal(t, DriverPostgres, cfg.StorageDriver)
	require.Equal(t, "0.15", cfg.TaxRate.String())
	require.Equal(t, 15, cfg.InvoiceDueDays)
	require.Equal(t, "America/El_Salvador", cfg.ClinicLocation.String())
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("TAX_RATE", "-0.1")
	t.Setenv("INVOICE_DUE_DAYS", "soon")
	t.Setenv("CLINIC_TIMEZONE", "Mars/Olympus")

	cfg := Load()
	require.Equal(t, "0.13", cfg.TaxRate.String())
	require.Equal(t, 30, cfg.InvoiceDueDays)
	require.Equal(t, time.UTC, cfg.ClinicLocation)
}

func TestLoadPaymentGateway(t *testing.T) {
	t.Setenv("MERCADOPAGO_ACCESS_TOKEN", "TEST-123")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "on")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.25")
	t.Setenv("MERCADOPAGO_TEST_PAYER_EMAIL", " sandbox@test.com ")
	t.Setenv("MERCADOPAGO_TEST_PAYER_USER_ID", "123")

	cfg := Load()
	require.Equal(t, "TEST-123", cfg.MercadoPagoAccessToken)
	require.Equal(t, "sandbox@test.com", cfg.MercadoPagoTestPayerEmail)
	require.Equal(t, "123", cfg.MercadoPagoTestPayerUserID)
	require.True(t, cfg.PaymentGatewayMock)
	require.Equal(t, 0.25, cfg.TraceSampleRate)
}

func TestLoadZeroTaxRate(t *testing.T) {
	t.Setenv("TAX_RATE", "0")

	cfg := Load()
	require.True(t, cfg.TaxRate.IsZero(), "expected a zero rate, got %s", cfg.TaxRate)
}
