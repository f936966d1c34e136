package config

import (
	"errors"
	"os"
)

const (
	defaultInitiateURL = "https://www.paynow.co.zw/interface/initiatetransaction"
	defaultRemoteURL   = "https://www.paynow.co.zw/interface/remotetransaction"
)

// Config holds everything the gateway reads from the environment. It is
// built once at startup and passed into the components that need it, so
// tests can fabricate their own instances.
type Config struct {
	IntegrationID  string
	IntegrationKey string
	MerchantEmail  string
	ReturnURL      string
	ResultURL      string
	BrandDomain    string
	Port           string
	CORSOrigin     string
	InitiateURL    string
	RemoteURL      string
	ServiceName    string
}

// Load reads the configuration from the environment. The integration id and
// key have no sensible defaults and their absence is a startup error.
func Load() (*Config, error) {
	cfg := &Config{
		IntegrationID:  os.Getenv("PAYNOW_INTEGRATION_ID"),
		IntegrationKey: os.Getenv("PAYNOW_INTEGRATION_KEY"),
		MerchantEmail:  os.Getenv("MERCHANT_EMAIL"),
		ReturnURL:      os.Getenv("RETURN_URL"),
		ResultURL:      os.Getenv("RESULT_URL"),
		BrandDomain:    readEnv("BRAND_DOMAIN", "paynow.co.zw"),
		Port:           readEnv("PORT", "8080"),
		CORSOrigin:     readEnv("CORS_ORIGIN", "*"),
		InitiateURL:    readEnv("PAYNOW_INITIATE_URL", defaultInitiateURL),
		RemoteURL:      readEnv("PAYNOW_REMOTE_URL", defaultRemoteURL),
		ServiceName:    readEnv("OTEL_SERVICE_NAME", "paynow-gateway"),
	}

	if cfg.IntegrationID == "" {
		return nil, errors.New("PAYNOW_INTEGRATION_ID must be set")
	}
	if cfg.IntegrationKey == "" {
		return nil, errors.New("PAYNOW_INTEGRATION_KEY must be set")
	}
	return cfg, nil
}

func readEnv(name string, defaultValue string) string {
	if value, exists := os.LookupEnv(name); exists {
		return value
	}
	return defaultValue
}
