package paymentsetu

import (
	"strings"

	"github.com/cartsetu/CartSetu/app/models"
)

// Config is the gateway configuration for one request. It is loaded from the
// settings store at request start and passed explicitly, never read from
// ambient state inside the core logic.
type Config struct {
	Enabled     bool
	APIKey      string
	OrderPrefix string
}

// SettingSource abstracts the settings store. A missing key is reported as
// an empty value, not an error.
type SettingSource interface {
	GetValue(key string) (string, error)
}

// LoadConfig reads the gateway configuration. Only storage failures return
// an error; absent settings produce a disabled/unconfigured Config that the
// callers fail closed on.
func LoadConfig(src SettingSource) (Config, error) {
	var cfg Config

	enabled, err := src.GetValue(models.SettingKeyGatewayEnabled)
	if err != nil {
		return Config{}, err
	}
	apiKey, err := src.GetValue(models.SettingKeyAPIKey)
	if err != nil {
		return Config{}, err
	}
	prefix, err := src.GetValue(models.SettingKeyOrderPrefix)
	if err != nil {
		return Config{}, err
	}

	cfg.Enabled = parseBoolSetting(enabled)
	cfg.APIKey = strings.TrimSpace(apiKey)
	cfg.OrderPrefix = strings.TrimSpace(prefix)
	return cfg, nil
}

func parseBoolSetting(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
