package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMustLoad_ValidConfig(t *testing.T) {
	// Создаем временный конфиг файл
	configContent := `
env: test
http_server:
  addresshttp: "localhost:8081"
  timeouthttp: 4s
  idle_timeout: 30s
backend_api:
  base_url: "https://api.resume-builder.test"
  timeout: 7s
payment:
  public_key: "pk_test_123"
  price_id: "price_test_123"
cache:
  status_ttl: 5m
  fallback_ttl: 30s
`
	path := writeConfig(t, configContent)
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad()

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "localhost:8081", cfg.AddressHTTP)
	assert.Equal(t, 4*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, "https://api.resume-builder.test", cfg.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.TimeoutAPI)
	assert.Equal(t, "pk_test_123", cfg.PublicKey)
	assert.Equal(t, "price_test_123", cfg.PriceID)
	assert.Equal(t, 5*time.Minute, cfg.StatusTTL)
	assert.Equal(t, 30*time.Second, cfg.FallbackTTL)
}

func TestMustLoad_Defaults(t *testing.T) {
	configContent := `
env: test
backend_api:
  base_url: "https://api.resume-builder.test"
payment:
  public_key: "pk_test_123"
  price_id: "price_test_123"
`
	path := writeConfig(t, configContent)
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad()

	// Значения по умолчанию из тегов env-default
	assert.Equal(t, "localhost:8080", cfg.AddressHTTP)
	assert.Equal(t, 5*time.Minute, cfg.StatusTTL)
	assert.Equal(t, 30*time.Second, cfg.FallbackTTL)
	assert.Equal(t, "https://checkout.stripe.com/c/pay", cfg.CheckoutURL)
}

func TestConfig_String(t *testing.T) {
	configContent := `
env: test
backend_api:
  base_url: "https://api.resume-builder.test"
payment:
  public_key: "pk_test_123"
  price_id: "price_test_123"
`
	path := writeConfig(t, configContent)
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad()

	str := cfg.String()
	assert.Contains(t, str, "Env: test")
	assert.Contains(t, str, "BaseURL: https://api.resume-builder.test")
	assert.Contains(t, str, "PriceID: price_test_123")
}
