// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	BackendAPI `yaml:"backend_api"`
	Payment    `yaml:"payment"`
	Cache      `yaml:"cache"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// BackendAPI структура для настройки клиента бэкенда resume-builder
type BackendAPI struct {
	BaseURL    string        `yaml:"base_url" env:"BACKEND_API_URL"`
	TimeoutAPI time.Duration `yaml:"timeout" env-default:"10s"`
}

// Payment структура с настройками платёжного провайдера
type Payment struct {
	PublicKey   string `yaml:"public_key" env:"PAYMENT_PUBLIC_KEY"`
	PriceID     string `yaml:"price_id" env:"PAYMENT_PRICE_ID"`
	CheckoutURL string `yaml:"checkout_url" env-default:"https://checkout.stripe.com/c/pay"`
}

// Cache структура с настройками кеша статусов подписки.
// FallbackTTL — укороченное время жизни записи, созданной после ошибки
// запроса, чтобы временный сбой не залипал на полный StatusTTL.
type Cache struct {
	StatusTTL   time.Duration `yaml:"status_ttl" env-default:"5m"`
	FallbackTTL time.Duration `yaml:"fallback_ttl" env-default:"30s"`
}

// MustLoad функция для загрузки конфига, возвращает конфиг, прочитанный
// из файла по пути CONFIG_PATH. Значения из .env и окружения имеют приоритет.
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"BackendAPI:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"Payment:\n"+
			"  PublicKey: %s\n"+
			"  PriceID: %s\n"+
			"  CheckoutURL: %s\n"+
			"Cache:\n"+
			"  StatusTTL: %s\n"+
			"  FallbackTTL: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.BaseURL,
		c.TimeoutAPI,
		c.PublicKey,
		c.PriceID,
		c.CheckoutURL,
		c.StatusTTL,
		c.FallbackTTL,
	)
}
