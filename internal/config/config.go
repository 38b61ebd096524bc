package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Значения по умолчанию
const (
	defaultEnvironment       = "development"
	defaultUsersFile         = "data/users.yaml"
	defaultPortalBaseURL     = "https://sibsutis.ru"
	defaultHTTPTimeout       = 15 * time.Second
	defaultTimezone          = "Asia/Novosibirsk"
	defaultKeepAliveInterval = 30 * time.Minute

	// Новосибирск
	defaultWeatherLat = 55.0344
	defaultWeatherLon = 82.9434
)

type Config struct {
	TelegramToken string
	Environment   string

	// DBDSN пустой - пользователи хранятся в YAML-файле UsersFile
	DBDSN     string
	UsersFile string

	PortalBaseURL  string
	PortalLogin    string
	PortalPassword string
	HTTPTimeout    time.Duration

	WeatherLat float64
	WeatherLon float64

	Timezone string
	Location *time.Location

	// KeepAliveInterval 0 отключает фоновую проверку сессии
	KeepAliveInterval time.Duration
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    envOr("ENV", defaultEnvironment),
		DBDSN:          os.Getenv("DB_DSN"),
		UsersFile:      envOr("USERS_FILE", defaultUsersFile),
		PortalBaseURL:  envOr("PORTAL_BASE_URL", defaultPortalBaseURL),
		PortalLogin:    os.Getenv("PORTAL_LOGIN"),
		PortalPassword: os.Getenv("PORTAL_PASSWORD"),
		Timezone:       envOr("TIMEZONE", defaultTimezone),
	}

	var err error
	if cfg.HTTPTimeout, err = durationEnv("HTTP_TIMEOUT", defaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.KeepAliveInterval, err = durationEnv("KEEPALIVE_INTERVAL", defaultKeepAliveInterval); err != nil {
		return nil, err
	}
	if cfg.WeatherLat, err = floatEnv("WEATHER_LAT", defaultWeatherLat); err != nil {
		return nil, err
	}
	if cfg.WeatherLon, err = floatEnv("WEATHER_LON", defaultWeatherLon); err != nil {
		return nil, err
	}

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// Validate проверяет поля, без которых бот не запустится
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	return nil
}

// UseDatabase пользователи хранятся в PostgreSQL
func (c *Config) UseDatabase() bool {
	return c.DBDSN != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
