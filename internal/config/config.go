package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Clients  ClientsConfig
	Ticket   TicketConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	Path string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ClientsConfig points the service at the remote user, order and product
// services. When the base URLs are empty the composition root falls back
// to the local repositories instead.
type ClientsConfig struct {
	UserServiceURL    string
	OrderServiceURL   string
	ProductServiceURL string
	TokenSecret       string
	TokenTTL          time.Duration
}

type TicketConfig struct {
	QRSize  int
	LockTTL time.Duration
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "cart_ticketing.db"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Clients: ClientsConfig{
			UserServiceURL:    getEnv("USER_SERVICE_URL", ""),
			OrderServiceURL:   getEnv("ORDER_SERVICE_URL", ""),
			ProductServiceURL: getEnv("PRODUCT_SERVICE_URL", ""),
			TokenSecret:       getEnv("TECHNICAL_TOKEN_SECRET", "change-me-in-production"),
			TokenTTL:          getEnvAsDuration("TECHNICAL_TOKEN_TTL", 5*time.Minute),
		},
		Ticket: TicketConfig{
			QRSize:  getEnvAsInt("TICKET_QR_SIZE", 256),
			LockTTL: getEnvAsDuration("TICKET_LOCK_TTL", 30*time.Second),
		},
	}

	return config, nil
}

// RemoteCollaborators reports whether all three collaborator services are
// configured. Mixing remote and local sources is not supported.
func (c *Config) RemoteCollaborators() bool {
	return c.Clients.UserServiceURL != "" &&
		c.Clients.OrderServiceURL != "" &&
		c.Clients.ProductServiceURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
