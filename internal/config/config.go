package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type StoreDriver string

const (
	StoreDriverRest   StoreDriver = "rest"
	StoreDriverMongo  StoreDriver = "mongo"
	StoreDriverMemory StoreDriver = "memory"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Moscow"`
		Locale   string      `env:"APP_LOCALE" envDefault:"en"`
		LogLevel string      `env:"APP_LOG_LEVEL" envDefault:"INFO"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`

		CorsAllowOrigins []string `env:"HTTP_CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
		// 0 отключает ограничение
		RateLimitRPS   float64 `env:"HTTP_RATE_LIMIT_RPS" envDefault:"20"`
		RateLimitBurst int     `env:"HTTP_RATE_LIMIT_BURST" envDefault:"40"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"roster:roster"`
		BasicClients       []ConfigBasicClient
	}

	Store struct {
		Driver   StoreDriver   `env:"STORE_DRIVER" envDefault:"rest"`
		URL      string        `env:"STORE_URL"`
		Username string        `env:"STORE_USERNAME"`
		Password string        `env:"STORE_PASSWORD"`
		Timeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"30s"`
	}

	Mongo struct {
		URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
		Database string `env:"MONGO_DATABASE" envDefault:"roster"`
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"amq.topic"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"staff-roster-scheduler"`
		Binding  string `env:"RABBITMQ_BINDING" envDefault:"*.*.appointment.#"`
	}

	Cache struct {
		Enabled    bool `env:"CACHE_ENABLED" envDefault:"true"`
		BoardsSize int  `env:"CACHE_BOARDS_SIZE" envDefault:"256"`
	}

	Roster struct {
		ReassignPolicy string `env:"ROSTER_REASSIGN_POLICY" envDefault:"permissive"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение значений-перечислений к нижнему регистру
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Store.Driver = StoreDriver(strings.ToLower(string(cfg.Store.Driver)))
	cfg.Roster.ReassignPolicy = strings.ToLower(cfg.Roster.ReassignPolicy)

	cfg.Auth.BasicClients = parseBasicClients(cfg.Auth.BasicClientsString)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Формат: "user1:pass1,user2:pass2", пары без пароля пропускаются
func parseBasicClients(value string) []ConfigBasicClient {
	clients := []ConfigBasicClient{}
	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			clients = append(clients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}
	return clients
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverRest:
		if c.Store.URL == "" {
			return fmt.Errorf("STORE_URL is required for store driver %q", c.Store.Driver)
		}
	case StoreDriverMongo, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.HTTP.RateLimitRPS < 0 || (c.HTTP.RateLimitRPS > 0 && c.HTTP.RateLimitBurst < 1) {
		return fmt.Errorf("invalid HTTP rate limit %v/%d", c.HTTP.RateLimitRPS, c.HTTP.RateLimitBurst)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("RABBITMQ_URL is required when RABBITMQ_ENABLED is set")
	}

	if c.Cache.Enabled && c.Cache.BoardsSize <= 0 {
		return fmt.Errorf("CACHE_BOARDS_SIZE must be positive, got %d", c.Cache.BoardsSize)
	}

	switch c.Roster.ReassignPolicy {
	case "permissive", "strict":
	default:
		return fmt.Errorf("unknown reassign policy %q", c.Roster.ReassignPolicy)
	}

	return nil
}

func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
