package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreBadger   = "badger"
	StorePostgres = "postgres"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	BadgerDir   string `env:"BADGER_DIR" envDefault:"./data"`
	DatabaseURL string `env:"DATABASE_URL"`

	RedisURL    string `env:"REDIS_URL"`
	RabbitMQURL string `env:"RABBITMQ_URL"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"no-reply@greencrm.app"`

	GreenAPIDefaultHost string `env:"GREENAPI_DEFAULT_HOST" envDefault:"api.green-api.com"`
	GreenAPICountryCode string `env:"GREENAPI_COUNTRY_CODE" envDefault:"91"`

	LandingRateLimit int      `env:"LANDING_RATE_LIMIT" envDefault:"10"`
	CORSOrigins      []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load lê o .env (se existir) e depois as variáveis de ambiente.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Arquivo .env não encontrado, usando variáveis do sistema")
	}
	return Parse()
}

func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreBadger:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL é obrigatório com STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("STORE_DRIVER inválido: %q", c.StoreDriver)
	}
	if c.LandingRateLimit <= 0 {
		return fmt.Errorf("LANDING_RATE_LIMIT deve ser positivo")
	}
	return nil
}

func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}
