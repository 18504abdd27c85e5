package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config del proceso. Todo viene de env (opcionalmente desde un .env).
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DatabaseDSN string `env:"DB_DSN"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"pet-marketplace"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Verificador remoto (si no hay JWT_SECRET).
	IdentityBaseURL string `env:"IDENTITY_BASE_URL"`
	IdentityAPIKey  string `env:"IDENTITY_API_KEY"`

	// Emails que reciben el rol admin al registrarse.
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"pet-marketplace"`

	// 0 desactiva el rate limit.
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"40"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
}

// Load carga los .env indicados (si existen) y parsea Config.
// Las variables ya presentes en el entorno ganan sobre el archivo.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if strings.TrimSpace(f) == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr devuelve ":<port>".
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

// DevAuth indica que no hay verificador configurado (modo X-Debug-User-ID).
func (c Config) DevAuth() bool {
	return strings.TrimSpace(c.JWTSecret) == "" && strings.TrimSpace(c.IdentityBaseURL) == ""
}
