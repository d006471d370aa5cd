package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

// Env holds runtime configuration read from environment variables.
type Env struct {
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`
	GinMode string `envconfig:"GIN_MODE" default:""`

	DBDSN string `envconfig:"DB_DSN" default:"root:@tcp(127.0.0.1:3306)/truck_ledger?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"`

	JWTSecret    string `envconfig:"JWT_SECRET" default:"super-secret-key-change-me"`
	AuthDisabled bool   `envconfig:"AUTH_DISABLED" default:"false"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`
}

// LoadEnv reads configuration once at startup.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, err
	}
	if env.DBDSN == "" {
		return Env{}, errors.New("DB_DSN kosong")
	}
	return env, nil
}
