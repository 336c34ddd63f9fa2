// Package config loads application settings from the environment.
// A .env file is loaded first when present, then cleanenv populates the
// struct and enforces required values.
package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string `env:"DATABASE_URL" env-required:"true"`
	HTTPAddr      string `env:"HTTP_ADDR" env-default:":8080"`
	JWTSecret     string `env:"JWT_SECRET" env-required:"true"`
	JWTTTLSeconds int    `env:"JWT_TTL_SECONDS" env-default:"3600"`
	UploadDir     string `env:"UPLOAD_DIR" env-default:"./uploads"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:8080"`

	// AllowRoleElevation controls whether a caller may request the admin
	// role at registration. Off by default: open signup must not mint
	// admins.
	AllowRoleElevation bool `env:"ALLOW_ROLE_ELEVATION" env-default:"false"`
}

func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLSeconds) * time.Second
}

// MustLoad returns a valid config or exits. Crashing at boot beats running
// with a missing DSN or secret.
func MustLoad() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
