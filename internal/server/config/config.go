// Package config handles configuration for the identity service. All
// settings come from the environment and are read once at startup; the
// resulting Config is treated as immutable for the process lifetime.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the talenthub server.
//
// Fields:
//   - ServerAddr: bind address for the HTTP endpoint.
//   - JWTSecret: HMAC secret for signing session tokens (HS256). Required;
//     there is deliberately no default.
//   - AWSRegion: region of the durable user directory backend. Required.
//   - AWSAccessKeyID / AWSSecretAccessKey: static credentials for the
//     backend. When empty the SDK's default credential chain is used.
//   - UsersTable: DynamoDB table holding user records.
//   - DDBBaseEndpoint: endpoint override for local stacks.
//   - CORSAllowedOrigin: the single origin allowed to call the API
//     cross-origin. Required.
//   - DurableTimeout: per-call deadline for the durable directory tier.
type Config struct {
	ServerAddr         string        `env:"SERVER_ADDR" envDefault:":8080"`
	JWTSecret          string        `env:"JWT_SECRET,required,notEmpty"`
	AWSRegion          string        `env:"AWS_REGION,required,notEmpty"`
	AWSAccessKeyID     string        `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY"`
	UsersTable         string        `env:"DDB_TABLE" envDefault:"users"`
	DDBBaseEndpoint    string        `env:"DDB_BASE_ENDPOINT"`
	CORSAllowedOrigin  string        `env:"CORS_ALLOWED_ORIGIN,required,notEmpty"`
	DurableTimeout     time.Duration `env:"DURABLE_TIMEOUT" envDefault:"2s"`
}

// Load reads the configuration from the environment. It fails listing
// every required variable that is missing, so a misconfigured deploy
// stops at startup instead of falling back to insecure defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
