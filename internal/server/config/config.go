// Package config handles configuration for the phoneauth server,
// including defaults, a JSON overlay, environment variables and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the phoneauth server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses of the public APIs.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: session token lifetimes.
//   - VerificationSessionValidity: lifetime of the token handed out with a verification code.
//   - VerificationCodeTTL: maximum age of a verification code; zero disables expiry.
//   - ExposeCodes: return the verification code in the issue response (development mode).
//   - RequestTimeout: upper bound for a single API call including storage access.
//   - LogLevel: debug, info, warn or error.
//   - AMQPURL / AMQPExchange: broker for referral events; empty URL disables publishing.
//   - OTLPEndpoint: OTLP/HTTP collector endpoint for traces; empty disables export.
type Config struct {
	EndpointAddrHTTP             string        `env:"PHONEAUTH_HTTP_ADDR"`
	EndpointAddrGRPC             string        `env:"PHONEAUTH_GRPC_ADDR"`
	DatabaseDSN                  string        `env:"PHONEAUTH_DATABASE_DSN"`
	SecretKey                    string        `env:"PHONEAUTH_SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `env:"PHONEAUTH_ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"PHONEAUTH_REFRESH_TOKEN_TTL"`
	VerificationSessionValidity  time.Duration `env:"PHONEAUTH_VERIFICATION_SESSION_TTL"`
	VerificationCodeTTL          time.Duration `env:"PHONEAUTH_VERIFICATION_CODE_TTL"`
	ExposeCodes                  bool          `env:"PHONEAUTH_EXPOSE_CODES"`
	RequestTimeout               time.Duration `env:"PHONEAUTH_REQUEST_TIMEOUT"`
	LogLevel                     string        `env:"PHONEAUTH_LOG_LEVEL"`
	AMQPURL                      string        `env:"PHONEAUTH_AMQP_URL"`
	AMQPExchange                 string        `env:"PHONEAUTH_AMQP_EXCHANGE"`
	OTLPEndpoint                 string        `env:"PHONEAUTH_OTLP_ENDPOINT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 30 * 24 * time.Hour
	c.VerificationSessionValidity = 10 * time.Minute
	c.VerificationCodeTTL = 0
	c.ExposeCodes = true
	c.RequestTimeout = 5 * time.Second
	c.LogLevel = "info"
	c.AMQPURL = ""
	c.AMQPExchange = "phoneauth.events"
	c.OTLPEndpoint = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
