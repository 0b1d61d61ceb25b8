package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/phoneauth/internal/flagx"
	"github.com/dmitrijs2005/phoneauth/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "5m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	VerificationSessionValidity  timex.Duration `json:"verification_session_validity"`
	VerificationCodeTTL          timex.Duration `json:"verification_code_ttl"`
	ExposeCodes                  bool           `json:"expose_codes"`
	RequestTimeout               timex.Duration `json:"request_timeout"`
	LogLevel                     string         `json:"log_level"`
	AMQPURL                      string         `json:"amqp_url"`
	AMQPExchange                 string         `json:"amqp_exchange"`
	OTLPEndpoint                 string         `json:"otlp_endpoint"`
}

// parseJson overlays config with the JSON file named by -c/-config (or
// PHONEAUTH_CONFIG). Keys missing from the file keep their current values.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	c := fromConfig(config)
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	c.apply(config)
	return nil
}

func fromConfig(config *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrHTTP:             config.EndpointAddrHTTP,
		EndpointAddrGRPC:             config.EndpointAddrGRPC,
		DatabaseDSN:                  config.DatabaseDSN,
		SecretKey:                    config.SecretKey,
		AccessTokenValidityDuration:  timex.Duration{Duration: config.AccessTokenValidityDuration},
		RefreshTokenValidityDuration: timex.Duration{Duration: config.RefreshTokenValidityDuration},
		VerificationSessionValidity:  timex.Duration{Duration: config.VerificationSessionValidity},
		VerificationCodeTTL:          timex.Duration{Duration: config.VerificationCodeTTL},
		ExposeCodes:                  config.ExposeCodes,
		RequestTimeout:               timex.Duration{Duration: config.RequestTimeout},
		LogLevel:                     config.LogLevel,
		AMQPURL:                      config.AMQPURL,
		AMQPExchange:                 config.AMQPExchange,
		OTLPEndpoint:                 config.OTLPEndpoint,
	}
}

func (c *JsonConfig) apply(config *Config) {
	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	config.VerificationSessionValidity = c.VerificationSessionValidity.Duration
	config.VerificationCodeTTL = c.VerificationCodeTTL.Duration
	config.ExposeCodes = c.ExposeCodes
	config.RequestTimeout = c.RequestTimeout.Duration
	config.LogLevel = c.LogLevel
	config.AMQPURL = c.AMQPURL
	config.AMQPExchange = c.AMQPExchange
	config.OTLPEndpoint = c.OTLPEndpoint
}
