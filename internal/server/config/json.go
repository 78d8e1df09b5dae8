package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/postboard/internal/flagx"
	"github.com/dmitrijs2005/postboard/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "1m" and integer nanoseconds are accepted. Keys that
// are absent leave the corresponding Config field untouched.
type JsonConfig struct {
	EndpointAddrGRPC      string          `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	PasswordScheme        string          `json:"password_scheme"`
	LogBackend            string          `json:"log_backend"`
	LogLevel              string          `json:"log_level"`
	RedisAddr             string          `json:"redis_addr"`
	RedisPassword         string          `json:"redis_password"`
	RedisDB               *int            `json:"redis_db"`
	RateLimitMax          *int            `json:"rate_limit_max"`
	RateLimitWindow       *timex.Duration `json:"rate_limit_window"`
	CORSAllowedOrigins    []string        `json:"cors_allowed_origins"`
	S3RootUser            string          `json:"s3_root_user"`
	S3RootPassword        string          `json:"s3_root_password"`
	S3Bucket              string          `json:"s3_bucket"`
	S3Region              string          `json:"s3_region"`
	S3BaseEndpoint        string          `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c / -config, if any, into config.
// An unreadable file or invalid JSON panics: a config the operator asked
// for but that cannot be applied must stop startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	setString(&config.PasswordScheme, c.PasswordScheme)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	if c.RateLimitMax != nil {
		config.RateLimitMax = *c.RateLimitMax
	}
	if c.RateLimitWindow != nil {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
