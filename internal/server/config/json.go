package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/promptmarket/internal/flagx"
	"github.com/dmitrijs2005/promptmarket/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Intervals use
// timex.Duration so both "10s" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP    string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC    string          `json:"endpoint_addr_grpc"`
	StoreBackend        string          `json:"store_backend"`
	RedisURL            string          `json:"redis_url"`
	BadgerPath          string          `json:"badger_path"`
	DatabaseDSN         string          `json:"database_dsn"`
	ListKey             string          `json:"list_key"`
	MaxRecords          int             `json:"max_records"`
	AllowedOrigin       string          `json:"allowed_origin"`
	LogLevel            string          `json:"log_level"`
	BlockedTerms        []string        `json:"blocked_terms"`
	HealthProbeInterval *timex.Duration `json:"health_probe_interval"`
	S3RootUser          string          `json:"s3_root_user"`
	S3RootPassword      string          `json:"s3_root_password"`
	S3Bucket            string          `json:"s3_bucket"`
	S3Region            string          `json:"s3_region"`
	S3BaseEndpoint      string          `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c / -config, if any, and copies every
// field present in it into config. A missing or malformed file panics.
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.BadgerPath, c.BadgerPath)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.ListKey, c.ListKey)
	setString(&config.AllowedOrigin, c.AllowedOrigin)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.MaxRecords != 0 {
		config.MaxRecords = c.MaxRecords
	}
	if c.BlockedTerms != nil {
		config.BlockedTerms = c.BlockedTerms
	}
	if c.HealthProbeInterval != nil {
		config.HealthProbeInterval = c.HealthProbeInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
