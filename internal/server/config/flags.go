package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/promptmarket/internal/flagx"
)

var serverFlags = []string{
	"-a", "-grpc", "-store", "-redis", "-badger", "-d", "-key", "-max", "-origin", "-log",
	"-blocked", "-probe", "-u", "-p", "-b", "-region", "-e",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (e.g. ":8080")
//	-grpc string     gRPC health bind address
//	-store string    backing store: memory, redis, badger or postgres
//	-redis string    Redis URL
//	-badger string   Badger data directory
//	-d string        PostgreSQL DSN
//	-key string      backing list key
//	-max int         maximum number of stored prompts
//	-origin string   Access-Control-Allow-Origin value
//	-log string      log level: debug, info, warn or error
//	-blocked string  comma separated blocked terms
//	-probe duration  health probe interval
//	-u, -p string    S3 user and password
//	-b string        S3 bucket
//	-region string   S3 region
//	-e string        S3 base endpoint
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// loaders (such as -c) do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "grpc", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.StoreBackend, "store", config.StoreBackend, "backing store")
	fs.StringVar(&config.RedisURL, "redis", config.RedisURL, "Redis URL")
	fs.StringVar(&config.BadgerPath, "badger", config.BadgerPath, "Badger data directory")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ListKey, "key", config.ListKey, "backing list key")
	fs.IntVar(&config.MaxRecords, "max", config.MaxRecords, "maximum number of stored prompts")
	fs.StringVar(&config.AllowedOrigin, "origin", config.AllowedOrigin, "allowed CORS origin")
	fs.StringVar(&config.LogLevel, "log", config.LogLevel, "log level")
	blocked := fs.String("blocked", strings.Join(config.BlockedTerms, ","), "comma separated blocked terms")
	fs.DurationVar(&config.HealthProbeInterval, "probe", config.HealthProbeInterval, "health probe interval")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.BlockedTerms = splitTerms(*blocked)
}

func splitTerms(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
