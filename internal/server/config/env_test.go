package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("PROMPTS_HTTP_ADDR", ":7000")
	t.Setenv("REDIS_URL", "rediss://default:pw@upstash.example:6379")
	t.Setenv("PROMPTS_BLOCKED_TERMS", "crypto-doubler,free-money")
	t.Setenv("PROMPTS_HEALTH_PROBE_INTERVAL", "30s")

	var c Config
	c.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(&c) })

	assert.Equal(t, ":7000", c.EndpointAddrHTTP)
	assert.Equal(t, "rediss://default:pw@upstash.example:6379", c.RedisURL)
	assert.Equal(t, []string{"crypto-doubler", "free-money"}, c.BlockedTerms)
	assert.Equal(t, 30*time.Second, c.HealthProbeInterval)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC, "unset variables keep their value")
}

func TestParseEnv_Malformed(t *testing.T) {
	t.Setenv("PROMPTS_MAX_RECORDS", "lots")

	var c Config
	assert.Panics(t, func() { parseEnv(&c) })
}
