package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule allows Limit requests per Window with a bucket of Burst tokens
// (Limit when 0). Path is matched exactly, or as a prefix when it ends in
// "/". An empty Method matches every method.
type Rule struct {
	Name   string
	Method string
	Path   string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Default         Rule
	Rules           []Rule
	Unlimited       []string // "METHOD /path" pairs that are never limited
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused this long are dropped
	Allowlist       map[string]bool
	Denylist        map[string]bool
}

// DefaultConfig is the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Default:         Rule{Name: "default", Limit: 600, Window: time.Minute},
		Rules:           DefaultRules(60, 30),
		Unlimited:       []string{"GET /health", "GET /ready", "GET /metrics"},
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Allowlist:       map[string]bool{},
		Denylist:        map[string]bool{},
	}
}

// DefaultRules returns the tiers for the job board API: searches are
// cheaper than writes but dearer than plain reads.
func DefaultRules(searchPerMinute, writePerMinute int) []Rule {
	search := func(path string) Rule {
		return Rule{Name: "search", Method: "GET", Path: path, Limit: searchPerMinute, Window: time.Minute, Burst: max(searchPerMinute/4, 1)}
	}
	write := func(method, path string) Rule {
		return Rule{Name: "write", Method: method, Path: path, Limit: writePerMinute, Window: time.Minute, Burst: max(writePerMinute/6, 1)}
	}

	return []Rule{
		search("/jobs"),
		write("POST", "/jobs"),
		write("POST", "/companies"),
		write("POST", "/companies/"),
		write("DELETE", "/companies/"),
		write("POST", "/profiles"),
	}
}

// LoadConfig builds a configuration from RATE_LIMIT_* environment variables
// on top of DefaultConfig.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", true)
	if !cfg.Enabled {
		return cfg
	}

	cfg.Default.Limit = getEnvInt("RATE_LIMIT_DEFAULT_PER_MINUTE", cfg.Default.Limit)
	cfg.Rules = DefaultRules(
		getEnvInt("RATE_LIMIT_SEARCH_PER_MINUTE", 60),
		getEnvInt("RATE_LIMIT_WRITE_PER_MINUTE", 30),
	)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Allowlist = parseIPList(os.Getenv("RATE_LIMIT_ALLOWLIST"))
	cfg.Denylist = parseIPList(os.Getenv("RATE_LIMIT_DENYLIST"))
	return cfg
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client IPs into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
