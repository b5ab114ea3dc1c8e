package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/BenTyson/calcverse/internal/config"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxUploadSize   string               `yaml:"maxUploadSize"`
	BaseURL         string               `yaml:"baseURL"`
	Logging         config.LoggingConfig `yaml:"logging"`
	RateLimit       RateLimitConfig      `yaml:"rateLimit"`
	Cache           CacheConfig          `yaml:"cache"`
	uploadSizeBytes int64
}

// RateLimitConfig sizes the per-client token bucket. A capacity of zero or less
// disables rate limiting.
type RateLimitConfig struct {
	Capacity int    `yaml:"capacity"`
	Refill   string `yaml:"refill"`
	interval time.Duration
}

// Interval returns the parsed refill interval.
func (r RateLimitConfig) Interval() time.Duration {
	return r.interval
}

// Enabled reports whether requests should be rate limited.
func (r RateLimitConfig) Enabled() bool {
	return r.Capacity > 0
}

// CacheConfig selects where evaluation responses are cached.
type CacheConfig struct {
	Backend   string `yaml:"backend"`
	RedisAddr string `yaml:"redisAddr"`
	TTL       string `yaml:"ttl"`
	ttl       time.Duration
}

// TTLDuration returns the parsed cache TTL.
func (c CacheConfig) TTLDuration() time.Duration {
	return c.ttl
}

// Environment variables that override file settings.
const (
	EnvAddress           = constants.EnvPrefix + "_ADDRESS"
	EnvMaxUploadSize     = constants.EnvPrefix + "_MAX_UPLOAD_SIZE"
	EnvBaseURL           = constants.EnvPrefix + "_BASE_URL"
	EnvLogLevel          = constants.EnvPrefix + "_LOG_LEVEL"
	EnvRateLimitCapacity = constants.EnvPrefix + "_RATE_LIMIT_CAPACITY"
	EnvRateLimitRefill   = constants.EnvPrefix + "_RATE_LIMIT_REFILL"
	EnvCacheBackend      = constants.EnvPrefix + "_CACHE_BACKEND"
	EnvRedisAddr         = constants.EnvPrefix + "_REDIS_ADDR"
	EnvCacheTTL          = constants.EnvPrefix + "_CACHE_TTL"
)

// LoadEnv loads environment files (".env" when none are given) without
// overriding variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}

// LoadConfig loads the server configuration from YAML and applies
// environment overrides. If the file does not exist, defaults are returned
// without error.
func LoadConfig(path string) (*Config, error) {
	return loadConfig(path, os.LookupEnv)
}

func loadConfig(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Address:       constants.DefaultServerAddress,
		MaxUploadSize: fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes),
		BaseURL:       constants.DefaultBaseURL,
		Logging:       config.LoggingConfig{},
		RateLimit: RateLimitConfig{
			Capacity: constants.DefaultRateLimitCapacity,
			Refill:   constants.DefaultRateLimitRefill,
		},
		Cache: CacheConfig{
			Backend: constants.CacheBackendMemory,
			TTL:     constants.DefaultCacheTTL,
		},
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str(EnvAddress, &c.Address)
	str(EnvMaxUploadSize, &c.MaxUploadSize)
	str(EnvBaseURL, &c.BaseURL)
	str(EnvLogLevel, &c.Logging.Level)
	str(EnvRateLimitRefill, &c.RateLimit.Refill)
	str(EnvCacheBackend, &c.Cache.Backend)
	str(EnvRedisAddr, &c.Cache.RedisAddr)
	str(EnvCacheTTL, &c.Cache.TTL)

	if v, ok := lookup(EnvRateLimitCapacity); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRateLimitCapacity, v, err)
		}
		c.RateLimit.Capacity = n
	}
	return nil
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the configured upload size.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = fmt.Sprintf("%d", size)
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = constants.DefaultBaseURL
	}

	if err := c.normalizeUploadSize(); err != nil {
		return err
	}

	refill := strings.TrimSpace(c.RateLimit.Refill)
	if refill == "" {
		refill = constants.DefaultRateLimitRefill
	}
	interval, err := time.ParseDuration(refill)
	if err != nil || interval <= 0 {
		return fmt.Errorf("invalid rate limit refill %q", c.RateLimit.Refill)
	}
	c.RateLimit.Refill = refill
	c.RateLimit.interval = interval

	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = constants.CacheBackendMemory
	case constants.CacheBackendMemory, constants.CacheBackendNone:
	case constants.CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache backend redis requires redisAddr")
		}
	default:
		return fmt.Errorf("unsupported cache backend %q", c.Cache.Backend)
	}

	ttl := strings.TrimSpace(c.Cache.TTL)
	if ttl == "" {
		ttl = constants.DefaultCacheTTL
	}
	c.Cache.ttl, err = time.ParseDuration(ttl)
	if err != nil || c.Cache.ttl < 0 {
		return fmt.Errorf("invalid cache ttl %q", c.Cache.TTL)
	}
	c.Cache.TTL = ttl
	return nil
}

func (c *Config) normalizeUploadSize() error {
	sizeStr := strings.TrimSpace(c.MaxUploadSize)
	if sizeStr == "" {
		c.uploadSizeBytes = constants.DefaultMaxUploadSizeBytes
		c.MaxUploadSize = fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 || (n != 0 && result/multiplier != n) {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
