// Package cache stores encoded evaluation responses keyed by calculator,
// mode and canonical inputs.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// Cache stores opaque values by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// New returns the cache for backend. An empty backend selects the in-memory
// cache.
func New(logger *zap.Logger, backend, redisAddr string, ttl time.Duration) (Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", constants.CacheBackendMemory:
		logger.Debug("using in-memory result cache",
			zap.String("op", "cache.New"),
			zap.Duration("ttl", ttl),
		)
		return NewMemory(ttl), nil
	case constants.CacheBackendRedis:
		if redisAddr == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		logger.Debug("using redis result cache",
			zap.String("op", "cache.New"),
			zap.String("addr", redisAddr),
			zap.Duration("ttl", ttl),
		)
		return NewRedis(redisAddr, ttl, logger), nil
	case constants.CacheBackendNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// Key derives a cache key from an evaluation request. Inputs are decoded and
// re-encoded so key order and whitespace do not matter.
func Key(slug string, mode calculator.Mode, raw json.RawMessage) (string, error) {
	canonical := []byte("null")
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 {
		var v any
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return "", fmt.Errorf("canonicalizing inputs: %w", err)
		}
		var err error
		canonical, err = json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("canonicalizing inputs: %w", err)
		}
	}

	h := xxhash.New()
	_, _ = h.WriteString(strings.ToLower(slug))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(mode.String())
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(canonical)
	return "calcverse:eval:" + strconv.FormatUint(h.Sum64(), 16), nil
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Noop) Set(context.Context, string, []byte) error  { return nil }
func (Noop) Close() error                               { return nil }
