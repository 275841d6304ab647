package devtalk

import (
	"fmt"
	"net/url"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL         = "http://localhost:8080/api/devtalk"
	DefaultTickInterval    = 15 * time.Millisecond
	DefaultScrollThreshold = 3
	DefaultIdleTimeout     = 60 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
)

// Config holds client settings. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// BaseURL is the transcript service API root.
	BaseURL string
	// ChunkSize is the number of grapheme clusters revealed per tick.
	ChunkSize int
	// TickInterval is the typing pace.
	TickInterval time.Duration
	// ScrollThreshold is the distance from the bottom, in rows, within which
	// a downward scroll re-pins the view.
	ScrollThreshold int
	// IdleTimeout is the longest silence tolerated on an open stream.
	IdleTimeout time.Duration
	// RequestTimeout bounds each request/response call.
	RequestTimeout time.Duration
	// LogFile is the log destination. Empty means the default location.
	LogFile string
	// Debug enables debug-level logging.
	Debug bool
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		ChunkSize:       DefaultChunkSize,
		TickInterval:    DefaultTickInterval,
		ScrollThreshold: DefaultScrollThreshold,
		IdleTimeout:     DefaultIdleTimeout,
		RequestTimeout:  DefaultRequestTimeout,
	}
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL, got %q: %w", c.BaseURL, ErrValidation)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d: %w", c.ChunkSize, ErrValidation)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s: %w", c.TickInterval, ErrValidation)
	}
	if c.ScrollThreshold < 0 {
		return fmt.Errorf("scroll_threshold must be non-negative, got %d: %w", c.ScrollThreshold, ErrValidation)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle_timeout must be positive, got %s: %w", c.IdleTimeout, ErrValidation)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s: %w", c.RequestTimeout, ErrValidation)
	}
	return nil
}
