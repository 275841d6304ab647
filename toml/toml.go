// Package toml loads devtalk configuration from TOML files.
package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/devtalk/devtalk"
)

// file mirrors the config file. Pointer fields distinguish keys that are
// absent from keys set to a zero value.
type file struct {
	BaseURL         *string   `toml:"base_url"`
	ChunkSize       *int      `toml:"chunk_size"`
	TickInterval    *duration `toml:"tick_interval"`
	ScrollThreshold *int      `toml:"scroll_threshold"`
	IdleTimeout     *duration `toml:"idle_timeout"`
	RequestTimeout  *duration `toml:"request_timeout"`
	LogFile         *string   `toml:"log_file"`
	Debug           *bool     `toml:"debug"`
}

// duration decodes Go duration strings such as "15ms" or "1m30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/devtalk/config.toml or its platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("toml: %w", err)
	}
	return filepath.Join(dir, "devtalk", "config.toml"), nil
}

// Load decodes the file at path over cfg and returns the result. Keys absent
// from the file keep their value from cfg. Unknown keys are an error.
// A missing file yields an error wrapping fs.ErrNotExist.
func Load(path string, cfg devtalk.Config) (devtalk.Config, error) {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return cfg, fmt.Errorf("toml: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("toml: %s: unknown keys %s: %w", path, strings.Join(keys, ", "), devtalk.ErrValidation)
	}
	return f.apply(cfg), nil
}

// LoadOptional is like Load but treats a missing file as empty.
func LoadOptional(path string, cfg devtalk.Config) (devtalk.Config, error) {
	out, err := Load(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	return out, err
}

func (f file) apply(cfg devtalk.Config) devtalk.Config {
	if f.BaseURL != nil {
		cfg.BaseURL = *f.BaseURL
	}
	if f.ChunkSize != nil {
		cfg.ChunkSize = *f.ChunkSize
	}
	if f.TickInterval != nil {
		cfg.TickInterval = f.TickInterval.Duration
	}
	if f.ScrollThreshold != nil {
		cfg.ScrollThreshold = *f.ScrollThreshold
	}
	if f.IdleTimeout != nil {
		cfg.IdleTimeout = f.IdleTimeout.Duration
	}
	if f.RequestTimeout != nil {
		cfg.RequestTimeout = f.RequestTimeout.Duration
	}
	if f.LogFile != nil {
		cfg.LogFile = *f.LogFile
	}
	if f.Debug != nil {
		cfg.Debug = *f.Debug
	}
	return cfg
}
