package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devtalk/devtalk"
	"github.com/devtalk/devtalk/toml"
)

// environment holds the environment variables the command honours.
type environment struct {
	BaseURL string
}

// options holds the persistent command-line flags.
type options struct {
	configPath string
	baseURL    string
	logFile    string
	debug      bool

	// baseURLSet and debugSet record whether the flag was given, so an
	// explicit flag wins over the file and the environment.
	baseURLSet bool
	debugSet   bool
}

// resolveConfig builds the configuration from defaults, the config file, the
// environment and flags, in increasing order of precedence. A missing default
// config file is tolerated; a missing explicit one is not.
func resolveConfig(opts options, env environment) (devtalk.Config, error) {
	cfg := devtalk.DefaultConfig()

	var err error
	if opts.configPath != "" {
		cfg, err = toml.Load(opts.configPath, cfg)
	} else {
		var path string
		path, err = toml.DefaultPath()
		if err == nil {
			cfg, err = toml.LoadOptional(path, cfg)
		}
	}
	if err != nil {
		return devtalk.Config{}, fmt.Errorf("load config: %w", err)
	}

	if env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}
	if opts.baseURLSet {
		cfg.BaseURL = opts.baseURL
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.debugSet {
		cfg.Debug = opts.debug
	}

	if err := cfg.Validate(); err != nil {
		return devtalk.Config{}, err
	}
	return cfg, nil
}

// defaultLogPath returns $XDG_CACHE_HOME/devtalk/devtalk.log or its platform
// equivalent.
func defaultLogPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(dir, "devtalk", "devtalk.log"), nil
}
