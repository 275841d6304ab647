// Command devtalk is a terminal client for the DevTalk transcript service.
//
// Usage:
//
//	devtalk [flags]                  open the session list
//	devtalk chat SESSION_ID [flags]  open a session
//	devtalk new TITLE [flags]        create a session and open it
//	devtalk sessions [flags]         print the session list
//
// Flags:
//
//	--config string    Path to config file (default: $XDG_CONFIG_HOME/devtalk/config.toml)
//	--base-url string  Transcript service base URL (overrides DEVTALK_BASE_URL)
//	--log-file string  Path to log file (default: $XDG_CACHE_HOME/devtalk/devtalk.log)
//	--debug            Log at debug level
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "devtalk: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Env vars are read here and passed as values.
	env := environment{
		BaseURL: os.Getenv("DEVTALK_BASE_URL"),
	}

	root, a := newRootCmd(env, os.Stdout)
	root.SetArgs(os.Args[1:])
	return execute(ctx, root, a)
}
