package web

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "DRAWSTRING_LISTEN"
	EnvDevMode    = "DRAWSTRING_DEV"
	EnvFontDir    = "DRAWSTRING_FONT_DIR"
)

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - drawstring -serve: :8080
// - preview:           :8080, dev mode from the environment
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
	// FontDir, when set, is loaded into the font book in addition to the Go fonts.
	FontDir string
	// StaticDir, when set to an existing directory, replaces the embedded UI.
	StaticDir string
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	listenAddr := os.Getenv(EnvListenAddr)
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	devMode := false
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		devMode = parsed
	}

	return ServerConfig{ListenAddr: listenAddr, DevMode: devMode, FontDir: os.Getenv(EnvFontDir)}, nil
}
