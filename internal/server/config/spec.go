package config

import "time"

// ServerConfig is the root configuration for sesskv-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Modules ModulesSection `koanf:"modules"`
	Bridge  BridgeSection  `koanf:"bridge"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	RESP RESPConfig `koanf:"resp"`
	HTTP HTTPConfig `koanf:"http"`
}

// RESPConfig configures the RESP protocol server.
type RESPConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	RateLimit    int           `koanf:"rate_limit"`
}

// HTTPConfig configures the admin/diagnostics HTTP server.
type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// ModulesSection configures which modules load, in order. The session
// module works without the store module but then only ever reaches the
// store through the command fallback, and the CUSTOM.* commands are
// absent, so every bridge call fails until the store module is loaded.
type ModulesSection struct {
	Store   bool `koanf:"store"`
	Session bool `koanf:"session"`
}

// BridgeSection configures the store bridge.
type BridgeSection struct {
	// ForceFallback pins the bridge to the command relay path even when
	// the exported store API is available.
	ForceFallback bool `koanf:"force_fallback"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
