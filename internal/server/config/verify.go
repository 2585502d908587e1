package config

import "errors"

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg.Server.RESP.Enabled && cfg.Server.RESP.Addr == "" {
		return errors.New("server.resp.addr is required when the resp server is enabled")
	}
	if cfg.Server.HTTP.Enabled && cfg.Server.HTTP.Addr == "" {
		return errors.New("server.http.addr is required when the http server is enabled")
	}
	if cfg.Server.RESP.RateLimit < 0 {
		return errors.New("server.resp.rate_limit must not be negative")
	}
	if cfg.Modules.Session && !cfg.Modules.Store {
		// Legal (the bridge degrades to the fallback path) but almost
		// certainly a misconfiguration, so reject it unless the operator
		// also pinned the fallback explicitly.
		if !cfg.Bridge.ForceFallback {
			return errors.New("modules.session without modules.store requires bridge.force_fallback")
		}
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("log.level must be one of debug, info, warn, error")
	}
	switch cfg.Log.Format {
	case "", "json", "text", "console":
	default:
		return errors.New("log.format must be one of json, text, console")
	}
	return nil
}
