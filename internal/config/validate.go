package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all values are usable after defaults are applied.
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if !strings.HasPrefix(c.Upstream.BaseURL, "http://") && !strings.HasPrefix(c.Upstream.BaseURL, "https://") {
		return fmt.Errorf("upstream.base_url must be an http(s) URL, got %q", c.Upstream.BaseURL)
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream.timeout must be positive")
	}
	if c.Upstream.WarmupDelay < 0 {
		return errors.New("upstream.warmup_delay cannot be negative")
	}
	if c.Upstream.QuotePacing < 0 {
		return errors.New("upstream.quote_pacing cannot be negative")
	}
	if c.Upstream.SnapshotPacing < 0 {
		return errors.New("upstream.snapshot_pacing cannot be negative")
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}

	if c.Refresh.Enabled && c.Refresh.Interval <= 0 {
		return errors.New("refresh.interval must be positive when refresh is enabled")
	}

	return nil
}
