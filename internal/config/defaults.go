package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 5000
	DefaultUpstreamBaseURL = "https://www.nseindia.com"
	DefaultUpstreamTimeout = 10 * time.Second
	DefaultWarmupDelay     = 1 * time.Second
	DefaultQuotePacing     = 500 * time.Millisecond
	DefaultSnapshotPacing  = 300 * time.Millisecond
	DefaultCacheTTL        = 60 * time.Second
	DefaultRefreshInterval = 60 * time.Second
)

func (c *ServerConfig) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if c.Upstream.WarmupDelay == 0 {
		c.Upstream.WarmupDelay = DefaultWarmupDelay
	}
	if c.Upstream.QuotePacing == 0 {
		c.Upstream.QuotePacing = DefaultQuotePacing
	}
	if c.Upstream.SnapshotPacing == 0 {
		c.Upstream.SnapshotPacing = DefaultSnapshotPacing
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}

	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = DefaultRefreshInterval
	}
}
