package config

import "time"

// ServerConfig is the root configuration for the proxy server.
type ServerConfig struct {
	Server   HTTPConfig     `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`
	Refresh  RefreshConfig  `yaml:"refresh"`
}

// HTTPConfig holds the inbound HTTP listener settings.
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// UpstreamConfig holds NSE upstream settings.
type UpstreamConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	WarmupDelay time.Duration `yaml:"warmup_delay"`

	// Inter-request pacing for serialized symbol walks. QuotePacing applies
	// to the 20-symbol bulk fetch, SnapshotPacing to the 15-symbol
	// full-snapshot fetch.
	QuotePacing    time.Duration `yaml:"quote_pacing"`
	SnapshotPacing time.Duration `yaml:"snapshot_pacing"`
}

// CacheConfig holds the shared snapshot cache settings.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// RefreshConfig holds the optional background refresher settings.
// When disabled, data is only fetched on demand.
type RefreshConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}
