// Package config loads hdlpm's own tool configuration — cache
// directory, catalog search roots, default log level — as distinct
// from the per-IP manifest documents in internal/manifest.
package config

// Config is hdlpm's tool-level configuration.
type Config struct {
	// CacheDir is where downloaded IPs are cached.
	CacheDir string `yaml:"cache_dir,omitempty"`
	// CatalogRoots are directories scanned for local IPs in addition
	// to CacheDir.
	CatalogRoots []string `yaml:"catalog_roots,omitempty"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level,omitempty"`
	// DefaultVendor is used to qualify bare IP names when none is given.
	DefaultVendor string `yaml:"default_vendor,omitempty"`
}
