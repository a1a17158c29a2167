// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// All fields are optional; defaults reproduce the stock deployment
// (bind 0.0.0.0:5000, 60s cache TTL, live NSE endpoints).
package config
