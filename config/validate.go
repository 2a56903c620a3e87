// Copyright (c) 2025 The Satchel developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "regtest" {
		return ErrInvalidNetwork
	}

	// An empty explorer URL is acceptable: it is resolved from presets or
	// the environment when the client is constructed.
	if cfg.ExplorerURL != "" {
		if err := validateURL(cfg.ExplorerURL); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidExplorerURL, err)
		}
	}

	if cfg.FeeRatePerKB == 0 {
		return ErrInvalidFeeRate
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}

// validateURL checks that raw is an absolute http or https URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme %q is not http or https", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
