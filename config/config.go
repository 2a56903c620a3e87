// Copyright (c) 2025 The Satchel developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and saves the key=value configuration file used by
// applications embedding the wallet.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/satchelorg/libsatchel-go/tx"
)

// Config holds the settings an embedding application persists between runs.
type Config struct {
	// DataDir is where the application keeps its files (journal, logs).
	DataDir string

	// Network selects the chain: "mainnet", "testnet", or "regtest".
	Network string

	// ExplorerURL is the block explorer API endpoint. Empty means the
	// endpoint is resolved from network presets or the environment when
	// the client is constructed; mainnet has no preset and must be set
	// here or via SATCHEL_EXPLORER_URL.
	ExplorerURL string

	// FeeRatePerKB is the fee rate in satoshis per kilobyte.
	FeeRatePerKB uint64

	// LogLevel is one of "debug", "info", "warn", or "error".
	LogLevel string

	// LogFile is the log destination. Empty means stderr.
	LogFile string
}

// DefaultConfig returns the configuration used when no file exists yet.
func DefaultConfig() Config {
	return Config{
		DataDir:      DefaultDataDir(),
		Network:      "mainnet",
		ExplorerURL:  "",
		FeeRatePerKB: tx.DefaultFeeRatePerKB,
		LogLevel:     "info",
		LogFile:      "",
	}
}

// DefaultDataDir returns the per-user data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".satchel"
	}
	return filepath.Join(home, ".satchel")
}

// ConfigPath returns the path of the configuration file inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads the configuration file at path. Keys not present in the
// file keep their defaults. Lines starting with '#' and blank lines are
// skipped; everything else must be a key=value pair with a known key.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: %w", err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on the first '=' only; values may contain '='.
		idx := strings.Index(line, "=")
		if idx < 0 {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "explorer":
			cfg.ExplorerURL = value
		case "feerate":
			rate, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: fee rate %q", ErrInvalidConfigLine, i+1, value)
			}
			cfg.FeeRatePerKB = rate
		case "loglevel":
			cfg.LogLevel = value
		case "logfile":
			cfg.LogFile = value
		default:
			return cfg, fmt.Errorf("%w: %q (line %d)", ErrUnknownConfigKey, key, i+1)
		}
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Satchel Configuration\n\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "explorer = %s\n", cfg.ExplorerURL)
	fmt.Fprintf(&b, "feerate = %d\n", cfg.FeeRatePerKB)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
