package network

import (
	"fmt"
	"time"
)

// DefaultRequestsPerSecond matches common explorer free-tier limits.
const DefaultRequestsPerSecond = 3

// ClientConfig holds the connection parameters for a block explorer API.
type ClientConfig struct {
	URL               string        `json:"url"`
	Network           string        `json:"network"`
	Timeout           time.Duration `json:"timeout"`
	RequestsPerSecond int           `json:"requests_per_second"`
}

// ExplorerPresets contains default explorer endpoints for known networks.
// Mainnet is intentionally omitted to require explicit configuration.
var ExplorerPresets = map[string]ClientConfig{
	"testnet": {URL: "https://api.whatsonchain.com/v1/bsv/test", Network: "testnet"},
	"regtest": {URL: "http://localhost:3001/v1/bsv/regtest", Network: "regtest"},
}

// ResolveClientConfig merges explorer configuration from three sources with
// decreasing priority:
//  1. explicit values (highest priority)
//  2. environment variables (SATCHEL_EXPLORER_URL)
//  3. network presets (lowest priority, testnet/regtest only)
//
// For mainnet, explicit configuration is required -- there is no preset.
func ResolveClientConfig(explicit *ClientConfig, env map[string]string, netName string) (*ClientConfig, error) {
	result := ClientConfig{Network: netName}

	// Layer 1: start with preset defaults if available.
	if preset, ok := ExplorerPresets[netName]; ok {
		result = preset
		result.Network = netName
	}

	// Layer 2: environment variables override preset defaults.
	if env != nil {
		if v, ok := env["SATCHEL_EXPLORER_URL"]; ok && v != "" {
			result.URL = v
		}
	}

	// Layer 3: explicit values have highest priority.
	if explicit != nil {
		if explicit.URL != "" {
			result.URL = explicit.URL
		}
		if explicit.Timeout != 0 {
			result.Timeout = explicit.Timeout
		}
		if explicit.RequestsPerSecond != 0 {
			result.RequestsPerSecond = explicit.RequestsPerSecond
		}
	}

	if result.URL == "" {
		return nil, fmt.Errorf("%w: %s has no preset (set ClientConfig.URL or SATCHEL_EXPLORER_URL)",
			ErrNoExplorerURL, netName)
	}

	return &result, nil
}
