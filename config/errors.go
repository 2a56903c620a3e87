// Copyright (c) 2025 The Satchel developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrInvalidExplorerURL indicates the explorer endpoint is malformed.
	ErrInvalidExplorerURL = errors.New("config: invalid explorer URL")

	// ErrInvalidFeeRate indicates the fee rate is zero.
	ErrInvalidFeeRate = errors.New("config: fee rate must be positive")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrUnknownConfigKey indicates the config file names a key this
	// version does not understand.
	ErrUnknownConfigKey = errors.New("config: unknown configuration key")
)
