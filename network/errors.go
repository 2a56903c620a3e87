package network

import (
	"errors"
	"fmt"
)

var (
	// ErrCommunication indicates the backend could not be reached or
	// answered outside its contract. Every failure of an ExplorerService
	// wraps it, so callers match the whole class with errors.Is.
	ErrCommunication = errors.New("network: communication failed")

	// ErrInvalidResponse indicates the backend returned a body the client
	// could not decode. Wraps ErrCommunication.
	ErrInvalidResponse = fmt.Errorf("%w: invalid response", ErrCommunication)

	// ErrNoExplorerURL indicates client configuration resolved without a
	// base URL.
	ErrNoExplorerURL = errors.New("network: explorer URL not configured")
)
