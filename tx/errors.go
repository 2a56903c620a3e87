package tx

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("tx: required parameter is nil")

	// ErrNoInputs indicates the builder was given nothing to spend.
	ErrNoInputs = errors.New("tx: no inputs")

	// ErrInvalidInput indicates an input is malformed (bad TxID length or missing script).
	ErrInvalidInput = errors.New("tx: invalid input")

	// ErrInvalidAddress indicates an address is not valid base58check.
	ErrInvalidAddress = errors.New("tx: invalid address")

	// ErrInsufficientFunds indicates the inputs cannot cover amount plus fee.
	ErrInsufficientFunds = errors.New("tx: insufficient funds")

	// ErrSigningFailed indicates transaction signing failed.
	ErrSigningFailed = errors.New("tx: signing failed")

	// ErrScriptBuild indicates script construction failed.
	ErrScriptBuild = errors.New("tx: script build failed")
)
