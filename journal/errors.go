package journal

import "errors"

var (
	// ErrInvalidRecord indicates a record without a transaction id.
	ErrInvalidRecord = errors.New("journal: record missing txid")

	// ErrDuplicateRecord indicates the txid was already journaled.
	ErrDuplicateRecord = errors.New("journal: txid already recorded")

	// ErrRecordNotFound indicates no record exists for the txid.
	ErrRecordNotFound = errors.New("journal: record not found")
)
