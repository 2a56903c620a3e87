package network

import "context"

// ExplorerService is the wallet's window onto the chain: a block-explorer
// style backend answering address questions and accepting transactions.
// The wallet treats it as the source of truth and never retries on its own.
type ExplorerService interface {
	// AddressHistoryCount returns how many transactions have ever touched
	// the address, confirmed or unconfirmed.
	AddressHistoryCount(ctx context.Context, address string) (int, error)

	// AddressBalance returns the confirmed plus unconfirmed balance of the
	// address in satoshis.
	AddressBalance(ctx context.Context, address string) (uint64, error)

	// ListUnspent returns all unspent transaction outputs for the given address.
	ListUnspent(ctx context.Context, address string) ([]*UTXO, error)

	// BroadcastTx submits a raw transaction hex to the network and returns the txid.
	BroadcastTx(ctx context.Context, rawTxHex string) (string, error)
}

// UTXO represents an unspent transaction output as reported by the backend.
type UTXO struct {
	TxID         string `json:"tx_hash"` // display hex
	Vout         uint32 `json:"tx_pos"`
	Amount       uint64 `json:"value"` // satoshis
	ScriptPubKey string `json:"script_pubkey,omitempty"` // locking script hex, empty when the backend omits it
	Address      string `json:"address"`
	Height       int64  `json:"height"` // 0 while unconfirmed
}
