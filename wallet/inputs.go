package wallet

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/satchelorg/libsatchel-go/network"
	"github.com/satchelorg/libsatchel-go/tx"
)

// availableInputs lists the unspent outputs of the last used address (the
// one at index-1), normalized for the builder. The wallet funds every
// transaction from that single address.
func (w *Wallet) availableInputs(ctx context.Context) ([]*tx.Input, error) {
	if w.index == 0 {
		return nil, ErrInsufficientHistory
	}

	addr, err := w.keys.AddressAt(w.index - 1)
	if err != nil {
		return nil, err
	}
	utxos, err := w.svc.ListUnspent(ctx, addr)
	if err != nil {
		return nil, err
	}

	inputs := make([]*tx.Input, 0, len(utxos))
	for _, u := range utxos {
		in, err := normalizeUTXO(u)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// normalizeUTXO converts an explorer row into the builder's input shape.
// Explorers report txids in display order (byte-reversed hex); the builder
// wants internal byte order. Rows that omit the locking script get the
// canonical P2PKH script for their address.
func normalizeUTXO(u *network.UTXO) (*tx.Input, error) {
	txid, err := hex.DecodeString(u.TxID)
	if err != nil || len(txid) != tx.TxIDLen {
		return nil, fmt.Errorf("%w: utxo txid %q", network.ErrInvalidResponse, u.TxID)
	}
	reverseBytes(txid)

	var lockingScript []byte
	if u.ScriptPubKey != "" {
		lockingScript, err = hex.DecodeString(u.ScriptPubKey)
		if err != nil {
			return nil, fmt.Errorf("%w: utxo script %q", network.ErrInvalidResponse, u.ScriptPubKey)
		}
	} else {
		lockingScript, err = tx.BuildP2PKHScriptForAddress(u.Address)
		if err != nil {
			return nil, err
		}
	}

	return &tx.Input{
		TxID:     txid,
		Vout:     u.Vout,
		Address:  u.Address,
		Script:   lockingScript,
		Satoshis: u.Amount,
	}, nil
}

// reverseBytes flips a byte slice in place.
func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
