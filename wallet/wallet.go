package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	script "github.com/bsv-blockchain/go-sdk/script"
	transaction "github.com/bsv-blockchain/go-sdk/transaction"

	"github.com/satchelorg/libsatchel-go/journal"
	"github.com/satchelorg/libsatchel-go/network"
	"github.com/satchelorg/libsatchel-go/tx"
)

// Wallet is a deterministic single-seed wallet. The address at the wallet
// index is the current receive address; the address immediately before it
// holds the entire spendable balance. Every public operation re-scans the
// backend first, so the index reflects activity that happened outside this
// instance, and the index only ever grows.
//
// Public operations serialize on an internal mutex: one instance is safe
// for concurrent use, with calls executing one at a time.
type Wallet struct {
	mu sync.Mutex

	keys    *Keychain
	svc     network.ExplorerService
	feeRate uint64           // satoshis per kilobyte
	journal *journal.Journal // optional broadcast journal

	index uint32
}

type options struct {
	params  *ChainParams
	feeRate uint64
	journal *journal.Journal
}

// Option adjusts optional Wallet behavior at construction.
type Option func(*options)

// WithParams selects chain parameters (default MainNet).
func WithParams(params *ChainParams) Option {
	return func(o *options) { o.params = params }
}

// WithFeeRatePerKB overrides the fee rate used by the estimator
// (default tx.DefaultFeeRatePerKB).
func WithFeeRatePerKB(satoshisPerKB uint64) Option {
	return func(o *options) { o.feeRate = satoshisPerKB }
}

// WithJournal records every broadcast in j before it is handed to the
// network, so a failed broadcast still leaves an auditable entry.
func WithJournal(j *journal.Journal) Option {
	return func(o *options) { o.journal = j }
}

// New creates a Wallet from a BIP39 seed and an explorer backend.
func New(seed []byte, svc network.ExplorerService, opts ...Option) (*Wallet, error) {
	if svc == nil {
		return nil, ErrNilService
	}

	o := options{feeRate: tx.DefaultFeeRatePerKB}
	for _, opt := range opts {
		opt(&o)
	}
	if o.feeRate == 0 {
		o.feeRate = tx.DefaultFeeRatePerKB
	}

	keys, err := NewKeychain(seed, o.params)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		keys:    keys,
		svc:     svc,
		feeRate: o.feeRate,
		journal: o.journal,
	}, nil
}

// Keys exposes the wallet's keychain for read-only derivation queries.
func (w *Wallet) Keys() *Keychain { return w.keys }

// Initialize scans the backend to locate the wallet index. Calling it is
// optional: every other operation re-scans anyway.
func (w *Wallet) Initialize(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updateIndex(ctx)
}

// Balance returns the spendable satoshis (confirmed plus unconfirmed) of
// the last used address. A wallet whose first address was never used
// reports zero without asking the backend.
func (w *Wallet) Balance(ctx context.Context) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.updateIndex(ctx); err != nil {
		return 0, err
	}
	if w.index == 0 {
		return 0, nil
	}
	addr, err := w.keys.AddressAt(w.index - 1)
	if err != nil {
		return 0, err
	}
	return w.svc.AddressBalance(ctx, addr)
}

// ReceiveAddress returns the first address with no transaction history as
// of the scan it performs.
func (w *Wallet) ReceiveAddress(ctx context.Context) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.updateIndex(ctx); err != nil {
		return "", err
	}
	return w.keys.AddressAt(w.index)
}

// Send pays amount satoshis to recipient, funding the transaction from the
// last used address and estimating the miner fee from the signed
// transaction's serialized size. It returns the txid reported by the
// backend.
func (w *Wallet) Send(ctx context.Context, recipient string, amount uint64) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.send(ctx, recipient, amount, 0, true)
}

// SendWithFee is Send with a caller-chosen fee instead of the estimate.
func (w *Wallet) SendWithFee(ctx context.Context, recipient string, amount, fee uint64) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.send(ctx, recipient, amount, fee, false)
}

// Withdraw sweeps the wallet: the entire spendable balance minus the
// estimated fee goes to recipient, leaving no change.
func (w *Wallet) Withdraw(ctx context.Context, recipient string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := validateAddress(recipient); err != nil {
		return "", err
	}
	if err := w.updateIndex(ctx); err != nil {
		return "", err
	}
	inputs, err := w.availableInputs(ctx)
	if err != nil {
		return "", err
	}

	total := tx.SumInputs(inputs)
	if total == 0 {
		return "", fmt.Errorf("%w: no unspent outputs at the funding address", tx.ErrInsufficientFunds)
	}
	fee, err := w.estimateFee(inputs, recipient, total)
	if err != nil {
		return "", err
	}
	if fee > total {
		return "", fmt.Errorf("%w: fee %d sat exceeds balance %d sat", tx.ErrInsufficientFunds, fee, total)
	}
	return w.broadcast(ctx, inputs, recipient, total-fee, fee)
}

// send implements Send and SendWithFee. When estimate is true the fee
// argument is ignored and recomputed from the transaction size.
func (w *Wallet) send(ctx context.Context, recipient string, amount, fee uint64, estimate bool) (string, error) {
	if err := validateAddress(recipient); err != nil {
		return "", err
	}
	if err := w.updateIndex(ctx); err != nil {
		return "", err
	}
	inputs, err := w.availableInputs(ctx)
	if err != nil {
		return "", err
	}
	if estimate {
		fee, err = w.estimateFee(inputs, recipient, amount)
		if err != nil {
			return "", err
		}
	}
	return w.broadcast(ctx, inputs, recipient, amount, fee)
}

// estimateFee sizes the transaction by building and signing it with fee 0,
// then charges the configured rate on the serialized length. The same
// builder produces the draft and the final transaction; the draft lets the
// amount consume what the fee will later claim, and only its size is read.
func (w *Wallet) estimateFee(inputs []*tx.Input, recipient string, amount uint64) (uint64, error) {
	draft, err := w.buildTx(inputs, recipient, amount, 0)
	if err != nil {
		return 0, err
	}
	return tx.EstimateFeeForSize(len(draft.Bytes()), w.feeRate), nil
}

// buildTx assembles and signs a transaction spending inputs. The signing
// key is the one that owns them (index-1); change goes to the address at
// the current index, extending the used-address frontier.
func (w *Wallet) buildTx(inputs []*tx.Input, recipient string, amount, fee uint64) (*transaction.Transaction, error) {
	if w.index == 0 {
		return nil, ErrInsufficientHistory
	}

	signing, err := w.keys.KeyAt(w.index - 1)
	if err != nil {
		return nil, err
	}
	changeAddr, err := w.keys.AddressAt(w.index)
	if err != nil {
		return nil, err
	}

	return tx.Build(tx.BuildParams{
		Inputs:        inputs,
		Recipient:     recipient,
		ChangeAddress: changeAddr,
		Amount:        amount,
		Fee:           fee,
		SigningKey:    signing.PrivateKey,
	})
}

// broadcast builds the final transaction, journals it when a journal is
// configured, and submits it. The journal record lands before the network
// send: an append failure aborts the operation before any coins move.
func (w *Wallet) broadcast(ctx context.Context, inputs []*tx.Input, recipient string, amount, fee uint64) (string, error) {
	signed, err := w.buildTx(inputs, recipient, amount, fee)
	if err != nil {
		return "", err
	}

	if w.journal != nil {
		_, err := w.journal.Append(journal.Record{
			TxID:      signed.TxID().String(),
			RawTx:     signed.Hex(),
			Recipient: recipient,
			Amount:    amount,
			Fee:       fee,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return "", fmt.Errorf("wallet: journal append: %w", err)
		}
	}

	return w.svc.BroadcastTx(ctx, signed.Hex())
}

// validateAddress rejects malformed recipients before any network traffic.
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidRecipient)
	}
	if _, err := script.NewAddressFromString(address); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRecipient, address, err)
	}
	return nil
}
