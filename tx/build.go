package tx

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
)

// BuildParams describes a single-recipient payment.
type BuildParams struct {
	Inputs        []*Input
	Recipient     string // destination address
	ChangeAddress string // address receiving the remainder
	Amount        uint64 // satoshis for the recipient
	Fee           uint64 // satoshis left to miners
	SigningKey    *ec.PrivateKey
}

// Build assembles and signs a P2PKH payment transaction.
//
// Output layout:
//
//	[0] P2PKH -> Recipient (Amount)
//	[1] P2PKH -> ChangeAddress (total - Amount - Fee), omitted when zero
//
// When Recipient and ChangeAddress are the same address the two outputs
// collapse into one carrying Amount plus change. Every input is signed
// with SigningKey.
//
// Build is also the sizing oracle for fee estimation: callers build once
// with Fee 0, measure the serialized length, then build again with the
// real fee. Both passes must go through this one function so the measured
// shape matches what is broadcast.
func Build(params BuildParams) (*transaction.Transaction, error) {
	if params.SigningKey == nil {
		return nil, fmt.Errorf("%w: signing key", ErrNilParam)
	}
	for i, in := range params.Inputs {
		if in == nil {
			return nil, fmt.Errorf("%w: input[%d] is nil", ErrInvalidInput, i)
		}
		if len(in.TxID) != TxIDLen {
			return nil, fmt.Errorf("%w: input[%d] TxID length %d", ErrInvalidInput, i, len(in.TxID))
		}
		if len(in.Script) == 0 {
			return nil, fmt.Errorf("%w: input[%d] has empty script", ErrInvalidInput, i)
		}
	}

	recipientScript, err := lockingScript(params.Recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient %q: %w", ErrInvalidAddress, params.Recipient, err)
	}
	changeScript, err := lockingScript(params.ChangeAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: change %q: %w", ErrInvalidAddress, params.ChangeAddress, err)
	}

	total := SumInputs(params.Inputs)
	needed := params.Amount + params.Fee
	if total < needed {
		return nil, fmt.Errorf("%w: need %d sat, have %d sat", ErrInsufficientFunds, needed, total)
	}
	// Empty inputs with a nonzero spend already failed the funds check;
	// only the degenerate zero-amount, zero-fee build lands here.
	if len(params.Inputs) == 0 {
		return nil, fmt.Errorf("%w: nothing to spend", ErrNoInputs)
	}
	change := total - params.Amount - params.Fee

	sdkTx := transaction.NewTransaction()

	// Paying yourself folds the change into the payment output. The fold
	// applies even when change is zero so both cases serialize identically.
	if params.Recipient == params.ChangeAddress {
		sdkTx.Outputs = append(sdkTx.Outputs, &transaction.TransactionOutput{
			Satoshis:      params.Amount + change,
			LockingScript: recipientScript,
		})
	} else {
		sdkTx.Outputs = append(sdkTx.Outputs, &transaction.TransactionOutput{
			Satoshis:      params.Amount,
			LockingScript: recipientScript,
		})
		if change > 0 {
			sdkTx.Outputs = append(sdkTx.Outputs, &transaction.TransactionOutput{
				Satoshis:      change,
				LockingScript: changeScript,
			})
		}
	}

	unlocker, err := p2pkh.Unlock(params.SigningKey, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: unlocker: %w", ErrSigningFailed, err)
	}

	for i, in := range params.Inputs {
		sourceHash, hashErr := chainhash.NewHash(in.TxID)
		if hashErr != nil {
			return nil, fmt.Errorf("%w: input[%d] TxID: %w", ErrInvalidInput, i, hashErr)
		}
		input := &transaction.TransactionInput{
			SourceTXID:       sourceHash,
			SourceTxOutIndex: in.Vout,
			SequenceNumber:   transaction.DefaultSequenceNumber,
		}
		input.SetSourceTxOutput(&transaction.TransactionOutput{
			Satoshis:      in.Satoshis,
			LockingScript: script.NewFromBytes(in.Script),
		})
		input.UnlockingScriptTemplate = unlocker
		sdkTx.AddInput(input)
	}

	if err := sdkTx.Sign(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	return sdkTx, nil
}

// BuildP2PKHScriptForAddress creates a P2PKH locking script for a
// base58check address. Returns raw script bytes suitable for Input.Script.
func BuildP2PKHScriptForAddress(address string) ([]byte, error) {
	s, err := lockingScript(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAddress, address, err)
	}
	return []byte(*s), nil
}

func lockingScript(address string) (*script.Script, error) {
	addr, err := script.NewAddressFromString(address)
	if err != nil {
		return nil, err
	}
	lock, err := p2pkh.Lock(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScriptBuild, err)
	}
	return lock, nil
}
