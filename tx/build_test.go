package tx

import (
	"bytes"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_RecipientAndChange(t *testing.T) {
	spendKey, spendPub := generateTestKeyPair(t)
	_, recipientPub := generateTestKeyPair(t)
	_, changePub := generateTestKeyPair(t)

	owner := testAddress(t, spendPub)
	recipient := testAddress(t, recipientPub)
	changeAddr := testAddress(t, changePub)

	built, err := Build(BuildParams{
		Inputs: []*Input{
			testInput(t, 1000, owner, 0x01),
			testInput(t, 2000, owner, 0x02),
		},
		Recipient:     recipient,
		ChangeAddress: changeAddr,
		Amount:        1500,
		Fee:           500,
		SigningKey:    spendKey,
	})
	require.NoError(t, err)

	require.Len(t, built.Outputs, 2)
	assert.Equal(t, uint64(1500), built.Outputs[0].Satoshis)
	assert.Equal(t, uint64(1000), built.Outputs[1].Satoshis)

	recipientScript, err := BuildP2PKHScriptForAddress(recipient)
	require.NoError(t, err)
	changeScript, err := BuildP2PKHScriptForAddress(changeAddr)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(recipientScript, []byte(*built.Outputs[0].LockingScript)))
	assert.True(t, bytes.Equal(changeScript, []byte(*built.Outputs[1].LockingScript)))
}

func TestBuild_ExactSpendNoChange(t *testing.T) {
	spendKey, spendPub := generateTestKeyPair(t)
	_, recipientPub := generateTestKeyPair(t)
	_, changePub := generateTestKeyPair(t)

	owner := testAddress(t, spendPub)

	built, err := Build(BuildParams{
		Inputs: []*Input{
			testInput(t, 1000, owner, 0x01),
			testInput(t, 2000, owner, 0x02),
		},
		Recipient:     testAddress(t, recipientPub),
		ChangeAddress: testAddress(t, changePub),
		Amount:        2500,
		Fee:           500,
		SigningKey:    spendKey,
	})
	require.NoError(t, err)

	require.Len(t, built.Outputs, 1, "zero change should not produce a change output")
	assert.Equal(t, uint64(2500), built.Outputs[0].Satoshis)
}

func TestBuild_SelfPaymentMergesOutputs(t *testing.T) {
	spendKey, spendPub := generateTestKeyPair(t)
	_, destPub := generateTestKeyPair(t)

	owner := testAddress(t, spendPub)
	dest := testAddress(t, destPub)

	built, err := Build(BuildParams{
		Inputs:        []*Input{testInput(t, 3000, owner, 0x01)},
		Recipient:     dest,
		ChangeAddress: dest,
		Amount:        1500,
		Fee:           500,
		SigningKey:    spendKey,
	})
	require.NoError(t, err)

	require.Len(t, built.Outputs, 1)
	assert.Equal(t, uint64(2500), built.Outputs[0].Satoshis, "amount and change merge into one output")

	destScript, err := BuildP2PKHScriptForAddress(dest)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(destScript, []byte(*built.Outputs[0].LockingScript)))
}

func TestBuild_SelfPaymentZeroChange(t *testing.T) {
	spendKey, spendPub := generateTestKeyPair(t)
	_, destPub := generateTestKeyPair(t)

	owner := testAddress(t, spendPub)
	dest := testAddress(t, destPub)

	built, err := Build(BuildParams{
		Inputs:        []*Input{testInput(t, 2000, owner, 0x01)},
		Recipient:     dest,
		ChangeAddress: dest,
		Amount:        1500,
		Fee:           500,
		SigningKey:    spendKey,
	})
	require.NoError(t, err)

	require.Len(t, built.Outputs, 1)
	assert.Equal(t, uint64(1500), built.Outputs[0].Satoshis)
}

func TestBuild_ZeroAmount(t *testing.T) {
	spendKey, spendPub := generateTestKeyPair(t)
	_, recipientPub := generateTestKeyPair(t)
	_, changePub := generateTestKeyPair(t)

	owner := testAddress(t, spendPub)

	// The whole input goes to fees; the recipient output carries zero
	// satoshis. Dust policy belongs to the backend, not the builder.
	built, err := Build(BuildParams{
		Inputs:        []*Input{testInput(t, 1000, owner, 0x01)},
		Recipient:     testAddress(t, recipientPub),
		ChangeAddress: testAddress(t, changePub),
		Amount:        0,
		Fee:           1000,
		SigningKey:    spendKey,
	})
	require.NoError(t, err)

	require.Len(t, built.Outputs, 1)
	assert.Equal(t, uint64(0), built.Outputs[0].Satoshis)
}

func TestBuild_InsufficientFunds(t *testing.T) {
	spendKey, spendPub := generateTestKeyPair(t)
	_, recipientPub := generateTestKeyPair(t)
	_, changePub := generateTestKeyPair(t)

	owner := testAddress(t, spendPub)

	_, err := Build(BuildParams{
		Inputs: []*Input{
			testInput(t, 1000, owner, 0x01),
			testInput(t, 2000, owner, 0x02),
		},
		Recipient:     testAddress(t, recipientPub),
		ChangeAddress: testAddress(t, changePub),
		Amount:        2501,
		Fee:           500,
		SigningKey:    spendKey,
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestBuild_SignsEveryInput(t *testing.T) {
	spendKey, spendPub := generateTestKeyPair(t)
	_, recipientPub := generateTestKeyPair(t)

	owner := testAddress(t, spendPub)

	built, err := Build(BuildParams{
		Inputs: []*Input{
			testInput(t, 1000, owner, 0x01),
			testInput(t, 2000, owner, 0x02),
			testInput(t, 4000, owner, 0x03),
		},
		Recipient:     testAddress(t, recipientPub),
		ChangeAddress: owner,
		Amount:        5000,
		Fee:           500,
		SigningKey:    spendKey,
	})
	require.NoError(t, err)

	// Round-trip through serialization so the assertions see exactly what
	// a backend would receive.
	parsed, err := transaction.NewTransactionFromBytes(built.Bytes())
	require.NoError(t, err)
	require.Equal(t, 3, parsed.InputCount())
	for i, in := range parsed.Inputs {
		require.NotNil(t, in.UnlockingScript, "input %d", i)
		assert.Greater(t, len(*in.UnlockingScript), 0, "input %d should carry a signature", i)
	}
}

func TestBuild_Validation(t *testing.T) {
	spendKey, spendPub := generateTestKeyPair(t)
	_, recipientPub := generateTestKeyPair(t)

	owner := testAddress(t, spendPub)
	recipient := testAddress(t, recipientPub)
	good := testInput(t, 5000, owner, 0x01)

	tests := []struct {
		name    string
		params  BuildParams
		wantErr error
	}{
		{
			name:    "no inputs",
			params:  BuildParams{Recipient: recipient, ChangeAddress: owner, SigningKey: spendKey},
			wantErr: ErrNoInputs,
		},
		{
			name: "no inputs with spend reads as insufficient funds",
			params: BuildParams{
				Recipient:     recipient,
				ChangeAddress: owner,
				Amount:        100,
				SigningKey:    spendKey,
			},
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "nil signing key",
			params:  BuildParams{Inputs: []*Input{good}, Recipient: recipient, ChangeAddress: owner},
			wantErr: ErrNilParam,
		},
		{
			name:    "nil input",
			params:  BuildParams{Inputs: []*Input{nil}, Recipient: recipient, ChangeAddress: owner, SigningKey: spendKey},
			wantErr: ErrInvalidInput,
		},
		{
			name: "short txid",
			params: BuildParams{
				Inputs:        []*Input{{TxID: []byte{0x01}, Script: good.Script, Satoshis: 5000}},
				Recipient:     recipient,
				ChangeAddress: owner,
				SigningKey:    spendKey,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "empty script",
			params: BuildParams{
				Inputs:        []*Input{{TxID: good.TxID, Satoshis: 5000}},
				Recipient:     recipient,
				ChangeAddress: owner,
				SigningKey:    spendKey,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad recipient",
			params:  BuildParams{Inputs: []*Input{good}, Recipient: "not-an-address", ChangeAddress: owner, SigningKey: spendKey},
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "bad change address",
			params:  BuildParams{Inputs: []*Input{good}, Recipient: recipient, ChangeAddress: "nope", SigningKey: spendKey},
			wantErr: ErrInvalidAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuild_ZeroFeeDraftParses(t *testing.T) {
	spendKey, spendPub := generateTestKeyPair(t)
	_, recipientPub := generateTestKeyPair(t)

	owner := testAddress(t, spendPub)

	// Fee 0 is the sizing pass used by fee estimation; it must produce a
	// fully signed, serializable transaction like any other build.
	built, err := Build(BuildParams{
		Inputs:        []*Input{testInput(t, 2000, owner, 0x01)},
		Recipient:     testAddress(t, recipientPub),
		ChangeAddress: owner,
		Amount:        2000,
		Fee:           0,
		SigningKey:    spendKey,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, built.Bytes())

	parsed, err := transaction.NewTransactionFromBytes(built.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, parsed.InputCount())
}

func TestBuildP2PKHScriptForAddress(t *testing.T) {
	_, pubKey := generateTestKeyPair(t)

	scriptBytes, err := BuildP2PKHScriptForAddress(testAddress(t, pubKey))
	require.NoError(t, err)
	// P2PKH script is exactly 25 bytes:
	// OP_DUP(1) + OP_HASH160(1) + OP_DATA_20(1) + hash(20) + OP_EQUALVERIFY(1) + OP_CHECKSIG(1)
	assert.Len(t, scriptBytes, 25)
	assert.Equal(t, byte(0x76), scriptBytes[0])
	assert.Equal(t, byte(0xa9), scriptBytes[1])
}

func TestBuildP2PKHScriptForAddress_Invalid(t *testing.T) {
	_, err := BuildP2PKHScriptForAddress("garbage")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestSumInputs(t *testing.T) {
	assert.Equal(t, uint64(0), SumInputs(nil))
	assert.Equal(t, uint64(0), SumInputs([]*Input{nil}))
	assert.Equal(t, uint64(700), SumInputs([]*Input{
		{Satoshis: 200},
		nil,
		{Satoshis: 500},
	}))
}

func BenchmarkBuild(b *testing.B) {
	privKey, err := ec.NewPrivateKey()
	if err != nil {
		b.Fatal(err)
	}
	addr, err := script.NewAddressFromPublicKey(privKey.PubKey(), true)
	if err != nil {
		b.Fatal(err)
	}
	owner := addr.AddressString
	lock, err := BuildP2PKHScriptForAddress(owner)
	if err != nil {
		b.Fatal(err)
	}
	params := BuildParams{
		Inputs: []*Input{{
			TxID:     bytes.Repeat([]byte{0x01}, TxIDLen),
			Vout:     0,
			Address:  owner,
			Script:   lock,
			Satoshis: 100000,
		}},
		Recipient:     owner,
		ChangeAddress: owner,
		Amount:        50000,
		Fee:           500,
		SigningKey:    privKey,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(params); err != nil {
			b.Fatal(err)
		}
	}
}
