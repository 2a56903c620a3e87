package tx

import (
	"bytes"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/stretchr/testify/require"
)

func generateTestKeyPair(t *testing.T) (*ec.PrivateKey, *ec.PublicKey) {
	t.Helper()
	privKey, err := ec.NewPrivateKey()
	require.NoError(t, err)
	return privKey, privKey.PubKey()
}

func testAddress(t *testing.T, pubKey *ec.PublicKey) string {
	t.Helper()
	addr, err := script.NewAddressFromPublicKey(pubKey, true)
	require.NoError(t, err)
	return addr.AddressString
}

// testInput builds a spendable input locked to address. fill keeps TxIDs
// distinct across inputs of the same transaction.
func testInput(t *testing.T, satoshis uint64, address string, fill byte) *Input {
	t.Helper()
	lock, err := BuildP2PKHScriptForAddress(address)
	require.NoError(t, err)
	return &Input{
		TxID:     bytes.Repeat([]byte{fill}, TxIDLen),
		Vout:     0,
		Address:  address,
		Script:   lock,
		Satoshis: satoshis,
	}
}
