package tx

const (
	// DustLimit is the conventional minimum P2PKH output value in satoshis.
	// The builder does not enforce it; backends apply their own policy.
	DustLimit = uint64(546)

	// DefaultFeeRatePerKB is the default fee rate in sat/KB (1.1 sat/byte).
	DefaultFeeRatePerKB = uint64(1100)

	// TxIDLen is the length of a transaction ID.
	TxIDLen = 32
)

// EstimateFeeForSize returns the fee in satoshis for a transaction of the
// given serialized size, rounded up to the next whole satoshi.
func EstimateFeeForSize(txSizeBytes int, ratePerKB uint64) uint64 {
	if ratePerKB == 0 {
		ratePerKB = DefaultFeeRatePerKB
	}
	fee := uint64(txSizeBytes) * ratePerKB
	// Ceiling division by 1000
	return (fee + 999) / 1000
}
