package tx

// Input is an unspent output the wallet is about to consume.
type Input struct {
	TxID     []byte `json:"txid"` // 32 bytes, internal byte order
	Vout     uint32 `json:"vout"`
	Address  string `json:"address"`
	Script   []byte `json:"script"` // locking script of the output being spent
	Satoshis uint64 `json:"satoshis"`
}

// SumInputs returns the total satoshis carried by inputs.
func SumInputs(inputs []*Input) uint64 {
	var total uint64
	for _, in := range inputs {
		if in != nil {
			total += in.Satoshis
		}
	}
	return total
}
