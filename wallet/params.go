package wallet

import "fmt"

// ChainParams carries the per-network constants the wallet needs for
// address encoding. The wallet talks to the chain through a block explorer,
// so no peer-to-peer parameters are kept here.
type ChainParams struct {
	Name           string
	AddressVersion byte
	P2SHVersion    byte
	GenesisHash    string
}

// IsMainNet reports whether the params describe the production network.
func (p *ChainParams) IsMainNet() bool { return p.Name == "mainnet" }

// Predefined chain parameters.
var (
	MainNet = ChainParams{
		Name:           "mainnet",
		AddressVersion: 0x00,
		P2SHVersion:    0x05,
		GenesisHash:    "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f",
	}

	TestNet = ChainParams{
		Name:           "testnet",
		AddressVersion: 0x6f,
		P2SHVersion:    0xc4,
		GenesisHash:    "000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943",
	}

	RegTest = ChainParams{
		Name:           "regtest",
		AddressVersion: 0x6f,
		P2SHVersion:    0xc4,
		GenesisHash:    "0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206",
	}
)

var predefined = map[string]*ChainParams{
	"mainnet": &MainNet,
	"testnet": &TestNet,
	"regtest": &RegTest,
}

// ParamsFor returns predefined chain parameters by name.
func ParamsFor(name string) (*ChainParams, error) {
	if p, ok := predefined[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidNetwork, name)
}
