package network

import "context"

// MockExplorerService is a test double for ExplorerService.
// All function fields must be set before the corresponding method is called.
type MockExplorerService struct {
	AddressHistoryCountFn func(ctx context.Context, address string) (int, error)
	AddressBalanceFn      func(ctx context.Context, address string) (uint64, error)
	ListUnspentFn         func(ctx context.Context, address string) ([]*UTXO, error)
	BroadcastTxFn         func(ctx context.Context, rawTxHex string) (string, error)
}

func (m *MockExplorerService) AddressHistoryCount(ctx context.Context, address string) (int, error) {
	return m.AddressHistoryCountFn(ctx, address)
}

func (m *MockExplorerService) AddressBalance(ctx context.Context, address string) (uint64, error) {
	return m.AddressBalanceFn(ctx, address)
}

func (m *MockExplorerService) ListUnspent(ctx context.Context, address string) ([]*UTXO, error) {
	return m.ListUnspentFn(ctx, address)
}

func (m *MockExplorerService) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	return m.BroadcastTxFn(ctx, rawTxHex)
}
