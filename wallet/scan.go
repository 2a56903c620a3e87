package wallet

import "context"

// updateIndex advances the wallet index until it points at an address with
// no transaction history. Every index below the result has history, so the
// index never moves backward; once stable, repeated calls are no-ops until
// the backend reports new activity.
//
// Lookups are issued one index at a time, in increasing order. The walk
// stops at MaxAddressIndex without checking it: a wallet that has used
// every address keeps MaxAddressIndex as its frontier.
func (w *Wallet) updateIndex(ctx context.Context) error {
	for w.index < MaxAddressIndex {
		addr, err := w.keys.AddressAt(w.index)
		if err != nil {
			return err
		}
		count, err := w.svc.AddressHistoryCount(ctx, addr)
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		w.index++
	}
	return nil
}
