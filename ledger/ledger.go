// Package ledger implements the pull-based claim ledger: one accumulated
// claimable balance per owner across all assets, credited by distribution
// events and withdrawn in full by a release.
//
// Release follows checks-effects-interactions: the stored balance is
// zeroed before the payout transfer is issued, so a reentrant call made
// during the transfer observes a zero balance. A failed transfer restores
// the balance, making release all-or-nothing.
package ledger

import (
	"fmt"
	"sync"

	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
)

// PayoutSender moves released value to its owner. Implementations are
// injected by the host environment; the ledger treats its own state as
// already settled before Send is called.
type PayoutSender interface {
	Send(owner asset.OwnerID, amount fixmath.Dec) error
}

// SinkSender discards payouts. Useful when the host environment settles
// value out of band and only the ledger bookkeeping matters.
type SinkSender struct{}

// Send implements PayoutSender as a no-op.
func (SinkSender) Send(asset.OwnerID, fixmath.Dec) error { return nil }

// Ledger stores per-owner claimable balances.
type Ledger interface {
	// Credit adds amount to the owner's balance.
	Credit(owner asset.OwnerID, amount fixmath.Dec) error

	// BalanceOf returns the owner's claimable balance.
	BalanceOf(owner asset.OwnerID) (fixmath.Dec, error)

	// Release withdraws the owner's entire balance through send. A zero
	// balance fails with ErrNoPaymentDue. The returned amount is what was
	// transferred.
	Release(owner asset.OwnerID, send PayoutSender) (fixmath.Dec, error)
}

// MemLedger is an in-memory implementation of Ledger.
type MemLedger struct {
	mu       sync.Mutex
	balances map[asset.OwnerID]fixmath.Dec
}

// Compile-time interface check.
var _ Ledger = (*MemLedger)(nil)

// NewMemLedger creates a new in-memory claim ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{balances: make(map[asset.OwnerID]fixmath.Dec)}
}

// Credit adds amount to the owner's balance.
func (l *MemLedger) Credit(owner asset.OwnerID, amount fixmath.Dec) error {
	if amount.IsZero() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sum, err := l.balances[owner].Add(amount)
	if err != nil {
		return fmt.Errorf("ledger: credit %s: %w", owner, err)
	}
	l.balances[owner] = sum
	return nil
}

// BalanceOf returns the owner's claimable balance.
func (l *MemLedger) BalanceOf(owner asset.OwnerID) (fixmath.Dec, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[owner], nil
}

// Release withdraws the owner's entire balance through send.
func (l *MemLedger) Release(owner asset.OwnerID, send PayoutSender) (fixmath.Dec, error) {
	l.mu.Lock()
	amount := l.balances[owner]
	if amount.IsZero() {
		l.mu.Unlock()
		return fixmath.Zero(), fmt.Errorf("%w: %s", ErrNoPaymentDue, owner)
	}

	// Zero the balance before the transfer leaves the ledger.
	delete(l.balances, owner)
	l.mu.Unlock()

	if err := send.Send(owner, amount); err != nil {
		l.mu.Lock()
		restored, addErr := l.balances[owner].Add(amount)
		if addErr == nil {
			l.balances[owner] = restored
		}
		l.mu.Unlock()
		return fixmath.Zero(), fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	return amount, nil
}
