// Package royalty implements the per-asset future-rewards (FR) state: the
// bounded generation window of prior owners, the sale-price history, and
// the profit distribution across the window weighted by a geometric decay.
package royalty

import (
	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
)

// FRInfo holds the royalty parameters fixed at mint time.
type FRInfo struct {
	// NumGenerations bounds the sliding window of prior owners eligible
	// for a share of future profit. Must be greater than zero.
	NumGenerations uint32

	// PercentOfProfit is the fraction of each sale's profit set aside as
	// the royalty pool. Must be in (0, 1].
	PercentOfProfit fixmath.Dec

	// SuccessiveRatio is the geometric weight ratio between adjacent
	// generations. Must be at least 1: older owners never receive a
	// smaller weight than newer ones.
	SuccessiveRatio fixmath.Dec
}

// Record is the full FR state of one asset.
//
// Window is ordered oldest-first and holds at most NumGenerations entries;
// after every mutation len(Window) == min(OwnerCount, NumGenerations).
type Record struct {
	FRInfo

	// LastSoldPrice is the price of the most recent priced sale.
	LastSoldPrice fixmath.Dec

	// OwnerCount counts distinct ownership events, including the mint.
	// It only ever increases.
	OwnerCount uint64

	// Window is the bounded FIFO of the most recent owners, oldest first.
	Window []asset.OwnerID
}

// IsZero reports whether the record is the zero value (no record stored).
func (r Record) IsZero() bool {
	return r.NumGenerations == 0 && r.OwnerCount == 0 && len(r.Window) == 0 &&
		r.PercentOfProfit.IsZero() && r.SuccessiveRatio.IsZero() && r.LastSoldPrice.IsZero()
}

// clone returns a deep copy so callers cannot alias store-internal state.
func (r Record) clone() Record {
	cp := r
	cp.Window = make([]asset.OwnerID, len(r.Window))
	copy(cp.Window, r.Window)
	return cp
}

// Allocation is one owner's share of a royalty pool.
type Allocation struct {
	Owner  asset.OwnerID
	Amount fixmath.Dec
}
