package royalty

import (
	"fmt"

	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
)

// Creditor accumulates claimable royalty balances per owner.
type Creditor interface {
	Credit(owner asset.OwnerID, amount fixmath.Dec) error
}

// Profit returns price - last clamped at zero. A below-cost resale is
// valid and simply yields no profit.
func Profit(price, last fixmath.Dec) fixmath.Dec {
	p, err := price.Sub(last)
	if err != nil {
		return fixmath.Zero()
	}
	return p
}

// Pool returns floor(profit * percent), the royalty set aside from a sale.
func Pool(profit, percent fixmath.Dec) (fixmath.Dec, error) {
	return profit.Mul(percent)
}

// Allocate splits pool across the generation window, oldest first.
//
// Position i (0 = oldest) carries weight ratio^(n-1-i), so the oldest
// owner holds the largest weight. Each share is floor(pool * w_i / sum),
// computed independently; the truncated remainder is dust and is never
// re-granted to any position. Consequently the sum of shares never
// exceeds pool.
func Allocate(window []asset.OwnerID, ratio, pool fixmath.Dec) ([]Allocation, error) {
	n := len(window)
	if n == 0 {
		return nil, ErrEmptyWindow
	}
	if pool.IsZero() {
		return nil, nil
	}

	// Build weights newest to oldest by repeated multiplication, so each
	// exponent step truncates exactly once.
	weights := make([]fixmath.Dec, n)
	w := fixmath.One()
	sum := fixmath.Zero()
	for i := n - 1; i >= 0; i-- {
		weights[i] = w
		var err error
		if sum, err = sum.Add(w); err != nil {
			return nil, fmt.Errorf("royalty: weight sum: %w", err)
		}
		if i > 0 {
			if w, err = w.Mul(ratio); err != nil {
				return nil, fmt.Errorf("royalty: weight: %w", err)
			}
		}
	}

	allocs := make([]Allocation, n)
	for i, owner := range window {
		share, err := fixmath.MulDiv(pool, weights[i], sum)
		if err != nil {
			return nil, fmt.Errorf("royalty: share: %w", err)
		}
		allocs[i] = Allocation{Owner: owner, Amount: share}
	}
	return allocs, nil
}

// Settle runs the full distribution step for one sale: compute the pool
// from the profit over the record's last sold price, credit every owner in
// the pre-sale window, then advance the generation window with the buyer
// and record the new price. The window advance happens regardless of
// profit, so gifts and below-cost sales still shift generations.
//
// The returned pool is zero when the sale produced no royalty.
func Settle(store RecordStore, creditor Creditor, id asset.AssetID, price fixmath.Dec, buyer asset.OwnerID) (fixmath.Dec, error) {
	rec, err := store.Get(id)
	if err != nil {
		return fixmath.Zero(), err
	}
	if rec.IsZero() {
		return fixmath.Zero(), fmt.Errorf("%w: %s", ErrNoRecord, id)
	}
	if len(rec.Window) == 0 {
		return fixmath.Zero(), fmt.Errorf("%w: %s", ErrEmptyWindow, id)
	}

	pool := fixmath.Zero()
	profit := Profit(price, rec.LastSoldPrice)
	if !profit.IsZero() {
		if pool, err = Pool(profit, rec.PercentOfProfit); err != nil {
			return fixmath.Zero(), err
		}
	}

	if !pool.IsZero() {
		allocs, err := Allocate(rec.Window, rec.SuccessiveRatio, pool)
		if err != nil {
			return fixmath.Zero(), err
		}
		for _, a := range allocs {
			if a.Amount.IsZero() {
				continue
			}
			if err := creditor.Credit(a.Owner, a.Amount); err != nil {
				return fixmath.Zero(), fmt.Errorf("royalty: credit %s: %w", a.Owner, err)
			}
		}
	}

	if err := store.SetLastSoldPrice(id, price); err != nil {
		return fixmath.Zero(), err
	}
	if err := store.PushOwner(id, buyer); err != nil {
		return fixmath.Zero(), err
	}
	return pool, nil
}
