// Package listing maintains the per-asset sale listings consumed by the
// market's buy path: price, seller and an active flag.
//
// The book stores listings; it does not know who currently owns an asset.
// A listing whose seller has since transferred the asset away is stale and
// is treated as inactive by the buy protocol.
package listing

import (
	"sync"

	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
)

// Listing is a single asset's sale offer. The zero value means "unlisted".
type Listing struct {
	Price  fixmath.Dec
	Seller asset.OwnerID
	Active bool
}

// Book stores per-asset listings.
type Book interface {
	// List creates or overwrites the listing for an asset. The caller's
	// owner-or-approved check is supplied by the orchestrator; a false
	// value fails with ErrNotAuthorized. Zero prices are rejected.
	List(id asset.AssetID, price fixmath.Dec, seller asset.OwnerID, authorized bool) error

	// Unlist clears the listing for an asset.
	Unlist(id asset.AssetID, authorized bool) error

	// Get returns the listing for an asset, or the zero value when absent.
	Get(id asset.AssetID) (Listing, error)

	// Clear removes the listing unconditionally. Used by the orchestrator
	// after a consumed buy and on burn.
	Clear(id asset.AssetID) error
}

// MemBook is an in-memory implementation of Book.
type MemBook struct {
	mu       sync.RWMutex
	listings map[asset.AssetID]Listing
}

// Compile-time interface check.
var _ Book = (*MemBook)(nil)

// NewMemBook creates a new in-memory listing book.
func NewMemBook() *MemBook {
	return &MemBook{listings: make(map[asset.AssetID]Listing)}
}

// List creates or overwrites the listing for an asset.
func (b *MemBook) List(id asset.AssetID, price fixmath.Dec, seller asset.OwnerID, authorized bool) error {
	if !authorized {
		return ErrNotAuthorized
	}
	if price.IsZero() {
		return ErrInvalidPrice
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listings[id] = Listing{Price: price, Seller: seller, Active: true}
	return nil
}

// Unlist clears the listing for an asset.
func (b *MemBook) Unlist(id asset.AssetID, authorized bool) error {
	if !authorized {
		return ErrNotAuthorized
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listings, id)
	return nil
}

// Get returns the listing for an asset, or the zero value when absent.
func (b *MemBook) Get(id asset.AssetID) (Listing, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.listings[id], nil
}

// Clear removes the listing unconditionally.
func (b *MemBook) Clear(id asset.AssetID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listings, id)
	return nil
}
