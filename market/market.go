// Package market implements the sale orchestrator: the protocol state
// machine that drives minting, listings, priced and zero-profit transfers,
// royalty distribution and claim release over the record store, listing
// book, claim ledger and the external asset registry.
//
// Every entry point runs to completion under a single mutex, so no caller
// ever observes a partially-updated record, and operations on the same
// asset are totally ordered by invocation order. Each operation validates
// its inputs fully before the first mutation; a rejected operation leaves
// no state change behind.
package market

import (
	"fmt"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/rs/zerolog"

	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
	"github.com/untrading/libnfr-go/ledger"
	"github.com/untrading/libnfr-go/listing"
	"github.com/untrading/libnfr-go/royalty"
)

// Registry is the external asset-registry collaborator. It owns ownership
// and approval semantics; the market only consumes them.
type Registry interface {
	// OwnerOf returns the current owner of an asset.
	OwnerOf(id asset.AssetID) (asset.OwnerID, bool)

	// IsAuthorized reports whether caller is owner-or-approved for the asset.
	IsAuthorized(caller asset.OwnerID, id asset.AssetID) bool

	// Register records a newly minted asset under its first owner.
	Register(id asset.AssetID, owner asset.OwnerID) error

	// Remove forgets a burned asset.
	Remove(id asset.AssetID) error

	// Transfer moves ownership from one owner to another.
	Transfer(id asset.AssetID, from, to asset.OwnerID) error
}

// Config carries the market's collaborators.
type Config struct {
	Records  royalty.RecordStore
	Book     listing.Book
	Ledger   ledger.Ledger
	Registry Registry
	Payouts  ledger.PayoutSender

	// Bus receives FRDistributed/FRClaimed notifications. Optional.
	Bus EventBus.Bus

	// Logger for state transitions. Optional; defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Market is the sale orchestrator.
type Market struct {
	mu sync.Mutex

	records  royalty.RecordStore
	book     listing.Book
	ledger   ledger.Ledger
	registry Registry
	payouts  ledger.PayoutSender
	bus      EventBus.Bus
	log      zerolog.Logger

	defaults *royalty.FRInfo // nil until SetDefaultFRInfo
	nonce    uint64          // mint counter for asset-id derivation
}

// New creates a market from its collaborators.
func New(cfg Config) (*Market, error) {
	switch {
	case cfg.Records == nil:
		return nil, fmt.Errorf("%w: record store", ErrNilDependency)
	case cfg.Book == nil:
		return nil, fmt.Errorf("%w: listing book", ErrNilDependency)
	case cfg.Ledger == nil:
		return nil, fmt.Errorf("%w: claim ledger", ErrNilDependency)
	case cfg.Registry == nil:
		return nil, fmt.Errorf("%w: registry", ErrNilDependency)
	case cfg.Payouts == nil:
		return nil, fmt.Errorf("%w: payout sender", ErrNilDependency)
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Market{
		records:  cfg.Records,
		book:     cfg.Book,
		ledger:   cfg.Ledger,
		registry: cfg.Registry,
		payouts:  cfg.Payouts,
		bus:      cfg.Bus,
		log:      log,
	}, nil
}

// Mint registers a new asset owned by owner and creates its FR record.
func (m *Market) Mint(caller, owner asset.OwnerID, info royalty.FRInfo) (asset.AssetID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mint(caller, owner, info)
}

// MintWithDefault mints using the process-wide default FR parameters.
func (m *Market) MintWithDefault(caller, owner asset.OwnerID) (asset.AssetID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.defaults == nil {
		return asset.AssetID{}, ErrNoDefaultConfigured
	}
	return m.mint(caller, owner, *m.defaults)
}

// mint derives a fresh asset id, registers it and seeds the FR record.
// Callers hold m.mu.
func (m *Market) mint(caller, owner asset.OwnerID, info royalty.FRInfo) (asset.AssetID, error) {
	if err := royalty.ValidateFRInfo(info); err != nil {
		return asset.AssetID{}, err
	}

	id := asset.DeriveAssetID(owner, m.nonce)
	if err := m.registry.Register(id, owner); err != nil {
		return asset.AssetID{}, err
	}
	m.nonce++

	if err := m.records.Create(id, info, owner); err != nil {
		_ = m.registry.Remove(id)
		return asset.AssetID{}, err
	}

	m.log.Info().
		Stringer("asset", id).
		Stringer("owner", owner).
		Stringer("caller", caller).
		Uint32("generations", info.NumGenerations).
		Msg("asset minted")
	return id, nil
}

// SetDefaultFRInfo configures the parameters used by MintWithDefault.
func (m *Market) SetDefaultFRInfo(info royalty.FRInfo) error {
	if err := royalty.ValidateFRInfo(info); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cp := info
	m.defaults = &cp
	return nil
}

// Burn destroys an asset: its FR record, any listing, and the registry
// entry. Requires the caller to be owner-or-approved.
func (m *Market) Burn(caller asset.OwnerID, id asset.AssetID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.registry.OwnerOf(id); !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if !m.registry.IsAuthorized(caller, id) {
		return listing.ErrNotAuthorized
	}

	if err := m.records.Destroy(id); err != nil {
		return err
	}
	if err := m.book.Clear(id); err != nil {
		return err
	}
	if err := m.registry.Remove(id); err != nil {
		return err
	}

	m.log.Info().Stringer("asset", id).Stringer("caller", caller).Msg("asset burned")
	return nil
}

// List offers an asset for sale at price. The listing's seller is the
// asset's current owner, so a later transfer leaves the listing stale.
func (m *Market) List(caller asset.OwnerID, id asset.AssetID, price fixmath.Dec) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	owner, ok := m.registry.OwnerOf(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if err := m.book.List(id, price, owner, m.registry.IsAuthorized(caller, id)); err != nil {
		return err
	}

	m.log.Info().
		Stringer("asset", id).
		Stringer("seller", owner).
		Stringer("price", price).
		Msg("asset listed")
	return nil
}

// Unlist withdraws an asset's listing.
func (m *Market) Unlist(caller asset.OwnerID, id asset.AssetID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.book.Unlist(id, m.registry.IsAuthorized(caller, id)); err != nil {
		return err
	}
	m.log.Info().Stringer("asset", id).Stringer("caller", caller).Msg("asset unlisted")
	return nil
}

// Buy purchases a listed asset at its quoted price. The paid amount must
// equal the listing price exactly.
func (m *Market) Buy(buyer asset.OwnerID, id asset.AssetID, paid fixmath.Dec) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.book.Get(id)
	if err != nil {
		return err
	}
	if !l.Active {
		return fmt.Errorf("%w: %s", ErrNotListed, id)
	}

	// A stale listing, whose seller has since transferred the asset
	// away, is inert.
	owner, ok := m.registry.OwnerOf(id)
	if !ok || owner != l.Seller {
		return fmt.Errorf("%w: %s", ErrNotListed, id)
	}

	if paid.Cmp(l.Price) != 0 {
		return fmt.Errorf("%w: paid %s, price %s", ErrPriceMismatch, paid, l.Price)
	}

	if err := m.registry.Transfer(id, l.Seller, buyer); err != nil {
		return err
	}
	pool, err := royalty.Settle(m.records, m.ledger, id, l.Price, buyer)
	if err != nil {
		return err
	}
	if err := m.book.Clear(id); err != nil {
		return err
	}

	m.notifyDistributed(id, l.Price, pool)
	m.log.Info().
		Stringer("asset", id).
		Stringer("seller", l.Seller).
		Stringer("buyer", buyer).
		Stringer("price", l.Price).
		Stringer("royalty", pool).
		Msg("asset sold")
	return nil
}

// TransferWithPrice performs a direct priced sale from one owner to
// another, bypassing the listing book. The caller must be owner-or-approved
// for the asset and from must currently own it.
func (m *Market) TransferWithPrice(caller, from, to asset.OwnerID, id asset.AssetID, price, paid fixmath.Dec) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorizeTransfer(caller, from, id); err != nil {
		return err
	}
	if paid.Cmp(price) != 0 {
		return fmt.Errorf("%w: paid %s, price %s", ErrPriceMismatch, paid, price)
	}

	if err := m.registry.Transfer(id, from, to); err != nil {
		return err
	}
	pool, err := royalty.Settle(m.records, m.ledger, id, price, to)
	if err != nil {
		return err
	}

	m.notifyDistributed(id, price, pool)
	m.log.Info().
		Stringer("asset", id).
		Stringer("from", from).
		Stringer("to", to).
		Stringer("price", price).
		Stringer("royalty", pool).
		Msg("asset transferred with price")
	return nil
}

// TransferZeroProfit performs a plain ownership transfer carrying no
// price: a gift or other non-sale movement. The generation window still
// advances, but the sale price is carried over so no profit is realized
// and no royalty accrues.
func (m *Market) TransferZeroProfit(caller, from, to asset.OwnerID, id asset.AssetID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorizeTransfer(caller, from, id); err != nil {
		return err
	}

	rec, err := m.records.Get(id)
	if err != nil {
		return err
	}
	if rec.IsZero() {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}

	if err := m.registry.Transfer(id, from, to); err != nil {
		return err
	}
	pool, err := royalty.Settle(m.records, m.ledger, id, rec.LastSoldPrice, to)
	if err != nil {
		return err
	}

	m.notifyDistributed(id, rec.LastSoldPrice, pool)
	m.log.Info().
		Stringer("asset", id).
		Stringer("from", from).
		Stringer("to", to).
		Msg("asset transferred without profit")
	return nil
}

// ReleaseFR withdraws the caller's entire accumulated royalty balance.
func (m *Market) ReleaseFR(owner asset.OwnerID) (fixmath.Dec, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	amount, err := m.ledger.Release(owner, m.payouts)
	if err != nil {
		return fixmath.Zero(), err
	}

	if m.bus != nil {
		m.bus.Publish(TopicFRClaimed, FRClaimed{Owner: owner, Amount: amount})
	}
	m.log.Info().Stringer("owner", owner).Stringer("amount", amount).Msg("royalty claimed")
	return amount, nil
}

// RetrieveFRInfo returns the asset's FR record; absent assets yield the
// zero record.
func (m *Market) RetrieveFRInfo(id asset.AssetID) (royalty.Record, error) {
	return m.records.Get(id)
}

// RetrieveAllottedFR returns the owner's accumulated claimable balance.
func (m *Market) RetrieveAllottedFR(owner asset.OwnerID) (fixmath.Dec, error) {
	return m.ledger.BalanceOf(owner)
}

// RetrieveListInfo returns the asset's listing; absent assets yield the
// zero listing.
func (m *Market) RetrieveListInfo(id asset.AssetID) (listing.Listing, error) {
	return m.book.Get(id)
}

// authorizeTransfer validates a direct transfer: the asset exists, from
// currently owns it, and caller is owner-or-approved.
func (m *Market) authorizeTransfer(caller, from asset.OwnerID, id asset.AssetID) error {
	owner, ok := m.registry.OwnerOf(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if owner != from {
		return fmt.Errorf("%w: %s does not own %s", listing.ErrNotAuthorized, from, id)
	}
	if !m.registry.IsAuthorized(caller, id) {
		return listing.ErrNotAuthorized
	}
	return nil
}

// notifyDistributed publishes the distribution notification. Fired on
// every settled transfer, including zero-royalty ones.
func (m *Market) notifyDistributed(id asset.AssetID, price, pool fixmath.Dec) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(TopicFRDistributed, FRDistributed{AssetID: id, SalePrice: price, Royalty: pool})
}
