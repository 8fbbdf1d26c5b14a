package royalty

import (
	"fmt"
	"sync"

	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
)

// RecordStore persists per-asset FR records.
type RecordStore interface {
	// Create initializes the record for an asset with a validated FRInfo
	// and seeds the window with the initial owner.
	Create(id asset.AssetID, info FRInfo, initialOwner asset.OwnerID) error

	// Get returns the record for an asset. An absent record is the zero
	// value, not an error.
	Get(id asset.AssetID) (Record, error)

	// PushOwner appends an owner to the window, increments OwnerCount and
	// evicts the oldest entry when the window exceeds NumGenerations.
	PushOwner(id asset.AssetID, owner asset.OwnerID) error

	// SetLastSoldPrice records the price of the most recent sale.
	SetLastSoldPrice(id asset.AssetID, price fixmath.Dec) error

	// Destroy resets the record to its zero value.
	Destroy(id asset.AssetID) error
}

// MemRecordStore is an in-memory implementation of RecordStore.
type MemRecordStore struct {
	mu      sync.RWMutex
	records map[asset.AssetID]Record
}

// Compile-time interface check.
var _ RecordStore = (*MemRecordStore)(nil)

// NewMemRecordStore creates a new in-memory record store.
func NewMemRecordStore() *MemRecordStore {
	return &MemRecordStore{records: make(map[asset.AssetID]Record)}
}

// Create initializes the record for an asset.
func (s *MemRecordStore) Create(id asset.AssetID, info FRInfo, initialOwner asset.OwnerID) error {
	if err := ValidateFRInfo(info); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.records[id]; ok && !r.IsZero() {
		return fmt.Errorf("%w: %s", ErrRecordExists, id)
	}

	s.records[id] = Record{
		FRInfo:     info,
		OwnerCount: 1,
		Window:     []asset.OwnerID{initialOwner},
	}
	return nil
}

// Get returns the record for an asset, or the zero value when absent.
func (s *MemRecordStore) Get(id asset.AssetID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id].clone(), nil
}

// PushOwner appends an owner to the window, evicting beyond NumGenerations.
func (s *MemRecordStore) PushOwner(id asset.AssetID, owner asset.OwnerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.IsZero() {
		return fmt.Errorf("%w: %s", ErrNoRecord, id)
	}

	r = r.clone()
	pushOwner(&r, owner)
	s.records[id] = r
	return nil
}

// SetLastSoldPrice records the price of the most recent sale.
func (s *MemRecordStore) SetLastSoldPrice(id asset.AssetID, price fixmath.Dec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.IsZero() {
		return fmt.Errorf("%w: %s", ErrNoRecord, id)
	}

	r = r.clone()
	r.LastSoldPrice = price
	s.records[id] = r
	return nil
}

// Destroy resets the record to its zero value.
func (s *MemRecordStore) Destroy(id asset.AssetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// pushOwner applies the generation shift to a record in place: append the
// new owner, bump the count, and drop the oldest entry once the window
// exceeds NumGenerations.
func pushOwner(r *Record, owner asset.OwnerID) {
	r.Window = append(r.Window, owner)
	r.OwnerCount++
	if uint64(len(r.Window)) > uint64(r.NumGenerations) {
		r.Window = r.Window[1:]
	}
}
