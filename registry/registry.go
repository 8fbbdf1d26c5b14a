// Package registry provides a minimal in-memory transferable-asset
// registry: current owner per asset, per-asset approvals and per-owner
// operator approvals. It supplies the market orchestrator with the
// "current owner", "owner or approved" and "transfer" collaborator
// operations. Enumeration and per-asset metadata are out of scope.
package registry

import (
	"fmt"
	"sync"

	"github.com/untrading/libnfr-go/asset"
)

type approvalKey struct {
	owner    asset.OwnerID
	operator asset.OwnerID
}

// MemRegistry is an in-memory ownership and approval registry.
type MemRegistry struct {
	mu        sync.RWMutex
	owners    map[asset.AssetID]asset.OwnerID
	approved  map[asset.AssetID]asset.OwnerID // one approvee per asset
	operators map[approvalKey]bool            // blanket operator grants
}

// NewMemRegistry creates an empty registry.
func NewMemRegistry() *MemRegistry {
	return &MemRegistry{
		owners:    make(map[asset.AssetID]asset.OwnerID),
		approved:  make(map[asset.AssetID]asset.OwnerID),
		operators: make(map[approvalKey]bool),
	}
}

// Register records a newly minted asset under its first owner.
func (r *MemRegistry) Register(id asset.AssetID, owner asset.OwnerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owners[id]; ok {
		return fmt.Errorf("%w: %s", ErrAssetExists, id)
	}
	r.owners[id] = owner
	return nil
}

// Remove forgets a burned asset and its approval.
func (r *MemRegistry) Remove(id asset.AssetID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owners[id]; !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	delete(r.owners, id)
	delete(r.approved, id)
	return nil
}

// OwnerOf returns the current owner of an asset.
func (r *MemRegistry) OwnerOf(id asset.AssetID) (asset.OwnerID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.owners[id]
	return owner, ok
}

// Approve grants spender the right to act on a single asset. Only the
// current owner may grant it; a zero spender revokes.
func (r *MemRegistry) Approve(caller, spender asset.OwnerID, id asset.AssetID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.owners[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if owner != caller {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	if spender.IsZero() {
		delete(r.approved, id)
	} else {
		r.approved[id] = spender
	}
	return nil
}

// SetOperator grants or revokes operator's right to act on all of owner's
// assets.
func (r *MemRegistry) SetOperator(owner, operator asset.OwnerID, granted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := approvalKey{owner: owner, operator: operator}
	if granted {
		r.operators[key] = true
	} else {
		delete(r.operators, key)
	}
}

// IsAuthorized reports whether caller is the asset's owner, its per-asset
// approvee, or an operator for its owner.
func (r *MemRegistry) IsAuthorized(caller asset.OwnerID, id asset.AssetID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[id]
	if !ok {
		return false
	}
	if owner == caller {
		return true
	}
	if r.approved[id] == caller {
		return true
	}
	return r.operators[approvalKey{owner: owner, operator: caller}]
}

// Transfer moves ownership from one owner to another. The per-asset
// approval does not survive an ownership change.
func (r *MemRegistry) Transfer(id asset.AssetID, from, to asset.OwnerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.owners[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if owner != from {
		return fmt.Errorf("%w: %s owns %s", ErrNotOwner, owner, id)
	}
	r.owners[id] = to
	delete(r.approved, id)
	return nil
}
