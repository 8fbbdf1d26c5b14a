package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/untrading/libnfr-go/asset"
)

func makeOwner(seed byte) asset.OwnerID {
	var o asset.OwnerID
	for i := range o {
		o[i] = seed
	}
	return o
}

func makeAsset(seed byte) asset.AssetID {
	var a asset.AssetID
	for i := range a {
		a[i] = seed
	}
	return a
}

func TestRegisterAndOwnerOf(t *testing.T) {
	r := NewMemRegistry()
	id := makeAsset(0x01)
	owner := makeOwner(0xAA)

	require.NoError(t, r.Register(id, owner))

	got, ok := r.OwnerOf(id)
	require.True(t, ok)
	assert.Equal(t, owner, got)

	assert.ErrorIs(t, r.Register(id, owner), ErrAssetExists)

	_, ok = r.OwnerOf(makeAsset(0x99))
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	r := NewMemRegistry()
	id := makeAsset(0x01)
	require.NoError(t, r.Register(id, makeOwner(0xAA)))
	require.NoError(t, r.Remove(id))

	_, ok := r.OwnerOf(id)
	assert.False(t, ok)
	assert.ErrorIs(t, r.Remove(id), ErrAssetNotFound)
}

func TestIsAuthorized(t *testing.T) {
	r := NewMemRegistry()
	id := makeAsset(0x01)
	owner := makeOwner(0xAA)
	approvee := makeOwner(0xBB)
	operator := makeOwner(0xCC)
	stranger := makeOwner(0xDD)

	require.NoError(t, r.Register(id, owner))

	assert.True(t, r.IsAuthorized(owner, id))
	assert.False(t, r.IsAuthorized(stranger, id))
	assert.False(t, r.IsAuthorized(owner, makeAsset(0x99)))

	// Per-asset approval.
	require.NoError(t, r.Approve(owner, approvee, id))
	assert.True(t, r.IsAuthorized(approvee, id))

	// Only the owner can approve.
	assert.ErrorIs(t, r.Approve(stranger, stranger, id), ErrNotOwner)

	// Blanket operator.
	r.SetOperator(owner, operator, true)
	assert.True(t, r.IsAuthorized(operator, id))
	r.SetOperator(owner, operator, false)
	assert.False(t, r.IsAuthorized(operator, id))
}

func TestTransfer(t *testing.T) {
	r := NewMemRegistry()
	id := makeAsset(0x01)
	owner := makeOwner(0xAA)
	approvee := makeOwner(0xBB)
	buyer := makeOwner(0xCC)

	require.NoError(t, r.Register(id, owner))
	require.NoError(t, r.Approve(owner, approvee, id))

	require.NoError(t, r.Transfer(id, owner, buyer))

	got, ok := r.OwnerOf(id)
	require.True(t, ok)
	assert.Equal(t, buyer, got)

	// Approval does not survive a transfer.
	assert.False(t, r.IsAuthorized(approvee, id))

	// Stale from-address is rejected.
	assert.ErrorIs(t, r.Transfer(id, owner, approvee), ErrNotOwner)
	assert.ErrorIs(t, r.Transfer(makeAsset(0x99), owner, buyer), ErrAssetNotFound)
}
