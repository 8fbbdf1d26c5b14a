package registry

import "errors"

var (
	// ErrAssetExists indicates the asset id is already registered.
	ErrAssetExists = errors.New("registry: asset already registered")

	// ErrAssetNotFound indicates no asset is registered under the id.
	ErrAssetNotFound = errors.New("registry: asset not found")

	// ErrNotOwner indicates a transfer named a from-address that does not
	// own the asset.
	ErrNotOwner = errors.New("registry: from address is not the owner")
)
