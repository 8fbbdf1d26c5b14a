package market

import "errors"

var (
	// ErrNilDependency indicates the market was constructed without a
	// required collaborator.
	ErrNilDependency = errors.New("market: nil dependency")

	// ErrNoDefaultConfigured indicates a default-parameter mint was
	// attempted before SetDefaultFRInfo.
	ErrNoDefaultConfigured = errors.New("market: no default FR info configured")

	// ErrAssetNotFound indicates the asset is not registered.
	ErrAssetNotFound = errors.New("market: asset not found")

	// ErrNotListed indicates a buy against an asset with no active
	// listing, or a stale listing whose seller no longer owns the asset.
	ErrNotListed = errors.New("market: asset not listed")

	// ErrPriceMismatch indicates the paid amount differs from the quoted
	// price.
	ErrPriceMismatch = errors.New("market: paid amount does not match price")
)
