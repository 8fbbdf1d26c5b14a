package asset

import "errors"

var (
	// ErrInvalidOwnerID indicates an owner identifier is not 20 bytes of hex.
	ErrInvalidOwnerID = errors.New("asset: invalid owner id")

	// ErrInvalidAssetID indicates an asset identifier is not 32 bytes of hex.
	ErrInvalidAssetID = errors.New("asset: invalid asset id")
)
