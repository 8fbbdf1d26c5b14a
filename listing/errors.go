package listing

import "errors"

var (
	// ErrNotAuthorized indicates the caller is neither the asset's owner
	// nor an approved party.
	ErrNotAuthorized = errors.New("listing: caller not owner or approved")

	// ErrInvalidPrice indicates a listing price of zero.
	ErrInvalidPrice = errors.New("listing: price must be greater than zero")

	// ErrInvalidListingData indicates stored listing bytes are malformed.
	ErrInvalidListingData = errors.New("listing: invalid listing data")
)
