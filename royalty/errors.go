package royalty

import "errors"

var (
	// ErrInvalidParameters indicates an FR parameter set failed validation:
	// zero generations, percent outside (0, 1], or ratio below 1.
	ErrInvalidParameters = errors.New("royalty: invalid FR parameters")

	// ErrRecordExists indicates a record is already registered for the asset.
	ErrRecordExists = errors.New("royalty: record already exists")

	// ErrNoRecord indicates a mutation targeted an asset with no record.
	ErrNoRecord = errors.New("royalty: no record for asset")

	// ErrEmptyWindow indicates a distribution was attempted against an empty
	// generation window. A record always holds at least its minter, so this
	// is an internal invariant failure.
	ErrEmptyWindow = errors.New("royalty: empty generation window")

	// ErrInvalidRecordData indicates stored record bytes are malformed.
	ErrInvalidRecordData = errors.New("royalty: invalid record data")
)
