package network

import "errors"

var (
	// ErrNilMarket indicates the service was constructed without a market.
	ErrNilMarket = errors.New("network: nil market")

	// ErrInvalidAmount indicates a request carried a malformed decimal amount.
	ErrInvalidAmount = errors.New("network: invalid amount")
)
