package ledger

import "errors"

var (
	// ErrNoPaymentDue indicates a release was attempted with a zero balance.
	ErrNoPaymentDue = errors.New("ledger: no payment due")

	// ErrTransferFailed indicates the payout transfer was rejected; the
	// claimant's balance has been restored.
	ErrTransferFailed = errors.New("ledger: payout transfer failed")

	// ErrInvalidBalanceData indicates stored balance bytes are malformed.
	ErrInvalidBalanceData = errors.New("ledger: invalid balance data")
)
