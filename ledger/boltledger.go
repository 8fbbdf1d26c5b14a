package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/holiman/uint256"
	"go.etcd.io/bbolt"

	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
)

var bucketBalances = []byte("claim_balances")

// BoltLedger persists claim balances in bbolt.
type BoltLedger struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Ledger = (*BoltLedger)(nil)

// OpenBoltLedger opens or creates the bbolt database at dbPath.
func OpenBoltLedger(dbPath string) (*BoltLedger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBalances)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create bucket: %w", err)
	}
	return &BoltLedger{db: db}, nil
}

// NewBoltLedger wraps an already-open bbolt database, creating the balances
// bucket if needed. The caller retains ownership of db.
func NewBoltLedger(db *bbolt.DB) (*BoltLedger, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBalances)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ledger: create bucket: %w", err)
	}
	return &BoltLedger{db: db}, nil
}

// Close closes the underlying database.
func (l *BoltLedger) Close() error { return l.db.Close() }

// Credit adds amount to the owner's balance.
func (l *BoltLedger) Credit(owner asset.OwnerID, amount fixmath.Dec) error {
	if amount.IsZero() {
		return nil
	}
	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketBalances)
		cur, err := decodeBalance(b.Get(owner[:]))
		if err != nil {
			return err
		}
		sum, err := cur.Add(amount)
		if err != nil {
			return fmt.Errorf("ledger: credit %s: %w", owner, err)
		}
		return b.Put(owner[:], encodeBalance(sum))
	})
}

// BalanceOf returns the owner's claimable balance.
func (l *BoltLedger) BalanceOf(owner asset.OwnerID) (fixmath.Dec, error) {
	var bal fixmath.Dec
	err := l.db.View(func(tx *bbolt.Tx) error {
		var err error
		bal, err = decodeBalance(tx.Bucket(bucketBalances).Get(owner[:]))
		return err
	})
	if err != nil {
		return fixmath.Zero(), err
	}
	return bal, nil
}

// Release withdraws the owner's entire balance through send. The balance
// is deleted in its own write transaction before Send runs, and restored
// if the transfer fails.
func (l *BoltLedger) Release(owner asset.OwnerID, send PayoutSender) (fixmath.Dec, error) {
	var amount fixmath.Dec
	err := l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketBalances)
		cur, err := decodeBalance(b.Get(owner[:]))
		if err != nil {
			return err
		}
		if cur.IsZero() {
			return fmt.Errorf("%w: %s", ErrNoPaymentDue, owner)
		}
		amount = cur
		return b.Delete(owner[:])
	})
	if err != nil {
		return fixmath.Zero(), err
	}

	if err := send.Send(owner, amount); err != nil {
		if restoreErr := l.Credit(owner, amount); restoreErr != nil {
			return fixmath.Zero(), fmt.Errorf("%w: %v (restore also failed: %v)", ErrTransferFailed, err, restoreErr)
		}
		return fixmath.Zero(), fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	return amount, nil
}

// encodeBalance serializes a balance as its 32-byte big-endian scaled value.
func encodeBalance(d fixmath.Dec) []byte {
	b := d.Scaled().Bytes32()
	return b[:]
}

// decodeBalance deserializes a stored balance; nil means zero.
func decodeBalance(data []byte) (fixmath.Dec, error) {
	if data == nil {
		return fixmath.Zero(), nil
	}
	if len(data) != 32 {
		return fixmath.Zero(), fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidBalanceData, len(data))
	}
	return fixmath.FromScaled(new(uint256.Int).SetBytes(data)), nil
}
