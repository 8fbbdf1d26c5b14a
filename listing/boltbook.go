package listing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/holiman/uint256"
	"go.etcd.io/bbolt"

	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
)

var bucketListings = []byte("listings")

const listingSize = 32 + 20 + 1 // price + seller + active flag

// BoltBook persists listings in bbolt.
type BoltBook struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Book = (*BoltBook)(nil)

// OpenBoltBook opens or creates the bbolt database at dbPath.
func OpenBoltBook(dbPath string) (*BoltBook, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("listing: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("listing: open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketListings)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("listing: create bucket: %w", err)
	}
	return &BoltBook{db: db}, nil
}

// NewBoltBook wraps an already-open bbolt database, creating the listings
// bucket if needed. The caller retains ownership of db.
func NewBoltBook(db *bbolt.DB) (*BoltBook, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketListings)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing: create bucket: %w", err)
	}
	return &BoltBook{db: db}, nil
}

// Close closes the underlying database.
func (b *BoltBook) Close() error { return b.db.Close() }

// List creates or overwrites the listing for an asset.
func (b *BoltBook) List(id asset.AssetID, price fixmath.Dec, seller asset.OwnerID, authorized bool) error {
	if !authorized {
		return ErrNotAuthorized
	}
	if price.IsZero() {
		return ErrInvalidPrice
	}

	l := Listing{Price: price, Seller: seller, Active: true}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketListings).Put(id[:], encodeListing(&l))
	})
}

// Unlist clears the listing for an asset.
func (b *BoltBook) Unlist(id asset.AssetID, authorized bool) error {
	if !authorized {
		return ErrNotAuthorized
	}
	return b.Clear(id)
}

// Get returns the listing for an asset, or the zero value when absent.
func (b *BoltBook) Get(id asset.AssetID) (Listing, error) {
	var l Listing
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketListings).Get(id[:])
		if data == nil {
			return nil
		}
		decoded, err := decodeListing(data)
		if err != nil {
			return err
		}
		l = *decoded
		return nil
	})
	if err != nil {
		return Listing{}, err
	}
	return l, nil
}

// Clear removes the listing unconditionally.
func (b *BoltBook) Clear(id asset.AssetID) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketListings).Delete(id[:])
	})
}

// encodeListing serializes a listing as price(32) seller(20) active(1).
func encodeListing(l *Listing) []byte {
	buf := make([]byte, listingSize)
	price := l.Price.Scaled().Bytes32()
	copy(buf[0:32], price[:])
	copy(buf[32:52], l.Seller[:])
	if l.Active {
		buf[52] = 1
	}
	return buf
}

// decodeListing deserializes the fixed binary layout back into a listing.
func decodeListing(data []byte) (*Listing, error) {
	if len(data) != listingSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidListingData, listingSize, len(data))
	}
	l := &Listing{
		Price:  fixmath.FromScaled(new(uint256.Int).SetBytes(data[0:32])),
		Active: data[52] == 1,
	}
	copy(l.Seller[:], data[32:52])
	return l, nil
}
