package royalty

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/holiman/uint256"
	"go.etcd.io/bbolt"

	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
)

var bucketRecords = []byte("fr_records")

const (
	recordHeaderSize = 4 + 32 + 32 + 32 + 8 + 4 // generations + percent + ratio + last_price + owner_count + window_len
	windowEntrySize  = 20
)

// BoltRecordStore persists FR records in bbolt.
type BoltRecordStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ RecordStore = (*BoltRecordStore)(nil)

// OpenBoltRecordStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltRecordStore(dbPath string) (*BoltRecordStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("royalty: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("royalty: open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("royalty: create bucket: %w", err)
	}
	return &BoltRecordStore{db: db}, nil
}

// NewBoltRecordStore wraps an already-open bbolt database, creating the
// records bucket if needed. The caller retains ownership of db.
func NewBoltRecordStore(db *bbolt.DB) (*BoltRecordStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("royalty: create bucket: %w", err)
	}
	return &BoltRecordStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltRecordStore) Close() error { return s.db.Close() }

// Create initializes the record for an asset.
func (s *BoltRecordStore) Create(id asset.AssetID, info FRInfo, initialOwner asset.OwnerID) error {
	if err := ValidateFRInfo(info); err != nil {
		return err
	}

	rec := Record{
		FRInfo:     info,
		OwnerCount: 1,
		Window:     []asset.OwnerID{initialOwner},
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		if b.Get(id[:]) != nil {
			return fmt.Errorf("%w: %s", ErrRecordExists, id)
		}
		return b.Put(id[:], encodeRecord(&rec))
	})
}

// Get returns the record for an asset, or the zero value when absent.
func (s *BoltRecordStore) Get(id asset.AssetID) (Record, error) {
	var rec Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRecords).Get(id[:])
		if data == nil {
			return nil
		}
		r, err := decodeRecord(data)
		if err != nil {
			return err
		}
		rec = *r
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// PushOwner appends an owner to the window, evicting beyond NumGenerations.
func (s *BoltRecordStore) PushOwner(id asset.AssetID, owner asset.OwnerID) error {
	return s.update(id, func(r *Record) {
		pushOwner(r, owner)
	})
}

// SetLastSoldPrice records the price of the most recent sale.
func (s *BoltRecordStore) SetLastSoldPrice(id asset.AssetID, price fixmath.Dec) error {
	return s.update(id, func(r *Record) {
		r.LastSoldPrice = price
	})
}

// Destroy resets the record to its zero value.
func (s *BoltRecordStore) Destroy(id asset.AssetID) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Delete(id[:])
	})
}

// update applies fn to the stored record inside a single write transaction.
func (s *BoltRecordStore) update(id asset.AssetID, fn func(*Record)) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		data := b.Get(id[:])
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNoRecord, id)
		}
		r, err := decodeRecord(data)
		if err != nil {
			return err
		}
		fn(r)
		return b.Put(id[:], encodeRecord(r))
	})
}

// encodeRecord serializes a record to the fixed binary layout:
// generations(4) percent(32) ratio(32) last_price(32) owner_count(8)
// window_len(4) window entries(20 each).
func encodeRecord(r *Record) []byte {
	buf := make([]byte, recordHeaderSize+windowEntrySize*len(r.Window))
	offset := 0

	binary.BigEndian.PutUint32(buf[offset:], r.NumGenerations)
	offset += 4

	percent := r.PercentOfProfit.Scaled().Bytes32()
	copy(buf[offset:], percent[:])
	offset += 32

	ratio := r.SuccessiveRatio.Scaled().Bytes32()
	copy(buf[offset:], ratio[:])
	offset += 32

	last := r.LastSoldPrice.Scaled().Bytes32()
	copy(buf[offset:], last[:])
	offset += 32

	binary.BigEndian.PutUint64(buf[offset:], r.OwnerCount)
	offset += 8

	binary.BigEndian.PutUint32(buf[offset:], uint32(len(r.Window)))
	offset += 4

	for _, o := range r.Window {
		copy(buf[offset:], o[:])
		offset += windowEntrySize
	}
	return buf
}

// decodeRecord deserializes the fixed binary layout back into a record.
func decodeRecord(data []byte) (*Record, error) {
	if len(data) < recordHeaderSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidRecordData, len(data))
	}
	offset := 0

	var r Record
	r.NumGenerations = binary.BigEndian.Uint32(data[offset:])
	offset += 4

	r.PercentOfProfit = readDec(data[offset:])
	offset += 32
	r.SuccessiveRatio = readDec(data[offset:])
	offset += 32
	r.LastSoldPrice = readDec(data[offset:])
	offset += 32

	r.OwnerCount = binary.BigEndian.Uint64(data[offset:])
	offset += 8

	windowLen := int(binary.BigEndian.Uint32(data[offset:]))
	offset += 4

	expected := recordHeaderSize + windowEntrySize*windowLen
	if len(data) != expected {
		return nil, fmt.Errorf("%w: expected %d bytes for %d window entries, got %d",
			ErrInvalidRecordData, expected, windowLen, len(data))
	}

	r.Window = make([]asset.OwnerID, windowLen)
	for i := 0; i < windowLen; i++ {
		copy(r.Window[i][:], data[offset:offset+windowEntrySize])
		offset += windowEntrySize
	}
	return &r, nil
}

// readDec decodes a 32-byte big-endian scaled decimal.
func readDec(data []byte) fixmath.Dec {
	return fixmath.FromScaled(new(uint256.Int).SetBytes(data[:32]))
}
