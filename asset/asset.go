// Package asset defines the identity value types shared by the nFR engine:
// 20-byte owner identifiers and 32-byte asset identifiers, plus the
// deterministic derivation of asset ids from a minter and a mint nonce.
package asset

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// OwnerID identifies a participant (owner, buyer, royalty claimant).
type OwnerID [20]byte

// AssetID identifies a single transferable asset.
type AssetID [32]byte

// IsZero reports whether the owner id is all zero bytes.
func (o OwnerID) IsZero() bool { return o == OwnerID{} }

// IsZero reports whether the asset id is all zero bytes.
func (a AssetID) IsZero() bool { return a == AssetID{} }

// Hex returns the lowercase hex encoding without a 0x prefix.
func (o OwnerID) Hex() string { return hex.EncodeToString(o[:]) }

// Hex returns the lowercase hex encoding without a 0x prefix.
func (a AssetID) Hex() string { return hex.EncodeToString(a[:]) }

func (o OwnerID) String() string { return o.Hex() }

func (a AssetID) String() string { return a.Hex() }

// ParseOwnerID decodes a 40-character hex string (0x prefix tolerated).
func ParseOwnerID(s string) (OwnerID, error) {
	var o OwnerID
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return o, fmt.Errorf("%w: %v", ErrInvalidOwnerID, err)
	}
	if len(b) != len(o) {
		return o, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidOwnerID, len(o), len(b))
	}
	copy(o[:], b)
	return o, nil
}

// ParseAssetID decodes a 64-character hex string (0x prefix tolerated).
func ParseAssetID(s string) (AssetID, error) {
	var a AssetID
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalidAssetID, err)
	}
	if len(b) != len(a) {
		return a, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAssetID, len(a), len(b))
	}
	copy(a[:], b)
	return a, nil
}

// DeriveAssetID computes Keccak256(minter || nonce) where nonce is encoded
// as 8 big-endian bytes. The same minter and nonce always yield the same id.
func DeriveAssetID(minter OwnerID, nonce uint64) AssetID {
	var buf [28]byte
	copy(buf[:20], minter[:])
	binary.BigEndian.PutUint64(buf[20:], nonce)

	h := sha3.NewLegacyKeccak256()
	h.Write(buf[:])

	var id AssetID
	copy(id[:], h.Sum(nil))
	return id
}
