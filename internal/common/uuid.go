package common

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Uuid is a thin wrapper over google/uuid giving the hex round-trip shape
// the original Rust `uuid.rs` exposes (a 0x-prefixed 32-hex-digit string)
// instead of the canonical dashed UUID string.
type Uuid struct {
	inner uuid.UUID
}

// NewUuid generates a fresh random (v4) Uuid.
func NewUuid() Uuid {
	return Uuid{inner: uuid.New()}
}

// UuidFromSeed deterministically derives a Uuid from a u128 seed (the
// planner's step and plan id counter wants reproducible ids rather than
// `NewUuid`'s randomness).
// seed is truncated/zero-extended to 16 bytes, big-endian.
func UuidFromSeed(seed *big.Int) Uuid {
	b := seed.Bytes()
	var buf [16]byte
	if len(b) > 16 {
		b = b[len(b)-16:]
	}
	copy(buf[16-len(b):], b)
	var u uuid.UUID
	copy(u[:], buf[:])
	return Uuid{inner: u}
}

// ToHexString renders the Uuid as "0x" + 32 lowercase hex digits.
func (u Uuid) ToHexString() string {
	return "0x" + hex.EncodeToString(u.inner[:])
}

func (u Uuid) String() string {
	return fmt.Sprintf("Uuid(%s)", u.ToHexString())
}

// Equal reports structural equality between two Uuids.
func (u Uuid) Equal(other Uuid) bool {
	return u.inner == other.inner
}

// MarshalText renders the Uuid in its ToHexString form, so it round-trips
// through encoding/json.
func (u Uuid) MarshalText() ([]byte, error) {
	return []byte(u.ToHexString()), nil
}

// UnmarshalText parses the ToHexString form.
func (u *Uuid) UnmarshalText(text []byte) error {
	parsed, err := UuidFromHexString(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// UuidFromHexString parses a "0x"-prefixed 32-hex-digit string produced by
// ToHexString. Returns ErrInvalidHex on malformed input.
func UuidFromHexString(s string) (Uuid, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s) != 32 {
		return Uuid{}, fmt.Errorf("%w: want 32 hex digits, got %d", ErrInvalidHex, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Uuid{}, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	var u uuid.UUID
	copy(u[:], raw)
	return Uuid{inner: u}, nil
}
