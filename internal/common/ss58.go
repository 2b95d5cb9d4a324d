package common

import (
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// ss58Prefix is the fixed 7-byte domain separator SS58Check hashes along
// with the ident+body, per ss58_utils.rs's ss58hash.
var ss58Prefix = []byte("SS58PRE")

const ss58ChecksumLen = 2

// ss58Checksum returns the first 2 bytes of blake2b-512("SS58PRE" || body).
func ss58Checksum(identAndAccount []byte) []byte {
	hasher, _ := blake2b.New512(nil)
	hasher.Write(ss58Prefix)
	hasher.Write(identAndAccount)
	return hasher.Sum(nil)[:ss58ChecksumLen]
}

// EncodeSS58 renders a 32-byte Substrate account id under the given chain's
// SS58 address-format prefix, per
// https://docs.substrate.io/v3/advanced/ss58/. Mirrors ss58_utils.rs's
// Ss58Codec::to_ss58check_with_version, restricted to the 14-bit prefix
// range every registered chain in this module actually uses.
func EncodeSS58(prefix uint16, accountID [32]byte) (string, error) {
	ident, err := ss58Ident(prefix)
	if err != nil {
		return "", err
	}
	body := append(ident, accountID[:]...)
	body = append(body, ss58Checksum(body)...)
	return base58.Encode(body), nil
}

// DecodeSS58 parses an SS58Check-encoded address, returning the chain prefix
// it was encoded under and the 32-byte account id. Mirrors
// Ss58Codec::from_ss58check_with_version.
func DecodeSS58(s string) (prefix uint16, accountID [32]byte, err error) {
	data, err := base58.Decode(s)
	if err != nil {
		return 0, accountID, fmt.Errorf("%w: %v", ErrBadBase58, err)
	}
	if len(data) < 1+32+ss58ChecksumLen {
		return 0, accountID, fmt.Errorf("%w: ss58 address too short", ErrBadLength)
	}

	identLen, ident, err := ss58IdentFromLeadingBytes(data)
	if err != nil {
		return 0, accountID, err
	}

	if len(data) != identLen+32+ss58ChecksumLen {
		return 0, accountID, fmt.Errorf("%w: ss58 address has wrong length for a 32-byte account id", ErrBadLength)
	}

	body := data[:identLen+32]
	wantChecksum := ss58Checksum(body)
	gotChecksum := data[identLen+32:]
	for i := range wantChecksum {
		if wantChecksum[i] != gotChecksum[i] {
			return 0, accountID, fmt.Errorf("%w: ss58 checksum mismatch", ErrInvalidChecksum)
		}
	}

	copy(accountID[:], data[identLen:identLen+32])
	return ident, accountID, nil
}

// ss58Ident renders prefix as its 1- or 2-byte SS58 ident encoding.
func ss58Ident(prefix uint16) ([]byte, error) {
	switch {
	case prefix <= 63:
		return []byte{byte(prefix)}, nil
	case prefix <= 16_383:
		first := byte((prefix & 0b0000_0000_1111_1100) >> 2)
		second := byte(prefix>>8) | byte((prefix&0b0000_0000_0000_0011)<<6)
		return []byte{first | 0b0100_0000, second}, nil
	default:
		return nil, fmt.Errorf("%w: ss58 prefix %d exceeds the 14-bit range", ErrInvalidPrefix, prefix)
	}
}

// ss58IdentFromLeadingBytes inverts ss58Ident, reading the 1- or 2-byte
// ident off the front of data and reporting how many bytes it consumed.
func ss58IdentFromLeadingBytes(data []byte) (identLen int, prefix uint16, err error) {
	switch {
	case data[0] <= 63:
		return 1, uint16(data[0]), nil
	case data[0] <= 127:
		lower := (data[0] << 2) | (data[1] >> 6)
		upper := data[1] & 0b0011_1111
		return 2, uint16(lower) | (uint16(upper) << 8), nil
	default:
		return 0, 0, fmt.Errorf("%w: ss58 ident byte 0x%x is reserved", ErrInvalidPrefix, data[0])
	}
}
