package common

import (
	"encoding/binary"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// AddressKind distinguishes the two UniversalAddress variants.
type AddressKind uint8

const (
	EthereumAddressKind AddressKind = iota
	SubstrateAddressKind
)

// UniversalAddress is the tagged variant Ethereum(20 bytes) | Substrate(32
// bytes); Kind says which of Eth or Substrate holds the address.
type UniversalAddress struct {
	Kind      AddressKind
	Eth       ethcommon.Address
	Substrate [32]byte
}

// EthereumAddress wraps a 20-byte address as the Ethereum variant.
func EthereumAddress(addr ethcommon.Address) UniversalAddress {
	return UniversalAddress{Kind: EthereumAddressKind, Eth: addr}
}

// SubstrateAddress wraps a 32-byte address as the Substrate variant.
func SubstrateAddress(addr [32]byte) UniversalAddress {
	return UniversalAddress{Kind: SubstrateAddressKind, Substrate: addr}
}

func (a UniversalAddress) String() string {
	switch a.Kind {
	case EthereumAddressKind:
		return a.Eth.Hex()
	case SubstrateAddressKind:
		return fmt.Sprintf("0x%x", a.Substrate)
	default:
		return "UnknownAddress"
	}
}

// scaleEncodeU32 SCALE-encodes a u32: its 4 bytes, little-endian. No other
// SCALE shapes are needed anywhere in this module, so a full codec
// dependency isn't pulled in for this one call site (see DESIGN.md).
func scaleEncodeU32(v uint32) [4]byte {
	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], v)
	return out
}

// SovereignAccount derives the sovereign account that `origin` (a parachain)
// holds on `dest`, per the "sibl"/"para" + SCALE(parachain_id) scheme:
//
//   - prefix is "sibl" when dest is itself a parachain, "para" when dest is
//     the relay chain;
//   - the body is the 4 little-endian bytes of origin's parachain id;
//   - the whole thing is zero-padded up to the width destKind selects (20
//     bytes for an Ethereum-style address, 32 for a Substrate address).
//
// origin must be a parachain (relay chains have no sovereign account to
// derive); returns ErrUnsupportedKind otherwise.
func SovereignAccount(origin, dest UniversalChainId, destKind AddressKind) (UniversalAddress, error) {
	if !origin.IsParachain() {
		return UniversalAddress{}, fmt.Errorf("%w: sovereign account origin must be a parachain", ErrUnsupportedKind)
	}

	prefix := "para"
	if dest.IsParachain() {
		prefix = "sibl"
	}
	body := scaleEncodeU32(origin.ParachainID)

	switch destKind {
	case EthereumAddressKind:
		var out ethcommon.Address
		copy(out[:], prefix)
		copy(out[len(prefix):], body[:])
		return EthereumAddress(out), nil
	case SubstrateAddressKind:
		var out [32]byte
		copy(out[:], prefix)
		copy(out[len(prefix):], body[:])
		return SubstrateAddress(out), nil
	default:
		return UniversalAddress{}, fmt.Errorf("%w: %d", ErrInvalidPrefix, destKind)
	}
}

// xc20Prefix is the fixed 4-byte marker (0xFFFFFFFF) that opens every
// synthetic XC-20 ERC-20 address.
var xc20Prefix = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}

// XC20EthAddress builds the synthetic ERC-20 address a parachain's EVM
// surface exposes for a Substrate asset: 0xFFFFFFFF followed by the asset
// id's 16 big-endian bytes.
func XC20EthAddress(assetID [16]byte) ethcommon.Address {
	var out ethcommon.Address
	copy(out[:4], xc20Prefix[:])
	copy(out[4:], assetID[:])
	return out
}

// IsXC20Address reports whether addr carries the XC-20 0xFFFFFFFF prefix.
func IsXC20Address(addr ethcommon.Address) bool {
	return addr[0] == 0xFF && addr[1] == 0xFF && addr[2] == 0xFF && addr[3] == 0xFF
}

// AssetIDFromXC20Address extracts the asset id from an XC-20 synthetic
// address. Returns false if addr doesn't carry the XC-20 prefix.
func AssetIDFromXC20Address(addr ethcommon.Address) ([16]byte, bool) {
	if !IsXC20Address(addr) {
		return [16]byte{}, false
	}
	var assetID [16]byte
	copy(assetID[:], addr[4:])
	return assetID, true
}
