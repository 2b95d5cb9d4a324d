// Package common holds the cross-package vertex/address/id types shared by
// the registry, graph, router, planner and executor: UniversalChainId,
// ChainTokenId, UniversalTokenId, UniversalAddress, the Uuid wrapper and the
// two signature schemes.
package common

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// RelayChain identifies a relay chain. Two UniversalChainIds share a relay
// group iff their RelayChain values are equal.
type RelayChain uint8

const (
	Polkadot RelayChain = iota
	Kusama
	Westend
	Rococo
	MoonbaseRelay
)

func (r RelayChain) String() string {
	switch r {
	case Polkadot:
		return "Polkadot"
	case Kusama:
		return "Kusama"
	case Westend:
		return "Westend"
	case Rococo:
		return "Rococo"
	case MoonbaseRelay:
		return "MoonbaseRelay"
	default:
		return "UnknownRelay"
	}
}

// ChainKind distinguishes a relay chain from one of its parachains.
type ChainKind uint8

const (
	RelayChainKind ChainKind = iota
	ParachainKind
)

// UniversalChainId is the tagged variant RelayChain(relay) | Parachain(relay,
// parachain_id). It is a plain comparable struct so it can be used directly
// as a map key (the graph's vertex key embeds it).
type UniversalChainId struct {
	Relay       RelayChain
	Kind        ChainKind
	ParachainID uint32 // only meaningful when Kind == ParachainKind
}

// NewRelayChainId builds a RelayChain(relay) chain id.
func NewRelayChainId(relay RelayChain) UniversalChainId {
	return UniversalChainId{Relay: relay, Kind: RelayChainKind}
}

// NewParachainId builds a Parachain(relay, parachainID) chain id.
func NewParachainId(relay RelayChain, parachainID uint32) UniversalChainId {
	return UniversalChainId{Relay: relay, Kind: ParachainKind, ParachainID: parachainID}
}

// IsParachain reports whether this chain id is a parachain (as opposed to
// the relay chain itself).
func (c UniversalChainId) IsParachain() bool {
	return c.Kind == ParachainKind
}

// SameRelayGroup reports whether c and other live under the same relay
// chain. Bridging is only defined within a relay group.
func (c UniversalChainId) SameRelayGroup(other UniversalChainId) bool {
	return c.Relay == other.Relay
}

func (c UniversalChainId) String() string {
	if c.Kind == RelayChainKind {
		return "Relay"
	}
	return fmt.Sprintf("Para_%d", c.ParachainID)
}

// TokenKind distinguishes the three ChainTokenId variants.
type TokenKind uint8

const (
	NativeToken TokenKind = iota
	ERC20Token
	XC20Token
)

// ChainTokenId is the tagged variant Native | ERC20{addr} | XC20{asset_id}.
// AssetID is stored as a big-endian 16-byte array (a u128) so the whole
// struct stays comparable and can key a map.
type ChainTokenId struct {
	Kind    TokenKind
	Addr    ethcommon.Address // meaningful when Kind == ERC20Token
	AssetID [16]byte          // meaningful when Kind == XC20Token, big-endian u128
}

// NativeTokenId returns the Native variant.
func NativeTokenId() ChainTokenId {
	return ChainTokenId{Kind: NativeToken}
}

// ERC20TokenId returns the ERC20{addr} variant.
func ERC20TokenId(addr ethcommon.Address) ChainTokenId {
	return ChainTokenId{Kind: ERC20Token, Addr: addr}
}

// XC20TokenId returns the XC20{asset_id} variant from a u128 asset id
// represented as a big-endian 16-byte array.
func XC20TokenId(assetID [16]byte) ChainTokenId {
	return ChainTokenId{Kind: XC20Token, AssetID: assetID}
}

// AssetIDUint64 packs a small asset id (the common case) into the 16-byte
// big-endian representation XC20TokenId expects.
func AssetIDUint64(assetID uint64) [16]byte {
	var out [16]byte
	for i := 0; i < 8; i++ {
		out[15-i] = byte(assetID >> (8 * i))
	}
	return out
}

func (id ChainTokenId) String() string {
	switch id.Kind {
	case NativeToken:
		return "Native"
	case ERC20Token:
		return fmt.Sprintf("ERC20(%s)", id.Addr.Hex())
	case XC20Token:
		return fmt.Sprintf("XC20(%s)", assetIDString(id.AssetID))
	default:
		return "UnknownToken"
	}
}

func assetIDString(assetID [16]byte) string {
	return fmt.Sprintf("0x%x", assetID)
}

// UniversalTokenId = (chain, id). It is the vertex key of the routing
// graph; equality and hash are structural since every field is a value type.
type UniversalTokenId struct {
	Chain UniversalChainId
	ID    ChainTokenId
}

func (t UniversalTokenId) String() string {
	return fmt.Sprintf("%s[%s]", t.Chain, t.ID)
}
