// Package registry holds the process-global, immutable chain/DEX/XC-20
// tables the graph builder reads from. Every table here is read-only config
// data populated once at package init, mirroring
// original_source/*/chain_metadata/src/registry/*.rs.
package registry

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	pcommon "github.com/privadex/aggregator/internal/common"
)

// ErrUnregisteredChainID is returned when a chain id has no ChainInfo entry.
var ErrUnregisteredChainID = errors.New("registry: unregistered chain id")

// ChainInfo is the static metadata PrivaDEX needs about a chain to route
// through and quote it: address encoding, signature scheme, native-token gas
// estimates, and the RPC/indexer endpoints the out-of-scope transports would
// dial.
type ChainInfo struct {
	ChainID            pcommon.UniversalChainId
	SS58Prefix         *uint16
	XCMAddressKind     pcommon.AddressKind
	SigScheme          pcommon.SignatureScheme
	EVMChainID         *uint64
	WETHAddr           *common.Address
	AvgGasFeeNative    uint64 // in the chain's smallest native-token unit
	AvgBridgeFeeNative uint64
	RPCURL             string
	SubsquidURL        string
}

func u16(v uint16) *uint16   { return &v }
func u64(v uint64) *uint64   { return &v }
func addr(s string) *common.Address {
	a := common.HexToAddress(s)
	return &a
}

// Chain ids, mirroring universal_chain_id_registry.
var (
	Moonbeam      = pcommon.NewParachainId(pcommon.Polkadot, 2004)
	Astar         = pcommon.NewParachainId(pcommon.Polkadot, 2006)
	PolkadotChain = pcommon.NewRelayChainId(pcommon.Polkadot)

	// MoonbaseAlpha and MoonbaseBeta get distinct chain ids here (Open
	// Question resolution — original_source aliased both onto the same
	// MOONBEAM chain id in one registry constant, which is flagged
	// ambiguous upstream).
	MoonbaseAlpha = pcommon.NewParachainId(pcommon.MoonbaseRelay, 1000)
	MoonbaseBeta  = pcommon.NewParachainId(pcommon.MoonbaseRelay, 888)
)

// Chains indexes ChainInfo by UniversalChainId, populated once at init from
// the same constants original_source's chain_info_registry carries.
var Chains = map[pcommon.UniversalChainId]ChainInfo{
	Astar: {
		ChainID:            Astar,
		SS58Prefix:         u16(5),
		XCMAddressKind:     pcommon.SubstrateAddressKind,
		SigScheme:          pcommon.Sr25519,
		EVMChainID:         u64(592),
		WETHAddr:           addr("0xAeaaf0e2c81Af264101B9129C00F4440cCF0F720"),
		AvgGasFeeNative:    300_000,
		AvgBridgeFeeNative: 200_000,
		RPCURL:             "https://astar.public.blastapi.io",
		SubsquidURL:        "https://astar.explorer.subsquid.io/graphql",
	},
	Moonbeam: {
		ChainID:            Moonbeam,
		SS58Prefix:         u16(1284),
		XCMAddressKind:     pcommon.EthereumAddressKind,
		SigScheme:          pcommon.Ethereum,
		EVMChainID:         u64(1284),
		WETHAddr:           addr("0xAcc15dC74880C9944775448304B263D191c6077"),
		AvgGasFeeNative:    12_000_000,
		AvgBridgeFeeNative: 10_000_000,
		RPCURL:             "https://moonbeam.public.blastapi.io",
		SubsquidURL:        "https://moonbeam.explorer.subsquid.io/graphql",
	},
	PolkadotChain: {
		ChainID:            PolkadotChain,
		SS58Prefix:         u16(0),
		XCMAddressKind:     pcommon.SubstrateAddressKind,
		SigScheme:          pcommon.Sr25519,
		EVMChainID:         nil,
		WETHAddr:           nil,
		AvgGasFeeNative:    190_000_000,
		AvgBridgeFeeNative: 500_000_000,
		RPCURL:             "https://polkadot.api.onfinality.io/rpc",
		SubsquidURL:        "https://polkadot.explorer.subsquid.io/graphql",
	},
	MoonbaseAlpha: {
		ChainID:            MoonbaseAlpha,
		SS58Prefix:         u16(1287),
		XCMAddressKind:     pcommon.EthereumAddressKind,
		SigScheme:          pcommon.Ethereum,
		EVMChainID:         u64(1287),
		WETHAddr:           addr("0xD909178CC99d318e4D46e7E66a972955859670E1"),
		AvgGasFeeNative:    12_000_000,
		AvgBridgeFeeNative: 10_000_000,
		RPCURL:             "https://moonbeam-alpha.api.onfinality.io/public",
		SubsquidURL:        "https://moonbase.explorer.subsquid.io/graphql",
	},
	MoonbaseBeta: {
		ChainID:            MoonbaseBeta,
		SS58Prefix:         u16(1287),
		XCMAddressKind:     pcommon.EthereumAddressKind,
		SigScheme:          pcommon.Ethereum,
		EVMChainID:         nil, // definitely has one, unknown value — matches original_source
		WETHAddr:           nil,
		AvgGasFeeNative:    12_000_000,
		AvgBridgeFeeNative: 10_000_000,
		RPCURL:             "https://frag-moonbase-beta-rpc.g.moonbase.moonbeam.network",
		SubsquidURL:        "",
	},
}

// LookupChain returns the ChainInfo for id and whether it was found.
func LookupChain(id pcommon.UniversalChainId) (ChainInfo, bool) {
	info, ok := Chains[id]
	return info, ok
}

// FormatSS58Address renders accountID as an SS58Check string under chainID's
// registered address-format prefix, matching the display format a chain
// explorer or wallet would show for that account on chainID. Returns
// ErrUnregisteredChainID for an unknown chain and ErrUnsupportedKind for a
// chain with no SS58 prefix (an Ethereum-style-only chain).
func FormatSS58Address(chainID pcommon.UniversalChainId, accountID [32]byte) (string, error) {
	info, ok := LookupChain(chainID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnregisteredChainID, chainID)
	}
	if info.SS58Prefix == nil {
		return "", fmt.Errorf("%w: %s has no registered SS58 prefix", pcommon.ErrUnsupportedKind, chainID)
	}
	return pcommon.EncodeSS58(*info.SS58Prefix, accountID)
}
