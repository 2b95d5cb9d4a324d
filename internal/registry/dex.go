package registry

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"

	pcommon "github.com/privadex/aggregator/internal/common"
)

// DexID names a specific AMM deployment, mirroring registry/dex.rs's DexId.
type DexID uint8

const (
	Arthswap DexID = iota
	Beamswap
	Stellaswap
	MoonbaseUniswap
)

func (d DexID) String() string {
	switch d {
	case Arthswap:
		return "Arthswap"
	case Beamswap:
		return "Beamswap"
	case Stellaswap:
		return "Stellaswap"
	case MoonbaseUniswap:
		return "Uniswap"
	default:
		return "UnknownDex"
	}
}

// Dex is a DEX deployment's static metadata: which chain it lives on, its
// swap fee, and the router contract + GraphQL reserve-archive endpoint the
// out-of-scope transports would hit.
type Dex struct {
	ID         DexID
	ChainID    pcommon.UniversalChainId
	FeeBps     uint32
	GraphQLURL string
	RouterAddr common.Address
}

// Dexes indexes Dex by DexID, mirroring dex_registry's constants.
var Dexes = map[DexID]Dex{
	Arthswap: {
		ID:         Arthswap,
		ChainID:    Astar,
		FeeBps:     30,
		GraphQLURL: "https://squid.subsquid.io/privadex-arthswap/v/v0/graphql",
		RouterAddr: common.HexToAddress("0xE915D2393a08a00c5A463053edD31bAe2199b9e7"),
	},
	Beamswap: {
		ID:         Beamswap,
		ChainID:    Moonbeam,
		FeeBps:     30,
		GraphQLURL: "https://squid.subsquid.io/privadex-beamswap/v/v0/graphql",
		RouterAddr: common.HexToAddress("0x96b244391D98B62D19aE89b1A4dCcf0fc56970C7"),
	},
	Stellaswap: {
		ID:         Stellaswap,
		ChainID:    Moonbeam,
		FeeBps:     25,
		GraphQLURL: "https://squid.subsquid.io/privadex-stellaswap/v/v0/graphql",
		RouterAddr: common.HexToAddress("0x70085a09D30D6f8C4ecF6eE10120d1847383BB57"),
	},
	MoonbaseUniswap: {
		ID:         MoonbaseUniswap,
		ChainID:    MoonbaseAlpha,
		FeeBps:     30,
		GraphQLURL: "",
		RouterAddr: common.HexToAddress("0x8A1932d6e26433F3037bd6c3A40C816222a6CCd4"),
	},
}

// DexesOnChain returns the DEX deployments living on chainID, in a stable
// order (ascending DexID) so callers get deterministic graph construction.
func DexesOnChain(chainID pcommon.UniversalChainId) []Dex {
	var out []Dex
	for _, dex := range Dexes {
		if dex.ChainID == chainID {
			out = append(out, dex)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LookupDex returns the Dex for id and whether it was found.
func LookupDex(id DexID) (Dex, bool) {
	dex, ok := Dexes[id]
	return dex, ok
}
