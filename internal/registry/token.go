package registry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	pcommon "github.com/privadex/aggregator/internal/common"
)

func assetID(v string) [16]byte {
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		panic("registry: bad asset id literal " + v)
	}
	b := n.Bytes()
	var out [16]byte
	copy(out[16-len(b):], b)
	return out
}

// Universal token ids, mirroring universal_token_id_registry's constants.
var (
	DotNative = pcommon.UniversalTokenId{Chain: PolkadotChain, ID: pcommon.NativeTokenId()}

	GlmrNative = pcommon.UniversalTokenId{Chain: Moonbeam, ID: pcommon.NativeTokenId()}
	AstrOnMoonbeam = pcommon.UniversalTokenId{
		Chain: Moonbeam,
		ID:    pcommon.XC20TokenId(assetID("224077081838586484055667086558292981199")),
	}
	DotOnMoonbeam = pcommon.UniversalTokenId{
		Chain: Moonbeam,
		ID:    pcommon.XC20TokenId(assetID("42259045809535163221576417993425387648")),
	}
	UsdtOnMoonbeam = pcommon.UniversalTokenId{
		Chain: Moonbeam,
		ID:    pcommon.XC20TokenId(assetID("311091173110107856861649819128533077277")),
	}

	AstrNative = pcommon.UniversalTokenId{Chain: Astar, ID: pcommon.NativeTokenId()}
	GlmrOnAstar = pcommon.UniversalTokenId{
		Chain: Astar,
		ID:    pcommon.XC20TokenId(assetID("18446744073709551619")),
	}
	DotOnAstar = pcommon.UniversalTokenId{
		Chain: Astar,
		ID:    pcommon.XC20TokenId(assetID("340282366920938463463374607431768211455")),
	}
	UsdtOnAstar = pcommon.UniversalTokenId{
		Chain: Astar,
		ID:    pcommon.XC20TokenId(assetID("4294969280")),
	}
)

// RegisteredXC20Tokens lists every synthetic XC-20 token this module knows
// about, used to disambiguate a raw Ethereum address into either an XC-20
// token or a plain ERC-20 on chains that expose both under the EVM surface.
var RegisteredXC20Tokens = []pcommon.UniversalTokenId{
	GlmrOnAstar, DotOnAstar, UsdtOnAstar,
	AstrOnMoonbeam, DotOnMoonbeam, UsdtOnMoonbeam,
}

func isRegisteredXC20(t pcommon.UniversalTokenId) bool {
	for _, reg := range RegisteredXC20Tokens {
		if reg == t {
			return true
		}
	}
	return false
}

// ChainAndEthAddrToToken resolves a raw EVM address on chainID into the
// correct UniversalTokenId: an XC-20 synthetic asset if this module has
// registered that asset id, otherwise a plain ERC-20 token.
func ChainAndEthAddrToToken(chainID pcommon.UniversalChainId, ethAddr common.Address) pcommon.UniversalTokenId {
	if assetIDFromAddr, ok := pcommon.AssetIDFromXC20Address(ethAddr); ok {
		candidate := pcommon.UniversalTokenId{Chain: chainID, ID: pcommon.XC20TokenId(assetIDFromAddr)}
		if isRegisteredXC20(candidate) {
			return candidate
		}
	}
	return pcommon.UniversalTokenId{Chain: chainID, ID: pcommon.ERC20TokenId(ethAddr)}
}
