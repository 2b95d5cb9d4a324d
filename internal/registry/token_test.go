package registry

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	pcommon "github.com/privadex/aggregator/internal/common"
)

func TestChainAndEthAddrToTokenResolvesRegisteredXC20(t *testing.T) {
	addr := pcommon.XC20EthAddress(GlmrOnAstar.ID.AssetID)
	got := ChainAndEthAddrToToken(Astar, addr)
	assert.Equal(t, GlmrOnAstar, got)
}

func TestChainAndEthAddrToTokenFallsBackToERC20(t *testing.T) {
	addr := ethcommon.HexToAddress("0x1111111111111111111111111111111111111111")
	got := ChainAndEthAddrToToken(Moonbeam, addr)
	assert.Equal(t, pcommon.UniversalTokenId{Chain: Moonbeam, ID: pcommon.ERC20TokenId(addr)}, got)
}

func TestBridgeDestinationsAndCanBridge(t *testing.T) {
	dests := BridgeDestinations(DotNative)
	assert.Contains(t, dests, DotOnMoonbeam)
	assert.Contains(t, dests, DotOnAstar)
	assert.True(t, CanBridge(DotNative, DotOnMoonbeam))
	assert.False(t, CanBridge(GlmrNative, DotOnMoonbeam))
}
