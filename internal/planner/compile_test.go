package planner

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/graph"
	"github.com/privadex/aggregator/internal/registry"
	"github.com/privadex/aggregator/internal/router"
)

func testChainID() pcommon.UniversalChainId { return registry.Astar }

func nativeTok() pcommon.UniversalTokenId {
	return pcommon.UniversalTokenId{Chain: testChainID(), ID: pcommon.NativeTokenId()}
}
func wethTok() pcommon.UniversalTokenId {
	return pcommon.UniversalTokenId{Chain: testChainID(), ID: pcommon.ERC20TokenId(ethcommon.HexToAddress("0xFEED"))}
}
func erc20Tok(tag byte) pcommon.UniversalTokenId {
	return pcommon.UniversalTokenId{Chain: testChainID(), ID: pcommon.ERC20TokenId(ethcommon.BytesToAddress([]byte{tag}))}
}

func dexA() registry.Dex { return registry.Dex{ID: registry.Arthswap, FeeBps: 30} }
func dexB() registry.Dex { return registry.Dex{ID: registry.Beamswap, FeeBps: 30} }

func wrapEdge() graph.Edge {
	return graph.NewWrapEdge(testChainID(), ethcommon.HexToAddress("0xFEED"))
}
func unwrapEdge() graph.Edge {
	return graph.NewUnwrapEdge(testChainID(), ethcommon.HexToAddress("0xFEED"))
}

func solutionWithPath(path []graph.Edge) router.GraphSolution {
	src := path[0].Src
	dest := path[len(path)-1].Dest
	return router.GraphSolution{
		SrcAddr:   pcommon.EthereumAddress(ethcommon.HexToAddress("0xA1")),
		DestAddr:  pcommon.EthereumAddress(ethcommon.HexToAddress("0xB2")),
		SrcToken:  src,
		DestToken: dest,
		AmountIn:  big.NewInt(1000),
		Path:      path,
		QuotedOut: big.NewInt(900),
	}
}

func TestCompileFusesConsecutiveSameDexSwaps(t *testing.T) {
	path := []graph.Edge{
		graph.NewSwapEdge(erc20Tok(1), erc20Tok(2), dexA(), big.NewInt(1_000_000), big.NewInt(1_000_000)),
		graph.NewSwapEdge(erc20Tok(2), erc20Tok(3), dexA(), big.NewInt(1_000_000), big.NewInt(1_000_000)),
	}
	plan, err := CompileExecutionPlan(solutionWithPath(path))
	require.NoError(t, err)
	require.Len(t, plan.Paths, 1)
	require.Len(t, plan.Paths[0].Steps, 1)

	step := plan.Paths[0].Steps[0]
	assert.Equal(t, StepEthDexSwap, step.Kind)
	assert.Equal(t, SwapExactTokensForTokens, step.RouterFunction)
	assert.Equal(t, []pcommon.UniversalTokenId{erc20Tok(1), erc20Tok(2), erc20Tok(3)}, step.TokenPath)
	require.NotNil(t, step.AmountIn)
	assert.Equal(t, big.NewInt(1000), step.AmountIn)
}

func TestCompileWrapThenTwoDexesSplitsIntoTwoSteps(t *testing.T) {
	path := []graph.Edge{
		wrapEdge(),
		graph.NewSwapEdge(wethTok(), erc20Tok(2), dexA(), big.NewInt(1_000_000), big.NewInt(1_000_000)),
		graph.NewSwapEdge(erc20Tok(2), erc20Tok(3), dexB(), big.NewInt(1_000_000), big.NewInt(1_000_000)),
	}
	plan, err := CompileExecutionPlan(solutionWithPath(path))
	require.NoError(t, err)
	require.Len(t, plan.Paths[0].Steps, 2)

	first := plan.Paths[0].Steps[0]
	assert.Equal(t, StepEthDexSwap, first.Kind)
	assert.Equal(t, SwapExactETHForTokens, first.RouterFunction)

	second := plan.Paths[0].Steps[1]
	assert.Equal(t, StepEthDexSwap, second.Kind)
	assert.Equal(t, SwapExactTokensForTokens, second.RouterFunction)
}

func TestCompileWrapThenSwapThenUnwrapErrors(t *testing.T) {
	path := []graph.Edge{
		wrapEdge(),
		graph.NewSwapEdge(wethTok(), erc20Tok(2), dexA(), big.NewInt(1_000_000), big.NewInt(1_000_000)),
		unwrapEdge(),
	}
	_, err := CompileExecutionPlan(solutionWithPath(path))
	assert.ErrorIs(t, err, ErrStartedWrapEndedUnwrap)
}

func TestCompileSwapThenUnwrapFusesIntoSwapExactTokensForETH(t *testing.T) {
	path := []graph.Edge{
		graph.NewSwapEdge(erc20Tok(1), wethTok(), dexA(), big.NewInt(1_000_000), big.NewInt(1_000_000)),
		unwrapEdge(),
	}
	plan, err := CompileExecutionPlan(solutionWithPath(path))
	require.NoError(t, err)
	require.Len(t, plan.Paths[0].Steps, 1)
	step := plan.Paths[0].Steps[0]
	assert.Equal(t, StepEthDexSwap, step.Kind)
	assert.Equal(t, SwapExactTokensForETH, step.RouterFunction)
}

func TestCompileBridgeEdgeProducesXCMTransferStep(t *testing.T) {
	destChain := pcommon.NewParachainId(pcommon.Polkadot, 2004)
	destTok := pcommon.UniversalTokenId{Chain: destChain, ID: pcommon.NativeTokenId()}
	path := []graph.Edge{graph.NewBridgeEdge(nativeTok(), destTok, 500)}

	plan, err := CompileExecutionPlan(solutionWithPath(path))
	require.NoError(t, err)
	require.Len(t, plan.Paths[0].Steps, 1)
	step := plan.Paths[0].Steps[0]
	assert.Equal(t, StepXCMTransfer, step.Kind)
	assert.Equal(t, destChain, step.DestChain)
	assert.Equal(t, uint64(500), step.BridgeFeeNative)
}

func TestCompileSynthesizesPrestartAndPostend(t *testing.T) {
	path := []graph.Edge{
		graph.NewSwapEdge(erc20Tok(1), erc20Tok(2), dexA(), big.NewInt(1_000_000), big.NewInt(1_000_000)),
	}
	plan, err := CompileExecutionPlan(solutionWithPath(path))
	require.NoError(t, err)
	assert.Equal(t, StepERC20Transfer, plan.Prestart.Kind)
	assert.Equal(t, StepERC20Transfer, plan.Postend.Kind)
	require.NoError(t, ValidateExecutionPlan(plan))
}
