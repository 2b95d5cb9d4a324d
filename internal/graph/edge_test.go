package graph

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/registry"
)

func testChain() pcommon.UniversalChainId {
	return pcommon.NewParachainId(pcommon.Polkadot, 2006)
}

func testNativeToken() pcommon.UniversalTokenId {
	return pcommon.UniversalTokenId{Chain: testChain(), ID: pcommon.NativeTokenId()}
}

func testERC20Token() pcommon.UniversalTokenId {
	addr := ethcommon.HexToAddress("0x00000000000000000000000000000000000001")
	return pcommon.UniversalTokenId{Chain: testChain(), ID: pcommon.ERC20TokenId(addr)}
}

func TestCPMMQuoteConcreteScenario(t *testing.T) {
	// spec.md §8 scenario 4: reserves (1e18, 2e18), fee 30bps, x=1e17.
	reserveIn := big.NewInt(0).SetUint64(1_000_000_000_000_000_000)
	reserveOut, _ := new(big.Int).SetString("2000000000000000000", 10)
	amountIn, _ := new(big.Int).SetString("100000000000000000", 10)

	dex := registry.Dex{FeeBps: 30}
	edge := NewSwapEdge(testNativeToken(), testERC20Token(), dex, reserveIn, reserveOut)

	out := edge.Quote(amountIn)
	want, _ := new(big.Int).SetString("181322178776029826", 10)
	assert.Equal(t, want.String(), out.String())
}

func TestCPMMQuoteMonotoneInInput(t *testing.T) {
	reserveIn := big.NewInt(1_000_000)
	reserveOut := big.NewInt(2_000_000)
	dex := registry.Dex{FeeBps: 25}
	edge := NewSwapEdge(testNativeToken(), testERC20Token(), dex, reserveIn, reserveOut)

	x1 := big.NewInt(1000)
	x2 := big.NewInt(5000)
	out1 := edge.Quote(x1)
	out2 := edge.Quote(x2)
	assert.True(t, out1.Cmp(out2) <= 0)
}

func TestCPMMQuoteStrictPriceImpact(t *testing.T) {
	reserveIn := big.NewInt(1_000_000)
	reserveOut := big.NewInt(2_000_000)
	dex := registry.Dex{FeeBps: 30}
	edge := NewSwapEdge(testNativeToken(), testERC20Token(), dex, reserveIn, reserveOut)

	x := big.NewInt(10_000)
	out := edge.Quote(x)
	// x * reserve_out / reserve_in (the no-slippage, no-fee upper bound)
	upperBound := new(big.Int).Mul(x, reserveOut)
	upperBound.Div(upperBound, reserveIn)
	assert.True(t, out.Cmp(upperBound) < 0)
}

func TestWrapUnwrapQuoteIsIdentity(t *testing.T) {
	wrap := NewWrapEdge(testChain(), testERC20Token().ID.Addr)
	amount := big.NewInt(500)
	assert.Equal(t, amount, wrap.Quote(amount))

	unwrap := NewUnwrapEdge(testChain(), testERC20Token().ID.Addr)
	assert.Equal(t, amount, unwrap.Quote(amount))
}

func TestQuoteNetUnpricedVerticesDeductsNoFee(t *testing.T) {
	reserveIn := big.NewInt(1_000_000)
	reserveOut := big.NewInt(2_000_000)
	dex := registry.Dex{FeeBps: 30}
	edge := NewSwapEdge(testNativeToken(), testERC20Token(), dex, reserveIn, reserveOut)
	g := NewGraph()

	amount := big.NewInt(10_000)
	assert.Equal(t, edge.Quote(amount), edge.QuoteNet(amount, g))
}

func TestQuoteNetDeductsEstimatedFeeWhenBothSidesPriced(t *testing.T) {
	reserveIn := big.NewInt(1_000_000_000)
	reserveOut := big.NewInt(2_000_000_000)
	dex := registry.Dex{ID: registry.Arthswap, FeeBps: 30}
	src := testNativeToken()
	dest := testERC20Token()
	edge := NewSwapEdge(src, dest, dex, reserveIn, reserveOut)

	g := NewGraph()
	usdOne := pcommon.NewFixedPointFromInt(1)
	g.SetPricing(src, TokenPricing{DerivedUSD: &usdOne})
	g.SetPricing(dest, TokenPricing{DerivedUSD: &usdOne})

	amount := big.NewInt(10_000)
	gross := edge.Quote(amount)
	net := edge.QuoteNet(amount, g)
	assert.True(t, net.Cmp(gross) < 0, "priced fee must strictly reduce the quote")
}
