// Package graph builds the routing multigraph (vertices = UniversalTokenId,
// edges = the four swap/bridge/wrap/unwrap primitives) the Smart Order
// Router searches over. Quote math generalizes the teacher's
// core/relay-chain/dex/dex.go constant-product formula from uint64/float64
// to math/big so a 256-bit intermediate never overflows at u128 scale.
package graph

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/registry"
)

// EdgeKind distinguishes the four edge variants.
type EdgeKind uint8

const (
	SwapEdge EdgeKind = iota
	BridgeEdge
	WrapEdge
	UnwrapEdge
)

func (k EdgeKind) String() string {
	switch k {
	case SwapEdge:
		return "Swap"
	case BridgeEdge:
		return "Bridge"
	case WrapEdge:
		return "Wrap"
	case UnwrapEdge:
		return "Unwrap"
	default:
		return "UnknownEdge"
	}
}

const bpsDenominator = 10_000

// Edge is the tagged variant Swap(CPMM) | Bridge(XCM) | Wrap | Unwrap. All
// four carry Src/Dest; Src.Chain == Dest.Chain except for Bridge.
type Edge struct {
	Kind EdgeKind
	Src  pcommon.UniversalTokenId
	Dest pcommon.UniversalTokenId

	// Swap-only.
	Dex        registry.Dex
	ReserveIn  *big.Int
	ReserveOut *big.Int

	// Bridge-only.
	BridgeFeeInDestNative uint64

	// Wrap/Unwrap-only.
	WETHAddr common.Address
}

// NewSwapEdge builds a Swap(CPMM) edge over a DEX pool's reserves.
func NewSwapEdge(src, dest pcommon.UniversalTokenId, dex registry.Dex, reserveIn, reserveOut *big.Int) Edge {
	return Edge{
		Kind:       SwapEdge,
		Src:        src,
		Dest:       dest,
		Dex:        dex,
		ReserveIn:  new(big.Int).Set(reserveIn),
		ReserveOut: new(big.Int).Set(reserveOut),
	}
}

// NewBridgeEdge builds a Bridge(XCM) edge; the destination-native fee is
// applied during quoting via priced vertex data passed in by the caller.
func NewBridgeEdge(src, dest pcommon.UniversalTokenId, bridgeFeeInDestNative uint64) Edge {
	return Edge{Kind: BridgeEdge, Src: src, Dest: dest, BridgeFeeInDestNative: bridgeFeeInDestNative}
}

// NewWrapEdge builds a Native->WETH Wrap edge.
func NewWrapEdge(chain pcommon.UniversalChainId, wethAddr common.Address) Edge {
	native := pcommon.UniversalTokenId{Chain: chain, ID: pcommon.NativeTokenId()}
	weth := pcommon.UniversalTokenId{Chain: chain, ID: pcommon.ERC20TokenId(wethAddr)}
	return Edge{Kind: WrapEdge, Src: native, Dest: weth, WETHAddr: wethAddr}
}

// NewUnwrapEdge builds a WETH->Native Unwrap edge.
func NewUnwrapEdge(chain pcommon.UniversalChainId, wethAddr common.Address) Edge {
	weth := pcommon.UniversalTokenId{Chain: chain, ID: pcommon.ERC20TokenId(wethAddr)}
	native := pcommon.UniversalTokenId{Chain: chain, ID: pcommon.NativeTokenId()}
	return Edge{Kind: UnwrapEdge, Src: weth, Dest: native, WETHAddr: wethAddr}
}

// Quote computes the gross output amount for input amountIn, with no fee
// deduction beyond what the edge kind itself prices in (the swap fee for
// Swap, nothing for Wrap/Unwrap/Bridge — bridge and gas fee netting is
// QuoteNet's job).
func (e Edge) Quote(amountIn *big.Int) *big.Int {
	switch e.Kind {
	case SwapEdge:
		return e.quoteCPMM(amountIn)
	case BridgeEdge, WrapEdge, UnwrapEdge:
		return new(big.Int).Set(amountIn)
	default:
		return big.NewInt(0)
	}
}

// QuoteNet computes spec.md §4.1's get_quote_with_estimated_txn_fees: the
// gross Quote less the edge's estimated_txn_fee_in_dest_token (and, for a
// bridge, the destination-chain fee on top of it), saturating at zero. The
// fee is priced from the fee-paying chain's registry.ChainInfo.AvgGasFeeNative
// (or AvgBridgeFeeNative for a bridge) via g's derived-USD pricing of the
// native token and back into e.Dest's units; an unpriced vertex on either
// side yields a zero fee rather than blocking the route.
func (e Edge) QuoteNet(amountIn *big.Int, g *Graph) *big.Int {
	out := e.Quote(amountIn)
	fee := e.estimatedTxnFeeInDestToken(g)
	if e.Kind == BridgeEdge {
		fee = new(big.Int).Add(fee, e.estimatedBridgeFeeInDestToken(g))
	}
	net := new(big.Int).Sub(out, fee)
	if net.Sign() < 0 {
		return big.NewInt(0)
	}
	return net
}

func (e Edge) estimatedTxnFeeInDestToken(g *Graph) *big.Int {
	srcChainInfo, ok := registry.LookupChain(e.Src.Chain)
	if !ok {
		return big.NewInt(0)
	}
	return convertNativeFeeToDestToken(g, srcChainInfo.AvgGasFeeNative, nativeTokenOf(e.Src.Chain), e.Dest)
}

// estimatedBridgeFeeInDestToken converts BridgeFeeInDestNative (already
// denominated in the destination chain's native token) into e.Dest's units.
func (e Edge) estimatedBridgeFeeInDestToken(g *Graph) *big.Int {
	return convertNativeFeeToDestToken(g, e.BridgeFeeInDestNative, nativeTokenOf(e.Dest.Chain), e.Dest)
}

func nativeTokenOf(chain pcommon.UniversalChainId) pcommon.UniversalTokenId {
	return pcommon.UniversalTokenId{Chain: chain, ID: pcommon.NativeTokenId()}
}

// convertNativeFeeToDestToken prices feeNative (in nativeToken's smallest
// unit) via nativeToken's derived USD, then divides back through destToken's
// derived USD to land in destToken's raw units. Both conversions cancel the
// 10^18 fixed-point scale exactly, so this is plain integer math once both
// sides are priced.
func convertNativeFeeToDestToken(g *Graph, feeNative uint64, nativeToken, destToken pcommon.UniversalTokenId) *big.Int {
	if feeNative == 0 {
		return big.NewInt(0)
	}
	nativePricing, ok := g.Pricing(nativeToken)
	if !ok || nativePricing.DerivedUSD == nil {
		return big.NewInt(0)
	}
	destPricing, ok := g.Pricing(destToken)
	if !ok || destPricing.DerivedUSD == nil || destPricing.DerivedUSD.IsZero() {
		return big.NewInt(0)
	}
	feeUSDScaled := new(big.Int).Mul(big.NewInt(int64(feeNative)), nativePricing.DerivedUSD.Scaled())
	return feeUSDScaled.Div(feeUSDScaled, destPricing.DerivedUSD.Scaled())
}

// quoteCPMM implements spec.md §4.1's constant-product formula with a
// 256-bit-safe intermediate (math/big has no fixed width, so this is
// automatic): out = floor(((10000-f)*x*Rout) / (10000*Rin + (10000-f)*x)).
func (e Edge) quoteCPMM(amountIn *big.Int) *big.Int {
	if e.ReserveIn.Sign() == 0 {
		return big.NewInt(0)
	}
	feeMult := big.NewInt(bpsDenominator - int64(e.Dex.FeeBps))
	numerator := new(big.Int).Mul(feeMult, amountIn)
	numerator.Mul(numerator, e.ReserveOut)

	denominator := new(big.Int).Mul(big.NewInt(bpsDenominator), e.ReserveIn)
	scaledIn := new(big.Int).Mul(feeMult, amountIn)
	denominator.Add(denominator, scaledIn)

	if denominator.Sign() == 0 {
		return big.NewInt(0)
	}
	return numerator.Div(numerator, denominator)
}
