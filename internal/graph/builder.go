package graph

import (
	"context"
	"errors"
	"fmt"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/registry"
)

// ErrCreateGraphFailed is returned when phase 1's reserve fetch fails, per
// spec.md §4.2 ("Fails with CreateGraphFailed if the GraphQL call fails").
var ErrCreateGraphFailed = errors.New("graph: create graph failed")

// ErrUnregisteredChainId is returned when a requested chain has no registry
// entry.
var ErrUnregisteredChainId = errors.New("graph: unregistered chain id")

// minTokenPairReserveUSD is the phase-1 pool filter threshold, matching
// original_source's MIN_TOKEN_PAIR_RESERVE_USD ("low enough to include the
// ASTR/GLMR pool in ArthSwap").
const minTokenPairReserveUSD = 5_000

// BuildFromChainIds runs the 3 ordered phases from spec.md §4.2 over the
// given chains and returns the populated Graph. fetcher supplies live pool
// reserves (the out-of-scope DEX GraphQL client); pass an in-memory fake in
// tests.
func BuildFromChainIds(ctx context.Context, chainIDs []pcommon.UniversalChainId, fetcher registry.PoolReserveFetcher) (*Graph, error) {
	g := NewGraph()

	// Phase 1: swap edges. Order matters — derived_usd/derived_eth are
	// entirely sourced from DEX pool data, so every other phase depends on
	// this one having run first.
	for _, chainID := range chainIDs {
		if _, ok := registry.LookupChain(chainID); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnregisteredChainId, chainID)
		}
		for _, dex := range registry.DexesOnChain(chainID) {
			if err := addSwapEdgesForDex(ctx, g, dex, fetcher); err != nil {
				return nil, err
			}
		}
	}

	// Phase 2: bridge edges, auto-inserting native-token endpoints that no
	// phase-1 pool named; a pair whose other endpoint is still missing is
	// skipped.
	for _, pair := range registry.XCMPairs {
		addBridgeEdge(g, pair)
	}

	// Phase 3: wrap/unwrap edges, skipped silently if either endpoint is
	// missing.
	for _, chainID := range chainIDs {
		addWrapUnwrapEdges(g, chainID)
	}

	return g, nil
}

// addSwapEdgesForDex fetches top pools for dex and adds two directed
// Swap(CPMM) edges per pool clearing the USD reserve floor, recording
// derived_usd from the pool data.
func addSwapEdgesForDex(ctx context.Context, g *Graph, dex registry.Dex, fetcher registry.PoolReserveFetcher) error {
	pools, err := fetcher.ListPools(ctx, dex)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCreateGraphFailed, dex.ID, err)
	}
	for _, pool := range pools {
		if pool.ReservesUSD < minTokenPairReserveUSD {
			continue // silently dropped, per spec.md §4.2
		}
		g.AddEdge(NewSwapEdge(pool.TokenA, pool.TokenB, dex, pool.ReserveA, pool.ReserveB))
		g.AddEdge(NewSwapEdge(pool.TokenB, pool.TokenA, dex, pool.ReserveB, pool.ReserveA))

		recordPoolPricing(g, pool)
	}
	return nil
}

// recordPoolPricing records each pool token's USD price as the pool reports
// it (TokenAUSDPrice/TokenBUSDPrice), overwriting any earlier value; a token
// whose price the pool leaves nil is left as it was. No price is derived
// from reserves, and DerivedETH is not set.
func recordPoolPricing(g *Graph, pool registry.Pool) {
	if pool.TokenAUSDPrice != nil {
		g.SetPricing(pool.TokenA, TokenPricing{DerivedUSD: pool.TokenAUSDPrice})
	}
	if pool.TokenBUSDPrice != nil {
		g.SetPricing(pool.TokenB, TokenPricing{DerivedUSD: pool.TokenBUSDPrice})
	}
}

// addBridgeEdge adds one Bridge(XCM) edge for pair, auto-inserting whichever
// endpoint is the chain's native token and not yet a vertex; if an endpoint
// is still not a vertex after that, the pair gets no edge. When one side is
// priced and the other isn't, price propagates across the bridge (same
// asset, 1:1 value).
func addBridgeEdge(g *Graph, pair registry.XCMPair) {
	ensureNativeVertex(g, pair.Src)
	ensureNativeVertex(g, pair.Dest)
	if !g.HasVertex(pair.Src) || !g.HasVertex(pair.Dest) {
		return
	}

	chainInfo, _ := registry.LookupChain(pair.Dest.Chain)
	g.AddEdge(NewBridgeEdge(pair.Src, pair.Dest, chainInfo.AvgBridgeFeeNative))

	srcPricing, srcPriced := g.Pricing(pair.Src)
	_, destPriced := g.Pricing(pair.Dest)
	if srcPriced && !destPriced {
		g.SetPricing(pair.Dest, srcPricing)
	}
	destPricing, destPricedNow := g.Pricing(pair.Dest)
	_, srcPricedNow := g.Pricing(pair.Src)
	if destPricedNow && !srcPricedNow {
		g.SetPricing(pair.Src, destPricing)
	}
}

func ensureNativeVertex(g *Graph, token pcommon.UniversalTokenId) {
	if token.ID.Kind == pcommon.NativeToken {
		g.AddVertex(token)
	}
}

// addWrapUnwrapEdges inserts Wrap (Native->WETH) and Unwrap (WETH->Native)
// edges for chainID if both endpoints already exist as vertices; skipped
// silently otherwise.
func addWrapUnwrapEdges(g *Graph, chainID pcommon.UniversalChainId) {
	chainInfo, ok := registry.LookupChain(chainID)
	if !ok || chainInfo.WETHAddr == nil {
		return
	}
	native := pcommon.UniversalTokenId{Chain: chainID, ID: pcommon.NativeTokenId()}
	weth := pcommon.UniversalTokenId{Chain: chainID, ID: pcommon.ERC20TokenId(*chainInfo.WETHAddr)}

	if !g.HasVertex(native) || !g.HasVertex(weth) {
		return
	}
	g.AddEdge(NewWrapEdge(chainID, *chainInfo.WETHAddr))
	g.AddEdge(NewUnwrapEdge(chainID, *chainInfo.WETHAddr))
	propagatePricingAcrossWrap(g, native, weth)
}

// propagatePricingAcrossWrap mirrors addBridgeEdge's cross-bridge price
// propagation for the Wrap/Unwrap pair: Native and WETH carry identical
// value (1:1 quote), so a price known on one side applies to the other.
// Without this, the native vertex of a chain with no directly-traded native
// pool never gets priced, and QuoteNet's fee conversion silently zeroes out.
func propagatePricingAcrossWrap(g *Graph, native, weth pcommon.UniversalTokenId) {
	nativePricing, nativePriced := g.Pricing(native)
	wethPricing, wethPriced := g.Pricing(weth)
	if wethPriced && !nativePriced {
		g.SetPricing(native, wethPricing)
	}
	if nativePriced && !wethPriced {
		g.SetPricing(weth, nativePricing)
	}
}
