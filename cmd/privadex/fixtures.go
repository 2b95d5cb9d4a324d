package main

import (
	"context"
	"math/big"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/indexer"
	"github.com/privadex/aggregator/internal/registry"
)

// demoPoolFetcher is a fixed, in-memory stand-in for the out-of-scope DEX
// GraphQL reserve-archive client (spec.md §1 models that transport only at
// its interface). It supplies just enough liquidity for the CLI's demo
// route so build-graph/compute-execution-plan are runnable without a
// network dependency, the same role build_visualize_graph.rs's mocked
// environment plays for the original example.
type demoPoolFetcher struct{}

func (demoPoolFetcher) ListPools(ctx context.Context, dex registry.Dex) ([]registry.Pool, error) {
	switch dex.ID {
	case registry.Arthswap:
		// GLMR-on-Astar <-> ASTR, reserves picked to clear the $5k floor.
		return []registry.Pool{
			{
				TokenA:      registry.GlmrOnAstar,
				TokenB:      registry.AstrNative,
				ReserveA:    big.NewInt(500_000_000_000_000_000_000),
				ReserveB:    big.NewInt(2_000_000_000_000_000_000_000),
				ReservesUSD: 50_000,
			},
		}, nil
	case registry.Beamswap:
		return []registry.Pool{
			{
				TokenA:      registry.GlmrNative,
				TokenB:      registry.UsdtOnMoonbeam,
				ReserveA:    big.NewInt(1_000_000_000_000_000_000_000),
				ReserveB:    big.NewInt(500_000_000_000),
				ReservesUSD: 500_000,
			},
		}, nil
	default:
		return nil, nil
	}
}

// demoXCMLookup is a fixed, in-memory stand-in for a chain's XCM indexer
// (e.g. a Subsquid GraphQL endpoint) — the out-of-scope transport
// indexer.Adapter wraps. It reports "not yet landed" on the first lookup
// for a given destination and a matching transfer afterward, so the CLI's
// demo route exercises indexer.Adapter.FindTransfer's poll-then-match path
// rather than confirming on the very first Status tick.
type demoXCMLookup struct {
	amountOut *big.Int
	seen      map[string]int
}

func newDemoXCMLookup(amountOut *big.Int) *demoXCMLookup {
	return &demoXCMLookup{amountOut: amountOut, seen: make(map[string]int)}
}

func (l *demoXCMLookup) FindIncomingTransfer(
	ctx context.Context,
	destChain pcommon.UniversalChainId,
	destAddr pcommon.UniversalAddress,
	destToken pcommon.UniversalTokenId,
	afterBlock uint64,
) (*indexer.TransferRecord, error) {
	key := destChain.String() + destAddr.String() + destToken.String()
	l.seen[key]++
	if l.seen[key] < 2 {
		return nil, nil
	}
	return &indexer.TransferRecord{
		DestChain:   destChain,
		DestToken:   destToken,
		DestAddr:    destAddr,
		AmountOut:   l.amountOut,
		BlockHeight: afterBlock + 1,
	}, nil
}
