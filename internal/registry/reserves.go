package registry

import (
	"context"
	"math/big"

	pcommon "github.com/privadex/aggregator/internal/common"
)

// Pool is one DEX liquidity pool as a GraphQL reserve-archive query would
// return it: the two tokens, their current reserves, the pool's USD value
// (spec.md §4.2's reserves_usd filter), and — when the archive also surfaces
// a USD oracle price for either side — that token's derived_usd, used to
// seed graph pricing in phase 1.
type Pool struct {
	TokenA, TokenB                 pcommon.UniversalTokenId
	ReserveA, ReserveB              *big.Int
	ReservesUSD                    float64
	TokenAUSDPrice, TokenBUSDPrice *pcommon.FixedPoint
}

// PoolReserveFetcher is the out-of-scope DEX GraphQL reserve-archive
// client, modeled only at its interface per spec.md §1. It mirrors the
// teacher's getDestinationSwapQuote call shape (dex.go's GetSwapQuote):
// given a DEX, list its pools with current reserves.
type PoolReserveFetcher interface {
	ListPools(ctx context.Context, dex Dex) ([]Pool, error)
}
