package graph

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/registry"
)

// fakePoolFetcher is the in-memory PoolReserveFetcher used by tests and
// examples, standing in for the out-of-scope DEX GraphQL client.
type fakePoolFetcher struct {
	poolsByDex map[registry.DexID][]registry.Pool
}

func (f *fakePoolFetcher) ListPools(ctx context.Context, dex registry.Dex) ([]registry.Pool, error) {
	return f.poolsByDex[dex.ID], nil
}

func TestBuildFromChainIdsThreePhases(t *testing.T) {
	glmrAstar := pcommon.UniversalTokenId{Chain: registry.Astar, ID: pcommon.XC20TokenId(pcommon.AssetIDUint64(19))}
	astrNative := registry.AstrNative

	fetcher := &fakePoolFetcher{
		poolsByDex: map[registry.DexID][]registry.Pool{
			registry.Arthswap: {
				{
					TokenA:      astrNative,
					TokenB:      glmrAstar,
					ReserveA:    big.NewInt(10_000_000),
					ReserveB:    big.NewInt(20_000_000),
					ReservesUSD: 6000,
				},
			},
		},
	}

	g, err := BuildFromChainIds(context.Background(), []pcommon.UniversalChainId{registry.Astar}, fetcher)
	require.NoError(t, err)

	assert.True(t, g.HasVertex(astrNative))
	assert.True(t, g.HasVertex(glmrAstar))
	assert.NotEmpty(t, g.EdgesFrom(astrNative))
	assert.NotEmpty(t, g.EdgesFrom(glmrAstar))

	// wrap/unwrap edges require the WETH vertex, which this fixture's pools
	// never create, so none should be added for Astar here.
	wethVertex := pcommon.UniversalTokenId{Chain: registry.Astar, ID: pcommon.ERC20TokenId(*mustChainInfo(t, registry.Astar).WETHAddr)}
	assert.False(t, g.HasVertex(wethVertex))
}

func TestBuildFromChainIdsFiltersLowReservePools(t *testing.T) {
	glmrAstar := pcommon.UniversalTokenId{Chain: registry.Astar, ID: pcommon.XC20TokenId(pcommon.AssetIDUint64(19))}
	astrNative := registry.AstrNative

	fetcher := &fakePoolFetcher{
		poolsByDex: map[registry.DexID][]registry.Pool{
			registry.Arthswap: {
				{
					TokenA:      astrNative,
					TokenB:      glmrAstar,
					ReserveA:    big.NewInt(100),
					ReserveB:    big.NewInt(200),
					ReservesUSD: 10, // below the 5000 floor
				},
			},
		},
	}

	g, err := BuildFromChainIds(context.Background(), []pcommon.UniversalChainId{registry.Astar}, fetcher)
	require.NoError(t, err)
	assert.False(t, g.HasVertex(glmrAstar))
}

func TestBuildFromChainIdsUnregisteredChain(t *testing.T) {
	fetcher := &fakePoolFetcher{}
	unknown := pcommon.NewParachainId(pcommon.Kusama, 9999)
	_, err := BuildFromChainIds(context.Background(), []pcommon.UniversalChainId{unknown}, fetcher)
	assert.ErrorIs(t, err, ErrUnregisteredChainId)
}

func mustChainInfo(t *testing.T, id pcommon.UniversalChainId) registry.ChainInfo {
	t.Helper()
	info, ok := registry.LookupChain(id)
	require.True(t, ok)
	return info
}
