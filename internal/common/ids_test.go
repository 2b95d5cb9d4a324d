package common

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestUniversalChainIdRelayGroup(t *testing.T) {
	tests := []struct {
		name string
		a, b UniversalChainId
		want bool
	}{
		{"same parachain", NewParachainId(Polkadot, 2004), NewParachainId(Polkadot, 2004), true},
		{"siblings share group", NewParachainId(Polkadot, 2004), NewParachainId(Polkadot, 2000), true},
		{"parachain and its relay", NewParachainId(Polkadot, 2004), NewRelayChainId(Polkadot), true},
		{"different relays", NewParachainId(Polkadot, 2004), NewParachainId(Kusama, 2004), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.SameRelayGroup(tt.b))
		})
	}
}

func TestUniversalChainIdIsParachain(t *testing.T) {
	assert.False(t, NewRelayChainId(Polkadot).IsParachain())
	assert.True(t, NewParachainId(Polkadot, 2004).IsParachain())
}

func TestUniversalTokenIdUsableAsMapKey(t *testing.T) {
	astar := NewParachainId(Polkadot, 2006)
	moonbeam := NewParachainId(Polkadot, 2004)

	m := map[UniversalTokenId]int{
		{Chain: astar, ID: NativeTokenId()}:                         1,
		{Chain: moonbeam, ID: ERC20TokenId(ethcommon.Address{0x1})}: 2,
	}

	assert.Equal(t, 1, m[UniversalTokenId{Chain: astar, ID: NativeTokenId()}])
	assert.Equal(t, 2, m[UniversalTokenId{Chain: moonbeam, ID: ERC20TokenId(ethcommon.Address{0x1})}])
	_, ok := m[UniversalTokenId{Chain: astar, ID: ERC20TokenId(ethcommon.Address{0x2})}]
	assert.False(t, ok)
}

func TestAssetIDUint64RoundTrip(t *testing.T) {
	assetID := AssetIDUint64(42)
	tokenID := XC20TokenId(assetID)
	assert.Equal(t, XC20Token, tokenID.Kind)
	assert.Equal(t, assetID, tokenID.AssetID)
}
