package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDexesOnChainOrderedByID(t *testing.T) {
	moonbeamDexes := DexesOnChain(Moonbeam)
	assert.Len(t, moonbeamDexes, 2)
	assert.Equal(t, Beamswap, moonbeamDexes[0].ID)
	assert.Equal(t, Stellaswap, moonbeamDexes[1].ID)
}

func TestDexesOnChainEmptyForUnknownChain(t *testing.T) {
	assert.Empty(t, DexesOnChain(PolkadotChain))
}
