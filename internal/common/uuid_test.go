package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUuidHexRoundTrip(t *testing.T) {
	u := NewUuid()
	parsed, err := UuidFromHexString(u.ToHexString())
	require.NoError(t, err)
	assert.True(t, u.Equal(parsed))
}

func TestUuidFromSeedDeterministic(t *testing.T) {
	seed := big.NewInt(4242)
	a := UuidFromSeed(seed)
	b := UuidFromSeed(seed)
	c := UuidFromSeed(big.NewInt(4243))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestUuidFromHexStringRejectsBadLength(t *testing.T) {
	_, err := UuidFromHexString("0xdead")
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestUuidFromHexStringAcceptsNoPrefix(t *testing.T) {
	u := NewUuid()
	stripped := u.ToHexString()[2:]
	parsed, err := UuidFromHexString(stripped)
	require.NoError(t, err)
	assert.True(t, u.Equal(parsed))
}
