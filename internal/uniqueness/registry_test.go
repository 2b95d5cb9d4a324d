package uniqueness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashWithFirstByte(b byte) TxHash {
	var h TxHash
	h[0] = b
	return h
}

func TestTryRegisterIsAddIfAbsent(t *testing.T) {
	reg, err := Open(t.TempDir())
	require.NoError(t, err)
	defer reg.Close()

	h := hashWithFirstByte(1)

	alreadyRegistered, err := reg.TryRegister(h)
	require.NoError(t, err)
	assert.False(t, alreadyRegistered)

	alreadyRegistered, err = reg.TryRegister(h)
	require.NoError(t, err)
	assert.True(t, alreadyRegistered)
}

func TestTryRegisterDistinctHashesDontCollide(t *testing.T) {
	reg, err := Open(t.TempDir())
	require.NoError(t, err)
	defer reg.Close()

	h1 := hashWithFirstByte(1)
	h2 := hashWithFirstByte(2)

	first, err := reg.TryRegister(h1)
	require.NoError(t, err)
	assert.False(t, first)

	second, err := reg.TryRegister(h2)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestIsRegisteredReflectsPriorRegistration(t *testing.T) {
	reg, err := Open(t.TempDir())
	require.NoError(t, err)
	defer reg.Close()

	h := hashWithFirstByte(3)
	found, err := reg.IsRegistered(h)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = reg.TryRegister(h)
	require.NoError(t, err)

	found, err = reg.IsRegistered(h)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRegistryPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	reg, err := Open(dir)
	require.NoError(t, err)

	h := hashWithFirstByte(4)
	_, err = reg.TryRegister(h)
	require.NoError(t, err)
	require.NoError(t, reg.Close())

	reg2, err := Open(dir)
	require.NoError(t, err)
	defer reg2.Close()

	found, err := reg2.IsRegistered(h)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestTryRegisterCrossPlanCollisionDropsSecondPlan(t *testing.T) {
	reg, err := Open(t.TempDir())
	require.NoError(t, err)
	defer reg.Close()

	// Two distinct plans whose user-signed prestart transaction happens to
	// be the same on-chain transaction hash: only the first may proceed.
	sharedHash := hashWithFirstByte(9)

	planAAlreadyClaimed, err := reg.TryRegister(sharedHash)
	require.NoError(t, err)
	assert.False(t, planAAlreadyClaimed, "first plan registers cleanly")

	planBLoses, err := reg.TryRegister(sharedHash)
	require.NoError(t, err)
	assert.True(t, planBLoses, "second plan sharing the hash must be told it's already claimed")
}
