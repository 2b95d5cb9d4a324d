package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSS58RoundTripsSinglePrefix(t *testing.T) {
	var accountID [32]byte
	for i := range accountID {
		accountID[i] = byte(i)
	}

	encoded, err := EncodeSS58(0, accountID) // Polkadot
	require.NoError(t, err)

	prefix, decoded, err := DecodeSS58(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), prefix)
	assert.Equal(t, accountID, decoded)
}

func TestSS58RoundTripsTwoBytePrefix(t *testing.T) {
	var accountID [32]byte
	for i := range accountID {
		accountID[i] = byte(32 - i)
	}

	encoded, err := EncodeSS58(1284, accountID) // Moonbeam
	require.NoError(t, err)

	prefix, decoded, err := DecodeSS58(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint16(1284), prefix)
	assert.Equal(t, accountID, decoded)
}

func TestSS58RejectsTamperedChecksum(t *testing.T) {
	var accountID [32]byte
	encoded, err := EncodeSS58(5, accountID) // Astar
	require.NoError(t, err)

	tampered := []byte(encoded)
	if tampered[len(tampered)-1] == 'a' {
		tampered[len(tampered)-1] = 'b'
	} else {
		tampered[len(tampered)-1] = 'a'
	}

	_, _, err = DecodeSS58(string(tampered))
	assert.Error(t, err)
}

func TestSS58RejectsPrefixOverRange(t *testing.T) {
	_, err := EncodeSS58(20_000, [32]byte{})
	assert.ErrorIs(t, err, ErrInvalidPrefix)
}

func TestSS58RejectsBadBase58(t *testing.T) {
	_, _, err := DecodeSS58("not-valid-base58!!!")
	assert.ErrorIs(t, err, ErrBadBase58)
}
