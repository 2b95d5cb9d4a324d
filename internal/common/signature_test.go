package common

import (
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEthereumSignAndVerifyRoundTrip(t *testing.T) {
	priv, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	msg := []byte("swap 100 USDC Astar->Moonbeam")
	sig, err := Ethereum.Sign(msg, ethcrypto.FromECDSA(priv), nil)
	require.NoError(t, err)

	pubBytes := ethcrypto.FromECDSAPub(&priv.PublicKey)
	ok, err := Ethereum.Verify(pubBytes, msg, sig, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEthereumRecoverSigner(t *testing.T) {
	priv, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	msg := []byte("plan-uuid-0xdeadbeef")
	sig, err := Ethereum.Sign(msg, ethcrypto.FromECDSA(priv), nil)
	require.NoError(t, err)

	recovered, err := RecoverEthereumSigner(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, ethcrypto.PubkeyToAddress(priv.PublicKey).Bytes(), recovered[:])
}

func TestEthereumVerifyRejectsTamperedMessage(t *testing.T) {
	priv, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	sig, err := Ethereum.Sign([]byte("original"), ethcrypto.FromECDSA(priv), nil)
	require.NoError(t, err)

	pubBytes := ethcrypto.FromECDSAPub(&priv.PublicKey)
	ok, err := Ethereum.Verify(pubBytes, []byte("tampered"), sig, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSr25519WithoutSchemeIsUnwired(t *testing.T) {
	_, err := Sr25519.Sign([]byte("msg"), nil, nil)
	assert.ErrorIs(t, err, ErrSr25519Unwired)

	_, err = Sr25519.Verify(nil, []byte("msg"), nil, nil)
	assert.ErrorIs(t, err, ErrSr25519Unwired)
}

func TestPreHashIfNeededOnlyHashesOversizedPayloads(t *testing.T) {
	small := make([]byte, 256)
	assert.Equal(t, small, preHashIfNeeded(small))

	large := make([]byte, 257)
	hashed := preHashIfNeeded(large)
	assert.Len(t, hashed, 32)
}
