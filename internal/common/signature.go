package common

import (
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

// SignatureScheme selects the signing/verification algorithm a chain's
// accounts use. Ethereum is fully implemented (secp256k1 ECDSA over
// Keccak-256, EIP-191 personal-message prefixed); Sr25519 is modeled only as
// an injected interface per spec.md §1 ("signature primitives ... specified
// only at their interfaces") since no pack repo ships an sr25519 library.
type SignatureScheme uint8

const (
	Ethereum SignatureScheme = iota
	Sr25519
)

func (s SignatureScheme) String() string {
	switch s {
	case Ethereum:
		return "Ethereum"
	case Sr25519:
		return "Sr25519"
	default:
		return "UnknownScheme"
	}
}

// personalMessagePrefix is the EIP-191 prefix applied before hashing an
// Ethereum-scheme message for signing.
func personalMessagePrefix(msg []byte) []byte {
	return []byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(msg)))
}

// PrefixMessage applies the scheme's message-framing convention before
// hashing. Ethereum prepends the EIP-191 personal-message header; Sr25519
// payloads are blake2b-256 pre-hashed when longer than 256 bytes (Substrate
// extrinsic convention), otherwise passed through untouched.
func (s SignatureScheme) PrefixMessage(msg []byte) []byte {
	switch s {
	case Ethereum:
		prefixed := append(personalMessagePrefix(msg), msg...)
		return prefixed
	case Sr25519:
		return preHashIfNeeded(msg)
	default:
		return msg
	}
}

// preHashIfNeeded blake2b-256-hashes payloads over 256 bytes, matching the
// Substrate extrinsic signing convention for oversized payloads.
func preHashIfNeeded(payload []byte) []byte {
	if len(payload) <= 256 {
		return payload
	}
	sum := blake2b.Sum256(payload)
	return sum[:]
}

// Sr25519Scheme is the injected collaborator for the Sr25519 branch; no
// implementation ships in this module (see type doc).
type Sr25519Scheme interface {
	Sign(msg []byte, secretKey []byte) ([]byte, error)
	Verify(pubkey, msg, sig []byte) (bool, error)
}

// Sign signs msg (after PrefixMessage framing) under secretKey. For the
// Ethereum scheme, secretKey is a raw 32-byte secp256k1 private key. For
// Sr25519, sr is required and does the actual signing.
func (s SignatureScheme) Sign(msg []byte, secretKey []byte, sr Sr25519Scheme) ([]byte, error) {
	framed := s.PrefixMessage(msg)
	switch s {
	case Ethereum:
		priv, err := ethcrypto.ToECDSA(secretKey)
		if err != nil {
			return nil, fmt.Errorf("common: invalid ethereum private key: %w", err)
		}
		hash := ethcrypto.Keccak256(framed)
		return ethcrypto.Sign(hash, priv)
	case Sr25519:
		if sr == nil {
			return nil, ErrSr25519Unwired
		}
		return sr.Sign(framed, secretKey)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, s)
	}
}

// Verify checks sig against msg under pubkey. For Ethereum, pubkey is the
// 33-byte compressed or 65-byte uncompressed (0x04-prefixed) public key;
// sig is the 65-byte [R||S||V] signature, whose V byte is not checked.
func (s SignatureScheme) Verify(pubkey, msg, sig []byte, sr Sr25519Scheme) (bool, error) {
	framed := s.PrefixMessage(msg)
	switch s {
	case Ethereum:
		if len(sig) != 65 {
			return false, fmt.Errorf("%w: ethereum signature must be 65 bytes", ErrBadLength)
		}
		hash := ethcrypto.Keccak256(framed)
		return ethcrypto.VerifySignature(pubkey, hash, sig[:64]), nil
	case Sr25519:
		if sr == nil {
			return false, ErrSr25519Unwired
		}
		return sr.Verify(pubkey, framed, sig)
	default:
		return false, fmt.Errorf("%w: %d", ErrUnsupportedKind, s)
	}
}

// RecoverEthereumSigner recovers the signing address from a 65-byte
// [R||S||V] signature over msg, using the Ethereum scheme's framing.
func RecoverEthereumSigner(msg, sig []byte) (ethAddr [20]byte, err error) {
	if len(sig) != 65 {
		return ethAddr, fmt.Errorf("%w: ethereum signature must be 65 bytes", ErrBadLength)
	}
	framed := Ethereum.PrefixMessage(msg)
	hash := ethcrypto.Keccak256(framed)
	pub, err := ethcrypto.SigToPub(hash, sig)
	if err != nil {
		return ethAddr, fmt.Errorf("common: recover signer: %w", err)
	}
	copy(ethAddr[:], ethcrypto.PubkeyToAddress(*pub).Bytes())
	return ethAddr, nil
}
