package common

import "errors"

// Low-level codec errors, mirroring the teacher's sentinel-error style
// (plain exported vars wrapped with fmt.Errorf at call sites).
var (
	ErrInvalidHex       = errors.New("common: invalid hex string")
	ErrBadBase58        = errors.New("common: invalid base58 string")
	ErrBadLength        = errors.New("common: value has the wrong byte length")
	ErrInvalidChecksum  = errors.New("common: checksum mismatch")
	ErrInvalidPrefix    = errors.New("common: unrecognized address prefix")
	ErrUnsupportedKind  = errors.New("common: unsupported variant for this operation")
	ErrSr25519Unwired   = errors.New("common: sr25519 signing/verification requires an injected Sr25519Scheme")
)
