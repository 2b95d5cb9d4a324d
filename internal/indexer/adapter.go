// Package indexer looks up confirmed XCM transfers on a parachain/relay
// chain's indexer so the executor can tell when a BridgeEdge's XCMTransfer
// step has actually landed on its destination. Pallet/direction selection
// is grounded on
// original_source/dex_aggregator/executor/src/substrate_utils/indexer_utils/xcm_transfer_lookup.rs;
// the poll-and-match shape follows the teacher's bridge-sdk/listeners.go
// (config + injected handler, no internal retry/backoff of its own —
// callers wrap it with executor.RetryQueue).
package indexer

import (
	"context"
	"errors"
	"math/big"

	pcommon "github.com/privadex/aggregator/internal/common"
)

// TokenPallet names the Substrate pallet a balance transfer moved through.
type TokenPallet int

const (
	BalancePallet TokenPallet = iota
	AssetPallet
)

func (p TokenPallet) String() string {
	if p == BalancePallet {
		return "Balance"
	}
	return "Asset"
}

// MessagePassingDirection names which XCM transport carried the message.
type MessagePassingDirection int

const (
	Xcmp MessagePassingDirection = iota // parachain <-> parachain
	Ump                                 // parachain -> relay (upward)
	Dmp                                 // relay -> parachain (downward)
)

func (d MessagePassingDirection) String() string {
	switch d {
	case Xcmp:
		return "Xcmp"
	case Ump:
		return "Ump"
	case Dmp:
		return "Dmp"
	default:
		return "UnknownDirection"
	}
}

var ErrBothRelayChain = errors.New("indexer: a message between two relay chains has no XCM direction")

// SelectTokenPallet picks Balance when the destination token is native,
// Asset (XC-20) otherwise.
func SelectTokenPallet(destToken pcommon.ChainTokenId) TokenPallet {
	if destToken.Kind == pcommon.NativeToken {
		return BalancePallet
	}
	return AssetPallet
}

// SelectMessagePassingDirection picks the XCM transport a message between
// src and dest would have used. Returns ErrBothRelayChain if neither side
// is a parachain, since relay chains don't send XCM to each other directly.
func SelectMessagePassingDirection(src, dest pcommon.UniversalChainId) (MessagePassingDirection, error) {
	switch {
	case src.IsParachain() && dest.IsParachain():
		return Xcmp, nil
	case src.IsParachain() && !dest.IsParachain():
		return Ump, nil
	case !src.IsParachain() && dest.IsParachain():
		return Dmp, nil
	default:
		return 0, ErrBothRelayChain
	}
}

// TransferRecord is one confirmed XCM transfer an indexer has observed.
type TransferRecord struct {
	SrcChain    pcommon.UniversalChainId
	DestChain   pcommon.UniversalChainId
	DestToken   pcommon.UniversalTokenId
	DestAddr    pcommon.UniversalAddress
	AmountOut   *big.Int
	Pallet      TokenPallet
	Direction   MessagePassingDirection
	BlockHeight uint64
}

// Lookup queries a chain's XCM indexer (e.g. a Subsquid GraphQL endpoint)
// for a transfer matching the given criteria. Implementations poll; a
// lookup that hasn't landed yet returns (nil, nil) rather than an error, so
// callers can tell "not yet" from "transport failure".
type Lookup interface {
	FindIncomingTransfer(ctx context.Context, destChain pcommon.UniversalChainId, destAddr pcommon.UniversalAddress, destToken pcommon.UniversalTokenId, afterBlock uint64) (*TransferRecord, error)
}

// Adapter wraps a chain-specific Lookup with the pallet/direction
// classification every BridgeEdge step needs attached to a match.
type Adapter struct {
	lookups map[pcommon.UniversalChainId]Lookup
}

// NewAdapter builds an Adapter over the given per-chain Lookup
// implementations.
func NewAdapter(lookups map[pcommon.UniversalChainId]Lookup) *Adapter {
	return &Adapter{lookups: lookups}
}

// FindTransfer resolves the incoming-transfer match for a single
// XCMTransfer step, classifying it with the pallet/direction the transfer
// must have used.
func (a *Adapter) FindTransfer(
	ctx context.Context,
	srcChain, destChain pcommon.UniversalChainId,
	destAddr pcommon.UniversalAddress,
	destToken pcommon.UniversalTokenId,
	afterBlock uint64,
) (*TransferRecord, error) {
	lookup, ok := a.lookups[destChain]
	if !ok {
		return nil, errUnsupportedChain(destChain)
	}

	record, err := lookup.FindIncomingTransfer(ctx, destChain, destAddr, destToken, afterBlock)
	if err != nil || record == nil {
		return record, err
	}

	record.Pallet = SelectTokenPallet(destToken.ID)
	direction, err := SelectMessagePassingDirection(srcChain, destChain)
	if err != nil {
		return nil, err
	}
	record.Direction = direction
	return record, nil
}

type unsupportedChainError struct {
	chain pcommon.UniversalChainId
}

func (e *unsupportedChainError) Error() string {
	return "indexer: no lookup configured for chain " + e.chain.String()
}

func errUnsupportedChain(chain pcommon.UniversalChainId) error {
	return &unsupportedChainError{chain: chain}
}
