package executor

import (
	"context"
	"math/big"

	"github.com/privadex/aggregator/internal/indexer"
	"github.com/privadex/aggregator/internal/planner"
)

// XCMSubmitFunc issues the actual Substrate extrinsic that starts an
// XCMTransfer step and returns its message hash; broadcasting a live
// extrinsic is out of this module's scope (spec.md's Non-goals around live
// transport), so it's injected rather than implemented here.
type XCMSubmitFunc func(ctx context.Context, step planner.ExecutionStep) ([32]byte, error)

// IndexerXCMTransport is the production XCMTransport: Submit delegates to
// whatever extrinsic submitter the caller wires in, and Status polls a real
// indexer.Adapter for the destination chain's incoming transfer instead of
// a canned fixture.
type IndexerXCMTransport struct {
	Submitter XCMSubmitFunc
	Adapter   *indexer.Adapter
}

// NewIndexerXCMTransport builds an IndexerXCMTransport over submitter and
// adapter.
func NewIndexerXCMTransport(submitter XCMSubmitFunc, adapter *indexer.Adapter) *IndexerXCMTransport {
	return &IndexerXCMTransport{Submitter: submitter, Adapter: adapter}
}

// Submit issues the transfer via t.Submitter.
func (t *IndexerXCMTransport) Submit(ctx context.Context, step planner.ExecutionStep) ([32]byte, error) {
	return t.Submitter(ctx, step)
}

// Status reports LocalConfirmed once the message has been submitted (the
// XCM message has left the source chain) and advances to Confirmed only
// once t.Adapter.FindTransfer matches a completed transfer on the
// destination chain; indexer.Lookup.FindIncomingTransfer's (nil, nil) "not
// yet" contract keeps this a plain poll with no transport error of its own.
func (t *IndexerXCMTransport) Status(ctx context.Context, step planner.ExecutionStep, messageHash [32]byte) (planner.CrossChainStepStatus, *big.Int, error) {
	record, err := t.Adapter.FindTransfer(ctx, step.Chain, step.DestChain, step.DestAddr, step.DestToken, 0)
	if err != nil {
		return planner.XCMLocalConfirmed, nil, err
	}
	if record == nil {
		return planner.XCMLocalConfirmed, nil, nil
	}
	return planner.XCMConfirmed, record.AmountOut, nil
}
