// Package executor drives an planner.ExecutionPlan forward one step at a
// time. It never blocks on confirmation inside a single call — StepForward
// ticks whatever is in flight and returns, so the caller's poll loop is the
// only place that waits (spec.md §4.5/§9: "polling state machine, no
// continuations"). Grounded on the teacher's
// core/relay-chain/dex/cross_chain_dex.go status-transition shape,
// restructured from goroutine-per-order into a pure externally-ticked call.
package executor

import (
	"context"
	"math/big"

	"github.com/privadex/aggregator/internal/planner"
)

// EthTransport submits and polls EVM-local steps (EthSend, ERC20Transfer,
// EthWrap, EthUnwrap, EthDexSwap). A production implementation would wrap an
// ethclient.Client per chain; this module models only the interface, per
// spec.md's Non-goals around live transport.
type EthTransport interface {
	Submit(ctx context.Context, step planner.ExecutionStep) (txHash [32]byte, err error)
	Status(ctx context.Context, step planner.ExecutionStep, txHash [32]byte) (planner.EthStepStatus, *big.Int, error)
}

// XCMTransport submits and polls cross-chain XCMTransfer steps.
type XCMTransport interface {
	Submit(ctx context.Context, step planner.ExecutionStep) (messageHash [32]byte, err error)
	Status(ctx context.Context, step planner.ExecutionStep, messageHash [32]byte) (planner.CrossChainStepStatus, *big.Int, error)
}
