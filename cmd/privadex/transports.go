package main

import (
	"context"
	"math/big"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/planner"
)

// simEthTransport drives every EVM-local step to completion on its second
// status poll (stepforward_test.go's fakeEthTransport confirms on the first).
// Real chain RPC transports are out of scope (spec.md §1); the CLI only
// needs to demonstrate StepForward's one-step-per-call contract end to end.
type simEthTransport struct {
	polls map[pcommon.Uuid]int
}

func newSimEthTransport() *simEthTransport {
	return &simEthTransport{polls: make(map[pcommon.Uuid]int)}
}

func (s *simEthTransport) Submit(ctx context.Context, step planner.ExecutionStep) ([32]byte, error) {
	var hash [32]byte
	hash[0] = byte(len(s.polls) + 1)
	return hash, nil
}

func (s *simEthTransport) Status(ctx context.Context, step planner.ExecutionStep, hash [32]byte) (planner.EthStepStatus, *big.Int, error) {
	s.polls[step.ID]++
	if s.polls[step.ID] < 2 {
		return planner.EthSubmitted, nil, nil
	}
	return planner.EthConfirmed, new(big.Int).Set(step.AmountIn), nil
}

// simXCMSubmit is the executor.XCMSubmitFunc the demo CLI wires into
// executor.IndexerXCMTransport: broadcasting a live Substrate extrinsic is
// out of scope (spec.md §1), so it just mints a deterministic message hash.
// Status confirmation runs through the real indexer.Adapter instead of a
// canned fixture — see demoXCMLookup in fixtures.go.
func simXCMSubmit(seen map[pcommon.Uuid]struct{}) func(ctx context.Context, step planner.ExecutionStep) ([32]byte, error) {
	return func(ctx context.Context, step planner.ExecutionStep) ([32]byte, error) {
		var hash [32]byte
		hash[0] = byte(len(seen) + 1)
		seen[step.ID] = struct{}{}
		return hash, nil
	}
}
