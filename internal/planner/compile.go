package planner

import (
	"errors"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/graph"
	"github.com/privadex/aggregator/internal/registry"
	"github.com/privadex/aggregator/internal/router"
)

var (
	ErrUnexpectedStillProcessingSwap = errors.New("planner: unexpected still-processing swap state")
	ErrStartedWrapEndedUnwrap        = errors.New("planner: wrap-then-unwrap run is disallowed")
	ErrUnexpectedSwapAfterUnwrap     = errors.New("planner: swap edge found immediately after an unwrap")
)

// parseSwapState tracks an in-progress run of consecutive same-DEX CPMM
// swap edges (possibly opened by a preceding Wrap), mirroring
// helper_process_graph_edge.rs's ParseSwapState.
type parseSwapState struct {
	startIdx       int
	startedWithWrap bool
}

// escrowAddr is the module-wide escrow account the prestart/postend
// transfers move funds into and out of. A real deployment would source
// this from chain-specific deployment config; it's fixed here since escrow
// account provisioning is out of this module's scope.
var escrowAddr = pcommon.EthereumAddress(ethcommon.Address{})

// CompileExecutionPlan converts sol into an ExecutionPlan, running the
// ParseSwapState left-to-right fold over sol.Path (spec.md §4.4). Returns
// only the errors the fold itself can raise; structural validation is a
// separate pass (see validator.go).
func CompileExecutionPlan(sol router.GraphSolution) (ExecutionPlan, error) {
	seed := big.NewInt(0)
	nextID := func() pcommon.Uuid {
		id := pcommon.UuidFromSeed(seed)
		seed.Add(seed, big.NewInt(1))
		return id
	}

	var steps []ExecutionStep
	var state *parseSwapState

	for idx, edge := range sol.Path {
		var newStep *ExecutionStep
		var err error

		switch edge.Kind {
		case graph.BridgeEdge:
			newStep, err = processXCMBridgeEdge(edge, state, nextID)
			if err == nil && newStep != nil {
				state = nil
			}
		case graph.WrapEdge:
			var updated *parseSwapState
			newStep, updated, err = processWrapEdge(edge, sol.Path, idx, state, nextID)
			if err == nil {
				state = updated
			}
		case graph.UnwrapEdge:
			newStep, err = processUnwrapEdge(edge, sol.Path, idx, state, nextID)
			if err == nil && newStep != nil {
				state = nil
			}
		case graph.SwapEdge:
			var updated *parseSwapState
			newStep, updated, err = processCPMMEdge(edge, sol.Path, idx, state, nextID)
			if err == nil {
				if newStep != nil {
					state = nil
				} else {
					state = updated
				}
			}
		}
		if err != nil {
			return ExecutionPlan{}, err
		}
		if newStep != nil {
			if len(steps) == 0 {
				newStep.AmountIn = new(big.Int).Set(sol.AmountIn)
			}
			steps = append(steps, *newStep)
		}
	}

	if state != nil {
		return ExecutionPlan{}, ErrUnexpectedStillProcessingSwap
	}

	prestart := buildTransferStep(sol.SrcToken, sol.SrcAddr, escrowAddr, sol.AmountIn, nextID)
	postend := buildTransferStep(sol.DestToken, escrowAddr, sol.DestAddr, nil, nextID)

	return ExecutionPlan{
		ID:           nextID(),
		Prestart:     prestart,
		Paths:        []ExecutionPath{{ID: nextID(), Steps: steps}},
		Postend:      postend,
		QuotedNetOut: new(big.Int).Set(sol.QuotedOut),
	}, nil
}

func buildTransferStep(token pcommon.UniversalTokenId, from, to pcommon.UniversalAddress, amount *big.Int, nextID func() pcommon.Uuid) ExecutionStep {
	step := ExecutionStep{
		ID:       nextID(),
		Chain:    token.Chain,
		SrcAddr:  from,
		DestAddr: to,
		AmountIn: amount,
	}
	if token.ID.Kind == pcommon.NativeToken {
		step.Kind = StepEthSend
	} else {
		step.Kind = StepERC20Transfer
		addrCopy := token.ID.Addr
		step.TokenAddr = &addrCopy
	}
	return step
}

func processXCMBridgeEdge(edge graph.Edge, state *parseSwapState, nextID func() pcommon.Uuid) (*ExecutionStep, error) {
	if state != nil {
		return nil, ErrUnexpectedStillProcessingSwap
	}
	step := &ExecutionStep{
		ID:              nextID(),
		Kind:            StepXCMTransfer,
		Chain:           edge.Src.Chain,
		SrcAddr:         escrowAddr,
		DestAddr:        escrowAddr,
		SrcToken:        edge.Src,
		DestToken:       edge.Dest,
		DestChain:       edge.Dest.Chain,
		BridgeFeeNative: edge.BridgeFeeInDestNative,
	}
	return step, nil
}

func processWrapEdge(edge graph.Edge, path []graph.Edge, idx int, state *parseSwapState, nextID func() pcommon.Uuid) (*ExecutionStep, *parseSwapState, error) {
	nextDexID, hasNextDex := nextSwapDexID(path, idx)

	switch {
	case !hasNextDex && state == nil:
		step := &ExecutionStep{
			ID:       nextID(),
			Kind:     StepEthWrap,
			Chain:    edge.Src.Chain,
			SrcAddr:  escrowAddr,
			DestAddr: escrowAddr,
			WETHAddr: edge.WETHAddr,
		}
		return step, nil, nil
	case hasNextDex && state == nil:
		_ = nextDexID
		return nil, &parseSwapState{startIdx: idx, startedWithWrap: true}, nil
	default:
		return nil, nil, ErrUnexpectedStillProcessingSwap
	}
}

func processUnwrapEdge(edge graph.Edge, path []graph.Edge, idx int, state *parseSwapState, nextID func() pcommon.Uuid) (*ExecutionStep, error) {
	isNextStepSwap := idx+1 < len(path) && path[idx+1].Kind == graph.SwapEdge

	switch {
	case !isNextStepSwap && state == nil:
		step := &ExecutionStep{
			ID:       nextID(),
			Kind:     StepEthUnwrap,
			Chain:    edge.Src.Chain,
			SrcAddr:  escrowAddr,
			DestAddr: escrowAddr,
			WETHAddr: edge.WETHAddr,
		}
		return step, nil
	case !isNextStepSwap && state != nil:
		if state.startedWithWrap {
			return nil, ErrStartedWrapEndedUnwrap
		}
		run := path[state.startIdx:idx]
		return buildDexSwapStep(run, SwapExactTokensForETH, nextID), nil
	default: // isNextStepSwap
		return nil, ErrUnexpectedSwapAfterUnwrap
	}
}

func processCPMMEdge(edge graph.Edge, path []graph.Edge, idx int, state *parseSwapState, nextID func() pcommon.Uuid) (*ExecutionStep, *parseSwapState, error) {
	isNextStepUnwrap := idx+1 < len(path) && path[idx+1].Kind == graph.UnwrapEdge
	nextDexID, hasNextDex := nextSwapDexID(path, idx)
	isLastConsecutive := !isNextStepUnwrap && !(hasNextDex && nextDexID == edge.Dex.ID)

	switch {
	case !isLastConsecutive && state != nil:
		return nil, state, nil // NoChange
	case !isLastConsecutive && state == nil:
		return nil, &parseSwapState{startIdx: idx, startedWithWrap: false}, nil
	case isLastConsecutive && state == nil:
		step := buildDexSwapStep(path[idx:idx+1], SwapExactTokensForTokens, nextID)
		return step, nil, nil
	default: // isLastConsecutive && state != nil
		fn := SwapExactTokensForTokens
		if state.startedWithWrap {
			fn = SwapExactETHForTokens
		}
		run := path[state.startIdx : idx+1]
		step := buildDexSwapStep(run, fn, nextID)
		return step, nil, nil
	}
}

// buildDexSwapStep fuses a run of edges (a leading Wrap plus one or more
// same-DEX CPMM swaps, or just the swaps) into a single EthDexSwap step.
func buildDexSwapStep(run []graph.Edge, fn DexRouterFunction, nextID func() pcommon.Uuid) *ExecutionStep {
	swaps := make([]graph.Edge, 0, len(run))
	for _, e := range run {
		if e.Kind == graph.SwapEdge {
			swaps = append(swaps, e)
		}
	}
	first := swaps[0]

	path := make([]pcommon.UniversalTokenId, 0, len(swaps)+1)
	path = append(path, first.Src)
	for _, e := range swaps {
		path = append(path, e.Dest)
	}

	dex, _ := registry.LookupDex(first.Dex.ID)
	return &ExecutionStep{
		ID:             nextID(),
		Kind:           StepEthDexSwap,
		Chain:          first.Src.Chain,
		SrcAddr:        escrowAddr,
		DestAddr:       escrowAddr,
		RouterFunction: fn,
		RouterAddr:     dex.RouterAddr,
		TokenPath:      path,
		AmountOutMin:   big.NewInt(0),
	}
}

// nextSwapDexID returns the DexID of path[idx+1] if it exists and is a Swap
// edge.
func nextSwapDexID(path []graph.Edge, idx int) (registry.DexID, bool) {
	if idx+1 >= len(path) {
		return 0, false
	}
	next := path[idx+1]
	if next.Kind != graph.SwapEdge {
		return 0, false
	}
	return next.Dex.ID, true
}
