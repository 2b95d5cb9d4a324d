package executor

import (
	"context"
	"errors"
	"math/big"

	"github.com/privadex/aggregator/internal/planner"
	"github.com/privadex/aggregator/internal/uniqueness"
)

var (
	// ErrPlanAlreadyDone is returned by StepForward once every step in the
	// plan has reached a terminal status, or once any step has ended Failed
	// or Dropped; there's nothing left to tick.
	ErrPlanAlreadyDone = errors.New("executor: plan has no remaining steps to advance")
)

// StepForwardResult reports what a single StepForward call actually did,
// mirroring spec.md §4.5's StepForwardResult{did_status_change, amount_out}
// so a caller can tell a no-op poll apart from real progress and knows
// whether the plan's persisted snapshot needs rewriting.
type StepForwardResult struct {
	DidStatusChange bool
	AmountOut       *big.Int
}

// StepForward advances the single step currently in flight by one tick: if
// it's NotStarted, submits it; if it's Submitted (or LocalConfirmed for an
// XCM step), polls its status. It touches at most one step per call and
// performs at most one transport round-trip, so a caller's poll loop
// controls all pacing and backoff (see retry.go). uniq gates the prestart
// step specifically: its submission is only accepted once the resulting
// transaction hash registers as unclaimed (spec.md §4.6).
func StepForward(ctx context.Context, rt *PlanRuntime, eth EthTransport, xcm XCMTransport, uniq *uniqueness.Registry) (StepForwardResult, error) {
	step, ok := rt.nextPendingStep()
	if !ok {
		return StepForwardResult{}, ErrPlanAlreadyDone
	}

	applyAmountPropagation(rt, &step)

	isPrestart := step.ID == rt.Plan.Prestart.ID

	if step.IsCrossChain() {
		return stepForwardXCM(ctx, rt, step, xcm)
	}
	return stepForwardEth(ctx, rt, step, eth, uniq, isPrestart)
}

// nextPendingStep returns the first non-terminal step in plan order:
// prestart, then each path's steps in order, then postend. A step that
// landed on an unsuccessful terminal status (Failed/Dropped) halts the
// search outright rather than being skipped past — spec.md §4.5 requires a
// dropped/failed step to end the plan without submitting anything
// downstream.
func (r *PlanRuntime) nextPendingStep() (planner.ExecutionStep, bool) {
	for _, step := range r.allSteps() {
		if r.stepUnsuccessful(step) {
			return planner.ExecutionStep{}, false
		}
		if !r.stepTerminal(step) {
			return step, true
		}
	}
	return planner.ExecutionStep{}, false
}

// applyAmountPropagation merges the previous step's observed amount_out
// into step.AmountIn when the compiler left it nil, per spec.md §4.5: each
// step's input is the prior step's realized output, not the SOR's original
// quote. Only the local copy is mutated; the plan's compiled steps stay
// immutable.
func applyAmountPropagation(rt *PlanRuntime, step *planner.ExecutionStep) {
	if step.AmountIn != nil {
		return
	}
	prev, ok := rt.previousStep(step.ID)
	if !ok {
		return
	}
	step.AmountIn = rt.AmountOut(prev.ID)
}

func stepForwardEth(ctx context.Context, rt *PlanRuntime, step planner.ExecutionStep, eth EthTransport, uniq *uniqueness.Registry, isPrestart bool) (StepForwardResult, error) {
	switch rt.ethStatus(step.ID) {
	case planner.EthNotStarted:
		hash, err := eth.Submit(ctx, step)
		if err != nil {
			rt.ethStat[step.ID] = planner.EthFailed
			return StepForwardResult{DidStatusChange: true}, err
		}

		if isPrestart && uniq != nil {
			alreadyRegistered, regErr := uniq.TryRegister(uniqueness.TxHash(hash))
			if regErr != nil {
				return StepForwardResult{}, regErr
			}
			if alreadyRegistered {
				rt.ethStat[step.ID] = planner.EthDropped
				return StepForwardResult{DidStatusChange: true}, nil
			}
		}

		rt.ethHash[step.ID] = hash
		rt.ethStat[step.ID] = planner.EthSubmitted
		return StepForwardResult{DidStatusChange: true}, nil
	case planner.EthSubmitted:
		hash := rt.ethHash[step.ID]
		status, amountOut, err := eth.Status(ctx, step, hash)
		if err != nil {
			return StepForwardResult{}, err
		}
		changed := status != rt.ethStat[step.ID]
		rt.ethStat[step.ID] = status
		if status == planner.EthConfirmed && amountOut != nil {
			rt.amtOut[step.ID] = amountOut
		}
		return StepForwardResult{DidStatusChange: changed, AmountOut: amountOut}, nil
	default:
		return StepForwardResult{}, nil // already terminal; nothing to do
	}
}

func stepForwardXCM(ctx context.Context, rt *PlanRuntime, step planner.ExecutionStep, xcm XCMTransport) (StepForwardResult, error) {
	switch rt.xcmStatus(step.ID) {
	case planner.XCMNotStarted:
		hash, err := xcm.Submit(ctx, step)
		if err != nil {
			rt.xcmStat[step.ID] = planner.XCMFailed
			return StepForwardResult{DidStatusChange: true}, err
		}
		rt.xcmHash[step.ID] = hash
		rt.xcmStat[step.ID] = planner.XCMSubmitted
		return StepForwardResult{DidStatusChange: true}, nil
	case planner.XCMSubmitted, planner.XCMLocalConfirmed:
		hash := rt.xcmHash[step.ID]
		status, amountOut, err := xcm.Status(ctx, step, hash)
		if err != nil {
			return StepForwardResult{}, err
		}
		changed := status != rt.xcmStat[step.ID]
		rt.xcmStat[step.ID] = status
		if status == planner.XCMConfirmed && amountOut != nil {
			rt.amtOut[step.ID] = amountOut
		}
		return StepForwardResult{DidStatusChange: changed, AmountOut: amountOut}, nil
	default:
		return StepForwardResult{}, nil
	}
}
