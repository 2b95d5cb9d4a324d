package executor

import (
	"math/big"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/planner"
)

// PlanRuntime wraps an ExecutionPlan with the in-flight transaction/message
// hashes StepForward needs across ticks. The plan's steps stay the
// compiler's immutable output; hashes, statuses, and observed output amounts
// live here instead of mutating planner.ExecutionStep in place.
type PlanRuntime struct {
	Plan *planner.ExecutionPlan

	ethHash map[pcommon.Uuid][32]byte
	xcmHash map[pcommon.Uuid][32]byte
	ethStat map[pcommon.Uuid]planner.EthStepStatus
	xcmStat map[pcommon.Uuid]planner.CrossChainStepStatus
	amtOut  map[pcommon.Uuid]*big.Int
}

// NewPlanRuntime wraps plan for stepwise execution. All steps start
// NotStarted regardless of whatever status planner.CompileExecutionPlan left
// on them.
func NewPlanRuntime(plan *planner.ExecutionPlan) *PlanRuntime {
	return &PlanRuntime{
		Plan:    plan,
		ethHash: make(map[pcommon.Uuid][32]byte),
		xcmHash: make(map[pcommon.Uuid][32]byte),
		ethStat: make(map[pcommon.Uuid]planner.EthStepStatus),
		xcmStat: make(map[pcommon.Uuid]planner.CrossChainStepStatus),
		amtOut:  make(map[pcommon.Uuid]*big.Int),
	}
}

// AmountOut returns the observed output amount for a terminal step, or nil
// if the step hasn't confirmed yet.
func (r *PlanRuntime) AmountOut(id pcommon.Uuid) *big.Int {
	return r.amtOut[id]
}

func (r *PlanRuntime) ethStatus(id pcommon.Uuid) planner.EthStepStatus {
	return r.ethStat[id] // zero value is EthNotStarted
}

func (r *PlanRuntime) xcmStatus(id pcommon.Uuid) planner.CrossChainStepStatus {
	return r.xcmStat[id] // zero value is XCMNotStarted
}

// IsDone reports whether the plan has nothing left to advance: either every
// step reached a terminal status, or an earlier step landed on an
// unsuccessful terminal status (Failed/Dropped), which per spec.md §4.5's
// absorbing status lattice ends the plan without submitting anything
// downstream.
func (r *PlanRuntime) IsDone() bool {
	if r.hasUnsuccessfulTerminalStep() {
		return true
	}
	for _, step := range r.allSteps() {
		if !r.stepTerminal(step) {
			return false
		}
	}
	return true
}

// FinalStatus reports the plan's terminal outcome once IsDone is true,
// mirroring spec.md §4.5's Plan.status absorbing rule: any Dropped step
// makes the plan Dropped, else any Failed step makes it Failed, else
// Succeeded.
func (r *PlanRuntime) FinalStatus() string {
	dropped, failed := false, false
	for _, step := range r.allSteps() {
		if step.IsCrossChain() {
			switch r.xcmStatus(step.ID) {
			case planner.XCMDropped:
				dropped = true
			case planner.XCMFailed:
				failed = true
			}
			continue
		}
		switch r.ethStatus(step.ID) {
		case planner.EthDropped:
			dropped = true
		case planner.EthFailed:
			failed = true
		}
	}
	switch {
	case dropped:
		return "dropped"
	case failed:
		return "failed"
	default:
		return "succeeded"
	}
}

func (r *PlanRuntime) stepTerminal(step planner.ExecutionStep) bool {
	if step.IsCrossChain() {
		return r.xcmStatus(step.ID).IsTerminal()
	}
	return r.ethStatus(step.ID).IsTerminal()
}

// stepUnsuccessful reports whether step landed on Failed or Dropped, the
// two terminal statuses that must halt downstream progress rather than just
// being "done with this step".
func (r *PlanRuntime) stepUnsuccessful(step planner.ExecutionStep) bool {
	if step.IsCrossChain() {
		s := r.xcmStatus(step.ID)
		return s == planner.XCMFailed || s == planner.XCMDropped
	}
	s := r.ethStatus(step.ID)
	return s == planner.EthFailed || s == planner.EthDropped
}

func (r *PlanRuntime) hasUnsuccessfulTerminalStep() bool {
	for _, step := range r.allSteps() {
		if r.stepUnsuccessful(step) {
			return true
		}
	}
	return false
}

// previousStep returns the step immediately before id in plan order
// (prestart, then each path's steps, then postend), used to propagate
// amount_in from the prior step's observed amount_out (spec.md §4.5).
func (r *PlanRuntime) previousStep(id pcommon.Uuid) (planner.ExecutionStep, bool) {
	steps := r.allSteps()
	for i, s := range steps {
		if s.ID == id {
			if i == 0 {
				return planner.ExecutionStep{}, false
			}
			return steps[i-1], true
		}
	}
	return planner.ExecutionStep{}, false
}

func (r *PlanRuntime) allSteps() []planner.ExecutionStep {
	steps := []planner.ExecutionStep{r.Plan.Prestart}
	for _, path := range r.Plan.Paths {
		steps = append(steps, path.Steps...)
	}
	steps = append(steps, r.Plan.Postend)
	return steps
}

// Snapshot renders the plan with each step's EthStatus/XCMStatus/AmountOut
// filled in from this runtime's tracked maps — the compiler leaves those
// fields zero, so storage.PlanStore.Put needs this to persist anything
// beyond the static plan shape.
func (r *PlanRuntime) Snapshot() planner.ExecutionPlan {
	snap := *r.Plan
	snap.Prestart = r.snapshotStep(r.Plan.Prestart)
	snap.Postend = r.snapshotStep(r.Plan.Postend)
	snap.Paths = make([]planner.ExecutionPath, len(r.Plan.Paths))
	for i, path := range r.Plan.Paths {
		steps := make([]planner.ExecutionStep, len(path.Steps))
		for j, step := range path.Steps {
			steps[j] = r.snapshotStep(step)
		}
		snap.Paths[i] = planner.ExecutionPath{ID: path.ID, Steps: steps}
	}
	return snap
}

func (r *PlanRuntime) snapshotStep(step planner.ExecutionStep) planner.ExecutionStep {
	if step.IsCrossChain() {
		step.XCMStatus = r.xcmStatus(step.ID)
	} else {
		step.EthStatus = r.ethStatus(step.ID)
	}
	step.AmountOut = r.amtOut[step.ID]
	return step
}
