package planner

import (
	"errors"
)

// Structural invariants an ExecutionPlan must satisfy, transliterated from
// the validator this module's planning logic is grounded on. Each is a
// distinct sentinel so callers can match on the specific violation.
var (
	ErrEmptyPaths            = errors.New("planner: execution plan has no paths")
	ErrEmptyPathSteps        = errors.New("planner: an execution path has no steps")
	ErrBadPrestartKind       = errors.New("planner: prestart step must be EthSend or ERC20Transfer")
	ErrBadPostendKind        = errors.New("planner: postend step must be EthSend or ERC20Transfer")
	ErrFirstStepAmountNil    = errors.New("planner: first step's amount_in must be set")
	ErrWrapUnwrapAddrMismatch = errors.New("planner: wrap/unwrap step's src and dest address must match")

	ErrConsecutiveSameDexSwaps  = errors.New("planner: consecutive EthDexSwap steps on the same router")
	ErrConsecutiveWraps         = errors.New("planner: consecutive EthWrap steps")
	ErrConsecutiveUnwraps       = errors.New("planner: consecutive EthUnwrap steps")
	ErrConsecutiveWrapUnwrap    = errors.New("planner: EthWrap immediately followed by EthUnwrap")
	ErrConsecutiveUnwrapWrap    = errors.New("planner: EthUnwrap immediately followed by EthWrap")
	ErrSwapAfterWrapNotFused    = errors.New("planner: EthWrap immediately followed by an un-fused EthDexSwap")
	ErrUnwrapAfterSwapNotFused  = errors.New("planner: EthDexSwap immediately followed by an un-fused EthUnwrap")
	ErrUnexpectedEthSendMidPath = errors.New("planner: EthSend step found mid-path")
	ErrUnexpectedERC20Transfer  = errors.New("planner: ERC20Transfer step found mid-path")
)

// ValidateExecutionPlan checks every structural invariant an ExecutionPlan
// must satisfy before it's handed to the executor.
func ValidateExecutionPlan(plan ExecutionPlan) error {
	if len(plan.Paths) == 0 {
		return ErrEmptyPaths
	}
	if err := validateTransferStep(plan.Prestart, ErrBadPrestartKind); err != nil {
		return err
	}
	if err := validateTransferStep(plan.Postend, ErrBadPostendKind); err != nil {
		return err
	}

	for _, path := range plan.Paths {
		if len(path.Steps) == 0 {
			return ErrEmptyPathSteps
		}
		if path.Steps[0].AmountIn == nil {
			return ErrFirstStepAmountNil
		}
		for _, step := range path.Steps {
			if step.Kind == StepEthWrap || step.Kind == StepEthUnwrap {
				if step.SrcAddr != step.DestAddr {
					return ErrWrapUnwrapAddrMismatch
				}
			}
		}
		for i := 0; i+1 < len(path.Steps); i++ {
			if err := validateAdjacentSteps(path.Steps[i], path.Steps[i+1]); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTransferStep(step ExecutionStep, kindErr error) error {
	if step.Kind != StepEthSend && step.Kind != StepERC20Transfer {
		return kindErr
	}
	return nil
}

// validateAdjacentSteps checks the pairwise adjacency invariants over two
// consecutive steps within one ExecutionPath.
func validateAdjacentSteps(cur, next ExecutionStep) error {
	if next.Kind == StepEthSend {
		return ErrUnexpectedEthSendMidPath
	}
	if next.Kind == StepERC20Transfer {
		return ErrUnexpectedERC20Transfer
	}

	switch cur.Kind {
	case StepEthDexSwap:
		if next.Kind == StepEthDexSwap && cur.RouterAddr == next.RouterAddr {
			return ErrConsecutiveSameDexSwaps
		}
		if next.Kind == StepEthUnwrap {
			return ErrUnwrapAfterSwapNotFused
		}
	case StepEthWrap:
		if next.Kind == StepEthWrap {
			return ErrConsecutiveWraps
		}
		if next.Kind == StepEthUnwrap {
			return ErrConsecutiveWrapUnwrap
		}
		if next.Kind == StepEthDexSwap {
			return ErrSwapAfterWrapNotFused
		}
	case StepEthUnwrap:
		if next.Kind == StepEthUnwrap {
			return ErrConsecutiveUnwraps
		}
		if next.Kind == StepEthWrap {
			return ErrConsecutiveUnwrapWrap
		}
	}
	return nil
}
