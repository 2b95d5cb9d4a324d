package executor

import (
	"context"
	"fmt"

	"github.com/privadex/aggregator/internal/uniqueness"
)

// DefaultMaxTickAttempts bounds how many consecutive StepForward failures
// TickWithRetry tolerates for a single plan before dropping its backoff
// entry from the retry queue (a further failure starts a new entry); the
// circuit breaker guards the shared transport
// independently of any one plan's attempt count.
const DefaultMaxTickAttempts = 5

// TickWithRetry wraps StepForward with the circuit breaker and retry queue
// ported from the teacher's bridge-sdk: a tripped breaker or a plan still
// backing off from a prior failure skips the tick outright; otherwise
// StepForward runs, a success clears both, and a failure records against
// both.
func TickWithRetry(
	ctx context.Context,
	rt *PlanRuntime,
	eth EthTransport,
	xcm XCMTransport,
	uniq *uniqueness.Registry,
	cb *CircuitBreaker,
	rq *RetryQueue,
) (StepForwardResult, error) {
	planID := rt.Plan.ID.String()

	if !cb.CanExecute() {
		return StepForwardResult{}, fmt.Errorf("executor: circuit breaker %q open", cb.Name)
	}
	if !rq.Ready(planID) {
		return StepForwardResult{}, nil
	}

	res, err := StepForward(ctx, rt, eth, xcm, uniq)
	if err != nil {
		if err == ErrPlanAlreadyDone {
			return res, err
		}
		cb.RecordFailure()
		rq.recordFailure(planID, DefaultMaxTickAttempts)
		return res, err
	}

	cb.RecordSuccess()
	rq.Resolve(planID)
	return res, nil
}
