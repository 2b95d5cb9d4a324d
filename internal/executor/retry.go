package executor

import (
	"context"
	"sync"
	"time"
)

// RetryItem is one queued StepForward retry, ported from the teacher's
// bridge-sdk/retry_queue.go RetryItem.
type RetryItem struct {
	PlanID      string
	Attempts    int
	MaxAttempts int
	NextRetry   time.Time
	CreatedAt   time.Time
}

// RetryQueue re-tries failed plan ticks with the teacher's
// attempts-squared backoff (attempts^2 seconds), dropping an item once its
// failed attempts reach MaxAttempts.
type RetryQueue struct {
	items []RetryItem
	mutex sync.RWMutex
}

// NewRetryQueue returns an empty queue.
func NewRetryQueue() *RetryQueue {
	return &RetryQueue{}
}

// Enqueue schedules planID for its first retry attempt maxAttempts times
// before giving up.
func (rq *RetryQueue) Enqueue(planID string, maxAttempts int) {
	rq.mutex.Lock()
	defer rq.mutex.Unlock()
	rq.items = append(rq.items, RetryItem{
		PlanID:      planID,
		MaxAttempts: maxAttempts,
		NextRetry:   time.Now(),
		CreatedAt:   time.Now(),
	})
}

// Run ticks processor against every due item every interval until ctx is
// canceled, mirroring the teacher's ProcessRetries loop.
func (rq *RetryQueue) Run(ctx context.Context, interval time.Duration, processor func(RetryItem) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rq.processDue(processor)
		}
	}
}

func (rq *RetryQueue) processDue(processor func(RetryItem) error) {
	rq.mutex.Lock()
	defer rq.mutex.Unlock()

	now := time.Now()
	for i := len(rq.items) - 1; i >= 0; i-- {
		item := rq.items[i]
		if now.Before(item.NextRetry) {
			continue
		}
		if err := processor(item); err == nil {
			rq.items = append(rq.items[:i], rq.items[i+1:]...)
			continue
		}
		item.Attempts++
		if item.Attempts >= item.MaxAttempts {
			rq.items = append(rq.items[:i], rq.items[i+1:]...)
			continue
		}
		item.NextRetry = now.Add(time.Duration(item.Attempts*item.Attempts) * time.Second)
		rq.items[i] = item
	}
}

// Ready reports whether planID has no pending backoff entry, or its
// scheduled NextRetry has already elapsed — i.e. whether a tick should
// actually attempt the plan right now instead of waiting out a backoff
// from a prior failure.
func (rq *RetryQueue) Ready(planID string) bool {
	rq.mutex.RLock()
	defer rq.mutex.RUnlock()
	for _, item := range rq.items {
		if item.PlanID == planID {
			return !time.Now().Before(item.NextRetry)
		}
	}
	return true
}

// Resolve drops planID's backoff entry, called once a tick against it
// succeeds.
func (rq *RetryQueue) Resolve(planID string) {
	rq.mutex.Lock()
	defer rq.mutex.Unlock()
	for i, item := range rq.items {
		if item.PlanID == planID {
			rq.items = append(rq.items[:i], rq.items[i+1:]...)
			return
		}
	}
}

// recordFailure registers a failed tick for planID, applying the same
// attempts-squared backoff processDue uses and dropping the entry once its
// failed attempts reach MaxAttempts; a later failure for the same planID
// starts a fresh entry at one attempt.
func (rq *RetryQueue) recordFailure(planID string, maxAttempts int) {
	rq.mutex.Lock()
	defer rq.mutex.Unlock()

	now := time.Now()
	for i, item := range rq.items {
		if item.PlanID != planID {
			continue
		}
		item.Attempts++
		if item.Attempts >= item.MaxAttempts {
			rq.items = append(rq.items[:i], rq.items[i+1:]...)
			return
		}
		item.NextRetry = now.Add(time.Duration(item.Attempts*item.Attempts) * time.Second)
		rq.items[i] = item
		return
	}

	rq.items = append(rq.items, RetryItem{
		PlanID:      planID,
		Attempts:    1,
		MaxAttempts: maxAttempts,
		NextRetry:   now.Add(time.Second),
		CreatedAt:   now,
	})
}

// Len reports how many items are currently queued.
func (rq *RetryQueue) Len() int {
	rq.mutex.RLock()
	defer rq.mutex.RUnlock()
	return len(rq.items)
}
