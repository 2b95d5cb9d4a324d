// Package storage persists ExecutionPlans and their step statuses as JSON
// blobs. Nothing in the module reloads a stored plan into a running
// executor: executor.NewPlanRuntime starts from the plan it is given, and
// transaction hashes are not stored. The store stands in for the
// out-of-scope S3-backed plan archive behind the same bbolt-bucket pattern
// the teacher uses for its replay-protection store.
package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/planner"
)

const plansBucket = "execution_plans"

// PlanStore is a bbolt-backed key-value store of ExecutionPlans, keyed by
// plan UUID.
type PlanStore struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) the plan store's bbolt database under
// dataDir.
func Open(dataDir string) (*PlanStore, error) {
	dbPath := filepath.Join(dataDir, "plans.db")
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage: open bbolt: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(plansBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create bucket: %w", err)
	}
	return &PlanStore{db: db}, nil
}

// Put stores (or overwrites) plan under its own id.
func (s *PlanStore) Put(plan planner.ExecutionPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("storage: marshal plan: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(plansBucket))
		return bucket.Put([]byte(plan.ID.ToHexString()), data)
	})
}

// Get retrieves a plan by id. Returns (zero, false, nil) if it isn't stored.
func (s *PlanStore) Get(id pcommon.Uuid) (planner.ExecutionPlan, bool, error) {
	var plan planner.ExecutionPlan
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(plansBucket))
		data := bucket.Get([]byte(id.ToHexString()))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &plan)
	})
	if err != nil {
		return planner.ExecutionPlan{}, false, fmt.Errorf("storage: get plan: %w", err)
	}
	return plan, found, nil
}

// Delete removes a plan from the store. It's not an error to delete a
// nonexistent id.
func (s *PlanStore) Delete(id pcommon.Uuid) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(plansBucket))
		return bucket.Delete([]byte(id.ToHexString()))
	})
}

// List returns every plan currently stored. Intended for operator tooling
// and tests; not for the executor's hot path.
func (s *PlanStore) List() ([]planner.ExecutionPlan, error) {
	var plans []planner.ExecutionPlan
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(plansBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var plan planner.ExecutionPlan
			if err := json.Unmarshal(v, &plan); err != nil {
				return err
			}
			plans = append(plans, plan)
			return nil
		})
	})
	return plans, err
}

// Close closes the underlying database.
func (s *PlanStore) Close() error {
	return s.db.Close()
}
