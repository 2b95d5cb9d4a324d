package storage

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pcommon "github.com/privadex/aggregator/internal/common"
	"github.com/privadex/aggregator/internal/planner"
)

func samplePlan() planner.ExecutionPlan {
	return planner.ExecutionPlan{
		ID:       pcommon.NewUuid(),
		Prestart: planner.ExecutionStep{ID: pcommon.NewUuid(), Kind: planner.StepEthSend, AmountIn: big.NewInt(1000)},
		Paths: []planner.ExecutionPath{{
			ID:    pcommon.NewUuid(),
			Steps: []planner.ExecutionStep{{ID: pcommon.NewUuid(), Kind: planner.StepEthDexSwap, AmountIn: big.NewInt(1000)}},
		}},
		Postend:      planner.ExecutionStep{ID: pcommon.NewUuid(), Kind: planner.StepEthSend},
		QuotedNetOut: big.NewInt(900),
	}
}

func TestPutGetRoundTrips(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	plan := samplePlan()
	require.NoError(t, store.Put(plan))

	got, found, err := store.Get(plan.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, plan.ID, got.ID)
	assert.Equal(t, 0, plan.QuotedNetOut.Cmp(got.QuotedNetOut))
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.Get(pcommon.NewUuid())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteRemovesPlan(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	plan := samplePlan()
	require.NoError(t, store.Put(plan))
	require.NoError(t, store.Delete(plan.ID))

	_, found, err := store.Get(plan.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListReturnsAllStoredPlans(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	a := samplePlan()
	b := samplePlan()
	require.NoError(t, store.Put(a))
	require.NoError(t, store.Put(b))

	plans, err := store.List()
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}
