package collector

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_EndToEnd(t *testing.T) {
	var order [3]int32
	var counter int32

	mark := func(slot int) func() error {
		return func() error {
			order[slot] = atomic.AddInt32(&counter, 1)
			return nil
		}
	}

	b := NewBuilder().
		Add("produce", mark(0), Options{Write: "data"}).
		Add("consume", mark(1), Options{Read: "data"}).
		Add("aside", mark(2), Options{})
	require.Equal(t, 3, b.Len())

	exec, err := b.Executor()
	require.NoError(t, err)
	require.NoError(t, exec.Plan())

	// Producer and the independent task share wave 0; the consumer waits.
	plan := exec.ExecutionPlan()
	require.Len(t, plan.Waves, 2)
	assert.Equal(t, []int{0, 2}, plan.Waves[0].TaskIDs)
	assert.Equal(t, []int{1}, plan.Waves[1].TaskIDs)

	results, err := exec.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Greater(t, order[1], order[0], "consumer must run after producer")
	assert.Equal(t, "produce", results[0].Name)
}

func TestBuilder_DuplicateDeclarationSurfacesAtPlan(t *testing.T) {
	exec, err := NewBuilder().
		Add("broken", func() error { return nil }, Options{Read: "d2, d2"}).
		Executor()
	require.NoError(t, err)

	// Write-subsumes-read only folds across the two lists; a name listed
	// twice in one list reaches the validator and is rejected there.
	err = exec.Plan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple times")
}
