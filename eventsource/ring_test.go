package eventsource

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowweb/flowweb"
)

func TestNewRingRejectsNonPowerOfTwo(t *testing.T) {
	_, err := NewRing(3)
	assert.ErrorIs(t, err, ErrCapacityNotPowerOfTwo)

	_, err = NewRing(0)
	assert.ErrorIs(t, err, ErrCapacityNotPowerOfTwo)
}

func TestRingPushDrainOrder(t *testing.T) {
	r, err := NewRing(8)
	require.NoError(t, err)

	for i := uint32(0); i < 5; i++ {
		ok := r.Push(flowweb.FutexEvent{Tid: i})
		require.True(t, ok)
	}

	events, err := r.Drain()
	require.NoError(t, err)
	require.Len(t, events, 5)
	for i, e := range events {
		assert.Equal(t, uint32(i), e.Tid)
	}
	assert.Equal(t, 0, r.Len())
}

func TestRingDropsWhenFull(t *testing.T) {
	r, err := NewRing(2)
	require.NoError(t, err)

	assert.True(t, r.Push(flowweb.FutexEvent{Tid: 1}))
	assert.True(t, r.Push(flowweb.FutexEvent{Tid: 2}))
	assert.False(t, r.Push(flowweb.FutexEvent{Tid: 3}))
	assert.Equal(t, uint64(1), r.Dropped())

	events, err := r.Drain()
	require.NoError(t, err)
	require.Len(t, events, 2)
}

// TestRingConcurrentSPSC exercises one producer and one consumer racing
// against each other (run with -race), checking every pushed event is
// eventually observed exactly once, in order.
func TestRingConcurrentSPSC(t *testing.T) {
	r, err := NewRing(64)
	require.NoError(t, err)

	const n = 10000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint32(0); i < n; i++ {
			for !r.Push(flowweb.FutexEvent{Tid: i}) {
				time.Sleep(time.Microsecond)
			}
		}
	}()

	var got []flowweb.FutexEvent
	for uint32(len(got)) < n {
		batch, err := r.Drain()
		require.NoError(t, err)
		got = append(got, batch...)
		if len(batch) == 0 {
			time.Sleep(time.Microsecond)
		}
	}
	wg.Wait()

	require.Len(t, got, n)
	for i, e := range got {
		assert.Equal(t, uint32(i), e.Tid)
	}
}

func TestRingPollTimesOutWhenEmpty(t *testing.T) {
	r, err := NewRing(4)
	require.NoError(t, err)

	timeout := 10 * time.Millisecond
	_, ok, err := r.Poll(&timeout)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRingPollReturnsAvailableEvent(t *testing.T) {
	r, err := NewRing(4)
	require.NoError(t, err)
	require.True(t, r.Push(flowweb.FutexEvent{Tid: 9}))

	timeout := 10 * time.Millisecond
	e, ok, err := r.Poll(&timeout)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(9), e.Tid)
}
