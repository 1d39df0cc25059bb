package gate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_Resolve(t *testing.T) {
	g := New()
	assert.False(t, g.Settled())
	assert.NoError(t, g.Err())

	assert.True(t, g.Resolve())
	assert.True(t, g.Settled())
	assert.NoError(t, g.Wait(context.Background()))
}

func TestGate_Reject(t *testing.T) {
	cause := errors.New("driver went away")

	g := New()
	assert.True(t, g.Reject(cause))

	err := g.Wait(context.Background())
	require.ErrorIs(t, err, cause)
	assert.ErrorIs(t, g.Err(), cause)
}

func TestGate_RejectNil(t *testing.T) {
	g := New()
	g.Reject(nil)

	assert.ErrorIs(t, g.Wait(context.Background()), ErrRejected)
}

func TestGate_FirstWriteWins(t *testing.T) {
	t.Run("resolve then reject", func(t *testing.T) {
		g := New()
		require.True(t, g.Resolve())
		assert.False(t, g.Reject(errors.New("late")))
		assert.False(t, g.Resolve())
		assert.NoError(t, g.Wait(context.Background()))
	})

	t.Run("reject then resolve", func(t *testing.T) {
		first := errors.New("first")

		g := New()
		require.True(t, g.Reject(first))
		assert.False(t, g.Resolve())
		assert.False(t, g.Reject(errors.New("second")))
		assert.ErrorIs(t, g.Wait(context.Background()), first)
	})
}

func TestGate_ConcurrentSettle(t *testing.T) {
	g := New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			var won bool
			if i%2 == 0 {
				won = g.Resolve()
			} else {
				won = g.Reject(errors.New("x"))
			}

			if won {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 1, winners)
}

func TestGate_WaitContext(t *testing.T) {
	g := New()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, g.Wait(ctx), context.DeadlineExceeded)
	assert.False(t, g.Settled())
}

func TestGate_WaitUnblocks(t *testing.T) {
	g := New()
	errCh := make(chan error, 1)

	go func() {
		errCh <- g.Wait(context.Background())
	}()

	g.Resolve()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Resolve")
	}
}
