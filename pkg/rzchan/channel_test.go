package rzchan

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1 (spec.md §8): capacity 2, interleaved non-blocking sends and
// receives, with a full buffer returning ErrWouldBlock.
func TestScenario_BoundedBufferFIFO(t *testing.T) {
	ch, err := New(2)
	require.NoError(t, err)

	require.NoError(t, ch.TrySend("A"))
	require.NoError(t, ch.TrySend("B"))
	assert.ErrorIs(t, ch.TrySend("C"), ErrWouldBlock)

	v, err := ch.Receive()
	require.NoError(t, err)
	assert.Equal(t, "A", v)

	require.NoError(t, ch.TrySend("C"))

	v, err = ch.Receive()
	require.NoError(t, err)
	assert.Equal(t, "B", v)

	v, err = ch.Receive()
	require.NoError(t, err)
	assert.Equal(t, "C", v)
}

// Scenario 2 (spec.md §8): capacity 0 rendezvous, a blocked receiver paired
// with a later blocking send.
func TestScenario_RendezvousHandoff(t *testing.T) {
	ch, err := New(0)
	require.NoError(t, err)

	received := make(chan any, 1)
	go func() {
		v, err := ch.Receive()
		require.NoError(t, err)
		received <- v
	}()

	time.Sleep(10 * time.Millisecond) // let the receiver park
	require.NoError(t, ch.Send("X"))

	select {
	case v := <-received:
		assert.Equal(t, "X", v)
	case <-time.After(time.Second):
		t.Fatal("receiver never completed the rendezvous")
	}
}

// Scenario 3 (spec.md §8): close wakes every blocked sender via
// chain-wake, and the buffered payload survives to be drained afterward.
func TestScenario_CloseChainWakesBlockedSenders(t *testing.T) {
	ch, err := New(1)
	require.NoError(t, err)

	require.NoError(t, ch.Send("A")) // fills the one slot

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = ch.Send("blocked")
		}(i)
	}
	time.Sleep(10 * time.Millisecond) // let both senders park

	require.NoError(t, ch.Close())
	wg.Wait()

	assert.ErrorIs(t, errs[0], ErrClosed)
	assert.ErrorIs(t, errs[1], ErrClosed)

	v, err := ch.Receive()
	require.NoError(t, err)
	assert.Equal(t, "A", v)

	_, err = ch.Receive()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCloseIsIdempotent(t *testing.T) {
	ch, err := New(1)
	require.NoError(t, err)
	require.NoError(t, ch.Close())
	assert.ErrorIs(t, ch.Close(), ErrClosed)
}

func TestSendReceiveAfterCloseReturnClosedError(t *testing.T) {
	ch, err := New(1)
	require.NoError(t, err)
	require.NoError(t, ch.Close())

	assert.ErrorIs(t, ch.Send("x"), ErrClosed)
	assert.ErrorIs(t, ch.TrySend("x"), ErrClosed)
	_, err = ch.Receive()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = ch.TryReceive()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDestroyBeforeCloseFails(t *testing.T) {
	ch, err := New(1)
	require.NoError(t, err)
	assert.ErrorIs(t, ch.Destroy(), ErrNotClosed)
}

func TestDestroyAfterCloseSucceeds(t *testing.T) {
	ch, err := New(1)
	require.NoError(t, err)
	require.NoError(t, ch.Close())
	assert.NoError(t, ch.Destroy())
}

func TestNegativeCapacityRejected(t *testing.T) {
	_, err := New(-1)
	assert.Error(t, err)
}

func TestTryReceiveOnEmptyBufferWouldBlock(t *testing.T) {
	ch, err := New(1)
	require.NoError(t, err)
	_, err = ch.TryReceive()
	assert.ErrorIs(t, err, ErrWouldBlock)
}

// P1/P2: a single producer and single consumer goroutine observe FIFO
// order and a live count that always stays within [0, capacity].
func TestSingleProducerSingleConsumerFIFO(t *testing.T) {
	const n = 200
	ch, err := New(4)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			v, err := ch.Receive()
			require.NoError(t, err)
			assert.Equal(t, i, v)
		}
	}()

	for i := 0; i < n; i++ {
		require.NoError(t, ch.Send(i))
		assert.LessOrEqual(t, ch.Len(), ch.Cap())
	}
	<-done
}
