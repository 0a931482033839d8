package rzchan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemaphoreTryWait(t *testing.T) {
	s := newSemaphore(1)
	require.True(t, s.TryWait())
	assert.False(t, s.TryWait(), "second TryWait on a 1-permit semaphore must fail")
	s.Post()
	assert.True(t, s.TryWait())
}

func TestSemaphoreWaitBlocksUntilPost(t *testing.T) {
	s := newSemaphore(0)
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before Post")
	case <-time.After(20 * time.Millisecond):
	}

	s.Post()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Post")
	}
}

func TestSemaphoreFIFOProgress(t *testing.T) {
	s := newSemaphore(0)
	order := make(chan int, 3)
	for i := 0; i < 3; i++ {
		i := i
		go func() {
			s.Wait()
			order <- i
		}()
		// give the goroutine time to park before the next one starts
		time.Sleep(5 * time.Millisecond)
	}

	s.Post()
	s.Post()
	s.Post()

	got := []int{<-order, <-order, <-order}
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestSemaphoreSignalIsPost(t *testing.T) {
	s := newSemaphore(0)
	s.Signal()
	assert.True(t, s.TryWait())
}
