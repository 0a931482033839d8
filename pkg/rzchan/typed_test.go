package rzchan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type job struct {
	ID int
}

func TestTypedSendReceive(t *testing.T) {
	ch, err := NewTyped[job](1)
	require.NoError(t, err)

	require.NoError(t, ch.Send(job{ID: 7}))
	v, err := ch.Receive()
	require.NoError(t, err)
	assert.Equal(t, job{ID: 7}, v)
}

func TestTypedParticipatesInSelect(t *testing.T) {
	ch, err := NewTyped[string](1)
	require.NoError(t, err)
	require.NoError(t, ch.Send("hello"))

	cases := []Case{{Chan: ch.Chan(), Dir: Receive}}
	idx, err := Select(cases)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "hello", cases[0].Payload)
}

func TestTypedCloseDestroy(t *testing.T) {
	ch, err := NewTyped[int](1)
	require.NoError(t, err)
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Destroy())
}
