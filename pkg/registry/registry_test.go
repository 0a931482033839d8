/*
Copyright 2026 The rzchan Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzchan/rzchan/pkg/rzchan"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager()

	ch, err := m.Create("orders", 4)
	require.NoError(t, err)
	require.NotNil(t, ch)

	got, ok := m.Get("orders")
	assert.True(t, ok)
	assert.Same(t, ch, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestManagerCreateDuplicateNameFails(t *testing.T) {
	m := NewManager()
	_, err := m.Create("orders", 1)
	require.NoError(t, err)

	_, err = m.Create("orders", 1)
	assert.Error(t, err)
}

func TestManagerCloseRemovesEntry(t *testing.T) {
	m := NewManager()
	ch, err := m.Create("orders", 1)
	require.NoError(t, err)

	require.NoError(t, m.Close("orders"))
	_, ok := m.Get("orders")
	assert.False(t, ok)

	assert.ErrorIs(t, ch.Close(), rzchan.ErrClosed)
}

func TestManagerCloseAllAggregatesFailures(t *testing.T) {
	m := NewManager()
	ch1, err := m.Create("a", 1)
	require.NoError(t, err)
	_, err = m.Create("b", 1)
	require.NoError(t, err)

	// Close one out from under the manager so CloseAll sees a failure for
	// it but still closes the other.
	require.NoError(t, ch1.Close())

	err = m.CloseAll()
	assert.Error(t, err)
	assert.Empty(t, m.Names())
}
