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

// Package registry tracks named channels a process created, the way
// scaling.scaleHandler tracks its per-ScaledObject scaler caches: a
// map guarded by an RWMutex, with independent per-entry teardown and
// aggregated failures on a bulk close.
package registry

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"

	"github.com/rzchan/rzchan/pkg/rzchan"
)

var log = logr.Discard()

// SetLogger installs the logger the registry reports teardown problems to.
func SetLogger(l logr.Logger) {
	log = l
}

// Manager creates and tracks named channels so a long-running process can
// look one up by name and tear every one of them down together on
// shutdown, without each caller needing to plumb a *rzchan.Chan through
// by hand.
type Manager struct {
	mu    sync.RWMutex
	chans map[string]*rzchan.Chan
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{chans: map[string]*rzchan.Chan{}}
}

// Create creates a channel of the given capacity, registers it under name,
// and returns it. It fails if name is already registered.
func (m *Manager) Create(name string, capacity int, opts ...rzchan.Option) (*rzchan.Chan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chans[name]; ok {
		return nil, fmt.Errorf("rzchan/registry: channel %q already exists", name)
	}
	ch, err := rzchan.New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	m.chans[name] = ch
	return ch, nil
}

// Get looks up a previously created channel by name.
func (m *Manager) Get(name string) (*rzchan.Chan, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.chans[name]
	return ch, ok
}

// Names returns the currently registered channel names.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.chans))
	for name := range m.chans {
		names = append(names, name)
	}
	return names
}

// Close closes and removes a single named channel. It does not Destroy it;
// callers that still hold a reference may drain it after Close returns.
func (m *Manager) Close(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.chans[name]
	if !ok {
		return fmt.Errorf("rzchan/registry: channel %q not found", name)
	}
	delete(m.chans, name)
	return ch.Close()
}

// CloseAll closes every registered channel, continuing past individual
// failures (a channel already closed by its own producer, say) and
// aggregating them with go-multierror rather than stopping at the first.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	names := make([]string, 0, len(m.chans))
	chans := make([]*rzchan.Chan, 0, len(m.chans))
	for name, ch := range m.chans {
		names = append(names, name)
		chans = append(chans, ch)
	}
	m.chans = map[string]*rzchan.Chan{}
	m.mu.Unlock()

	var result *multierror.Error
	for i, ch := range chans {
		if err := ch.Close(); err != nil {
			log.Info("channel close failed during shutdown", "channel", names[i], "error", err.Error())
			result = multierror.Append(result, fmt.Errorf("%s: %w", names[i], err))
		}
	}
	return result.ErrorOrNil()
}
