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

package rzchan

import "sync"

// semaphore is a counting signal with FIFO waiter progress: the oldest
// blocked Wait is the one a Post releases. It doubles as the binary
// wake-handle a select call registers with a channel's waiter registry,
// since posting it when its count is already positive is harmless (the
// extra permit is simply consumed by a future Wait/TryWait).
type semaphore struct {
	mu      sync.Mutex
	count   int
	waiters []chan struct{}
}

// newSemaphore returns a semaphore initialised with n permits.
func newSemaphore(n int) *semaphore {
	return &semaphore{count: n}
}

// Wait blocks until a permit is available and claims it.
func (s *semaphore) Wait() {
	s.mu.Lock()
	if s.count > 0 {
		s.count--
		s.mu.Unlock()
		return
	}
	ch := make(chan struct{}, 1)
	s.waiters = append(s.waiters, ch)
	s.mu.Unlock()
	<-ch
}

// TryWait claims a permit without blocking. It reports whether it succeeded.
func (s *semaphore) TryWait() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count > 0 {
		s.count--
		return true
	}
	return false
}

// Post releases one permit, waking the oldest blocked Wait if one exists.
func (s *semaphore) Post() {
	s.mu.Lock()
	if len(s.waiters) > 0 {
		ch := s.waiters[0]
		s.waiters = s.waiters[1:]
		s.mu.Unlock()
		ch <- struct{}{}
		return
	}
	s.count++
	s.mu.Unlock()
}

// Signal implements waiterlist.Waiter so a semaphore can be registered
// directly as a select call's local wake-handle.
func (s *semaphore) Signal() {
	s.Post()
}
