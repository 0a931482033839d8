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

// ringBuffer is a fixed-capacity FIFO of opaque payload references. It is
// not safe for concurrent use; the channel core serialises access to it
// under its buffer mutex.
//
// A capacity of zero is a valid rendezvous configuration. Since a
// zero-length slice cannot hold even a transient element, the backing
// store is allocated with room for one shadow slot; cap stays 0 so
// Capacity/Count report the configuration the caller asked for, and the
// channel core never lets more than one payload occupy that slot at a
// time (sender-credit and receiver-credit only ever admit one in-flight
// handoff when cap is 0).
type ringBuffer struct {
	data  []any
	head  int
	count int
	cap   int
}

// newRingBuffer returns a FIFO of the given capacity (may be 0).
func newRingBuffer(capacity int) *ringBuffer {
	slots := capacity
	if slots == 0 {
		slots = 1
	}
	return &ringBuffer{data: make([]any, slots), cap: capacity}
}

// Capacity returns the configured capacity (the number the caller passed to
// create, not the shadow slot count used for a rendezvous channel).
func (b *ringBuffer) Capacity() int {
	return b.cap
}

// Count returns the number of payloads currently buffered.
func (b *ringBuffer) Count() int {
	return b.count
}

// Add appends p to the FIFO. The caller must have already gated this call
// on available sender-credit; Add does not itself check capacity.
func (b *ringBuffer) Add(p any) {
	tail := (b.head + b.count) % len(b.data)
	b.data[tail] = p
	b.count++
}

// Remove pops and returns the oldest payload. The caller must have already
// gated this call on available receiver-credit.
func (b *ringBuffer) Remove() any {
	p := b.data[b.head]
	b.data[b.head] = nil
	b.head = (b.head + 1) % len(b.data)
	b.count--
	return p
}

// Free releases the backing store. It does not touch the payload
// references still resident in it; ownership of any undelivered payload
// remains the application's.
func (b *ringBuffer) Free() {
	b.data = nil
	b.head, b.count = 0, 0
}
