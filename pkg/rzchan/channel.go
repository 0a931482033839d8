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

// Package rzchan implements a synchronous message-passing channel: a
// bounded FIFO mediating opaque payload transfer between goroutines, with
// explicit closure, blocking and non-blocking send/receive, and a
// multi-way Select across channels. It mirrors the semantics CSP-style
// languages popularized, built from first principles (a ring buffer, a
// pair of counting semaphores, and an intrusive waiter registry) rather
// than delegating to the Go runtime's own chan.
//
// The core type, Chan, is untyped (payloads are any), exactly so Select
// can wait across channels of different payload types at once; Typed[T]
// wraps a Chan for call sites that only ever need one payload type.
package rzchan

import (
	"sync"

	"github.com/rzchan/rzchan/internal/waiterlist"
)

// Chan is a bounded FIFO mediating opaque payload transfer between
// goroutines. Its zero value is not usable; construct one with New.
type Chan struct {
	capacity int

	bufMu  sync.Mutex
	buf    *ringBuffer
	closed bool

	senderCredit   *semaphore // permits a sender may claim: free buffer slots
	receiverCredit *semaphore // permits a receiver may claim: filled buffer slots

	regMu       sync.Mutex
	sendWaiters *waiterlist.List // select callers waiting to send
	recvWaiters *waiterlist.List // select callers waiting to receive

	rec Recorder
}

// New creates a channel of the given capacity. A capacity of 0 is a valid
// rendezvous configuration: every send blocks until a receiver is ready to
// take it immediately, and vice versa.
func New(capacity int, opts ...Option) (*Chan, error) {
	if capacity < 0 {
		return nil, errOtherf("rzchan: capacity must be >= 0, got %d", capacity)
	}
	c := &Chan{
		capacity:       capacity,
		buf:            newRingBuffer(capacity),
		senderCredit:   newSemaphore(capacity),
		receiverCredit: newSemaphore(0),
		sendWaiters:    waiterlist.New(),
		recvWaiters:    waiterlist.New(),
		rec:            noopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Cap returns the channel's capacity, immutable after creation.
func (c *Chan) Cap() int {
	return c.capacity
}

// Len returns the number of payloads currently buffered. It is a snapshot;
// concurrent sends/receives may change it immediately after it is read.
func (c *Chan) Len() int {
	c.bufMu.Lock()
	defer c.bufMu.Unlock()
	return c.buf.Count()
}

// Send blocks until the payload is accepted into the channel or the
// channel is (or becomes) closed.
func (c *Chan) Send(payload any) error {
	c.senderCredit.Wait()
	return c.finishSend(payload, true)
}

// TrySend accepts the payload without blocking. It returns ErrWouldBlock
// if the channel currently has no free slot, or ErrClosed if the channel
// is closed.
func (c *Chan) TrySend(payload any) error {
	if !c.senderCredit.TryWait() {
		c.bufMu.Lock()
		closed := c.closed
		c.bufMu.Unlock()
		err := ErrWouldBlock
		if closed {
			err = ErrClosed
		}
		c.rec.OnSend(false, err)
		return err
	}
	return c.finishSend(payload, false)
}

// finishSend runs the part of send shared by the blocking and non-blocking
// forms, once sender-credit has been claimed.
func (c *Chan) finishSend(payload any, blocked bool) error {
	c.bufMu.Lock()
	if c.closed {
		c.bufMu.Unlock()
		// Chain-wake: repost the credit we claimed so the next blocked
		// sender observes closed exactly the same way and repeats this.
		c.senderCredit.Post()
		c.rec.OnSend(blocked, ErrClosed)
		return ErrClosed
	}
	c.buf.Add(payload)
	count := c.buf.Count()
	c.bufMu.Unlock()

	c.receiverCredit.Post()
	c.regMu.Lock()
	c.recvWaiters.SignalAll()
	c.regMu.Unlock()

	c.rec.OnSend(blocked, nil)
	c.rec.OnOccupancy(count, c.capacity)
	return nil
}

// Receive blocks until a payload is available or the channel is (or
// becomes) closed. Payloads buffered before Close are still delivered;
// ErrClosed is returned once the closed channel's buffer is empty.
func (c *Chan) Receive() (any, error) {
	c.receiverCredit.Wait()
	return c.finishReceive(true)
}

// TryReceive retrieves a payload without blocking. It returns
// ErrWouldBlock if the channel currently has no buffered payload, or
// ErrClosed if the channel is closed and its buffer is empty.
func (c *Chan) TryReceive() (any, error) {
	if !c.receiverCredit.TryWait() {
		c.bufMu.Lock()
		closed := c.closed
		c.bufMu.Unlock()
		err := ErrWouldBlock
		if closed {
			err = ErrClosed
		}
		c.rec.OnReceive(false, err)
		return nil, err
	}
	return c.finishReceive(false)
}

func (c *Chan) finishReceive(blocked bool) (any, error) {
	c.bufMu.Lock()
	// A closed channel still hands out what was buffered before Close;
	// only once it is empty does the receiver chain-wake the next one.
	if c.closed && c.buf.Count() == 0 {
		c.bufMu.Unlock()
		c.receiverCredit.Post()
		c.rec.OnReceive(blocked, ErrClosed)
		return nil, ErrClosed
	}
	payload := c.buf.Remove()
	count := c.buf.Count()
	c.bufMu.Unlock()

	c.senderCredit.Post()
	c.regMu.Lock()
	c.sendWaiters.SignalAll()
	c.regMu.Unlock()

	c.rec.OnReceive(blocked, nil)
	c.rec.OnOccupancy(count, c.capacity)
	return payload, nil
}

// Close transitions the channel to closed. It is idempotent in observable
// effect: a second call returns ErrClosed without signalling anyone
// again. Every blocked sender, receiver, and select waiter is guaranteed
// to eventually observe the close, chain-woken one at a time.
func (c *Chan) Close() error {
	c.bufMu.Lock()
	if c.closed {
		c.bufMu.Unlock()
		return ErrClosed
	}
	c.closed = true
	c.bufMu.Unlock()

	c.senderCredit.Post()
	c.regMu.Lock()
	c.sendWaiters.SignalAll()
	c.regMu.Unlock()

	c.receiverCredit.Post()
	c.regMu.Lock()
	c.recvWaiters.SignalAll()
	c.regMu.Unlock()

	c.rec.OnClose()
	return nil
}

// Destroy releases the channel's resources. It must be called exactly
// once, after Close, and only once every goroutine that might still
// operate on the channel has stopped; Destroy does not wait for that
// itself. Calling Destroy before Close fails with ErrNotClosed and leaves
// the channel untouched.
func (c *Chan) Destroy() error {
	c.bufMu.Lock()
	if !c.closed {
		c.bufMu.Unlock()
		return ErrNotClosed
	}
	c.buf.Free()
	c.bufMu.Unlock()

	c.rec.OnDestroy()
	return nil
}
