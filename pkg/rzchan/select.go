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

import "github.com/rzchan/rzchan/internal/waiterlist"

// Case describes one channel a Select call is willing to wait on.
//
// For a Send case, set Payload to the value to send. For a Receive case,
// Payload is ignored; the received value is written back into Case.Payload
// after Select returns (the caller reads it from the winning Case).
type Case struct {
	Chan    *Chan
	Dir     Direction
	Payload any
}

// Select waits on an ordered list of cases and performs at most one
// operation, atomically with respect to the caller's own bookkeeping: it
// subscribes to every case's channel first, then repeatedly scans the
// cases in order attempting each non-blockingly, so a wakeup racing with
// the scan can never be lost.
//
// It returns the index of the case that completed and that case's error
// (nil on success, ErrClosed if that channel was closed). Selection is
// first-fit by index, not random or weighted: if multiple cases are ready
// in the same scan, the lowest index wins. A received payload is stored
// back into cases[i].Payload.
func Select(cases []Case) (int, error) {
	if len(cases) == 0 {
		return -1, errOtherf("rzchan: select requires at least one case")
	}

	wake := newSemaphore(0)
	nodes := subscribe(cases, wake)
	defer unsubscribe(cases, nodes)

	for {
		for i := range cases {
			status := attempt(&cases[i])
			if status == ErrWouldBlock {
				continue
			}
			return i, status
		}
		wake.Wait()
	}
}

// subscribe registers wake with every case's relevant waiter registry and
// returns the nodes to unsubscribe later, in case order.
func subscribe(cases []Case, wake *semaphore) []*regNode {
	nodes := make([]*regNode, len(cases))
	for i, cs := range cases {
		ch := cs.Chan
		ch.regMu.Lock()
		if cs.Dir == Send {
			nodes[i] = &regNode{list: ch.sendWaiters, node: ch.sendWaiters.Insert(wake)}
		} else {
			nodes[i] = &regNode{list: ch.recvWaiters, node: ch.recvWaiters.Insert(wake)}
		}
		ch.regMu.Unlock()
	}
	return nodes
}

// unsubscribe removes the select call's handle from every registry it
// joined, regardless of which case eventually won.
func unsubscribe(cases []Case, nodes []*regNode) {
	for i, cs := range cases {
		n := nodes[i]
		if n == nil {
			continue
		}
		ch := cs.Chan
		ch.regMu.Lock()
		n.list.Remove(n.node)
		ch.regMu.Unlock()
	}
}

// attempt runs one case's operation non-blockingly. On success it stores a
// received payload back into the case. It returns nil, ErrWouldBlock, or
// ErrClosed (the only statuses the core produces in normal operation).
func attempt(cs *Case) error {
	if cs.Dir == Send {
		return cs.Chan.TrySend(cs.Payload)
	}
	payload, err := cs.Chan.TryReceive()
	if err == nil {
		cs.Payload = payload
	}
	return err
}

// regNode pairs a registry with the node Select inserted into it, so
// unsubscribe can address each registry independently.
type regNode struct {
	list *waiterlist.List
	node *waiterlist.Node
}
