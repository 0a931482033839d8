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

// Typed wraps a Chan with a payload type, for call sites that only ever
// send and receive one kind of value and would rather not type-assert at
// every call. It carries no state of its own beyond the underlying Chan,
// so it can still be used as a Select case via its Chan method.
type Typed[T any] struct {
	ch *Chan
}

// NewTyped creates a typed channel of the given capacity.
func NewTyped[T any](capacity int, opts ...Option) (*Typed[T], error) {
	ch, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Typed[T]{ch: ch}, nil
}

// Chan returns the untyped Chan backing this wrapper, for use in a
// heterogeneous Select.
func (t *Typed[T]) Chan() *Chan {
	return t.ch
}

// Cap returns the channel's capacity.
func (t *Typed[T]) Cap() int {
	return t.ch.Cap()
}

// Len returns the number of payloads currently buffered.
func (t *Typed[T]) Len() int {
	return t.ch.Len()
}

// Send blocks until v is accepted or the channel is (or becomes) closed.
func (t *Typed[T]) Send(v T) error {
	return t.ch.Send(v)
}

// TrySend accepts v without blocking.
func (t *Typed[T]) TrySend(v T) error {
	return t.ch.TrySend(v)
}

// Receive blocks until a value is available or the channel is (or
// becomes) closed.
func (t *Typed[T]) Receive() (T, error) {
	payload, err := t.ch.Receive()
	return assertPayload[T](payload, err)
}

// TryReceive retrieves a value without blocking.
func (t *Typed[T]) TryReceive() (T, error) {
	payload, err := t.ch.TryReceive()
	return assertPayload[T](payload, err)
}

// Close transitions the channel to closed.
func (t *Typed[T]) Close() error {
	return t.ch.Close()
}

// Destroy releases the channel's resources. It must follow Close.
func (t *Typed[T]) Destroy() error {
	return t.ch.Destroy()
}

func assertPayload[T any](payload any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	v, ok := payload.(T)
	if !ok {
		return zero, errOtherf("rzchan: payload of type %T does not match %T", payload, zero)
	}
	return v, nil
}
