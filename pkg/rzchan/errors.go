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

import "github.com/pkg/errors"

// Sentinel errors implementing the return-status taxonomy: every public
// operation returns nil (success), one of these sentinels, or an
// other-error built with errors.Errorf for implementation-specific
// failures the core does not manufacture in normal operation.
var (
	// ErrClosed is returned by Send/Receive/Select when the channel is, or
	// becomes, closed during the call.
	ErrClosed = errors.New("rzchan: channel is closed")

	// ErrWouldBlock is returned by the non-blocking form of Send/Receive
	// (and surfaced through Select while scanning) when the operation
	// cannot complete immediately.
	ErrWouldBlock = errors.New("rzchan: would block")

	// ErrNotClosed is returned by Destroy when called on a channel that
	// has not been Close'd yet.
	ErrNotClosed = errors.New("rzchan: destroy called before close")
)

// Direction distinguishes a select descriptor's operation.
type Direction int

const (
	// Send means the descriptor wants to send a payload.
	Send Direction = iota
	// Receive means the descriptor wants to receive a payload.
	Receive
)

func (d Direction) String() string {
	if d == Send {
		return "send"
	}
	return "receive"
}

// errOtherf builds an other-error: a condition the specified algorithms do
// not produce during normal operation (here: a negative capacity passed to
// New, an empty case list passed to Select, or a payload whose type does
// not match a Typed channel), carrying a stack via github.com/pkg/errors so
// callers that log it get a useful trace.
func errOtherf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}
