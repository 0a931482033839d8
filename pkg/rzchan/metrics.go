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

// Recorder observes channel operations without participating in them. The
// core never imports a metrics library directly (logging and metrics are
// explicitly out of scope for the primitive itself); pkg/prommetrics
// implements Recorder against github.com/prometheus/client_golang and is
// wired in by whatever created the channel.
type Recorder interface {
	// OnSend is called once per send attempt with its outcome: nil,
	// ErrWouldBlock (non-blocking form only), or ErrClosed.
	OnSend(blocked bool, err error)
	// OnReceive is called once per receive attempt with its outcome: nil,
	// ErrWouldBlock (non-blocking form only), or ErrClosed.
	OnReceive(blocked bool, err error)
	// OnClose is called when Close transitions the channel to closed.
	OnClose()
	// OnDestroy is called when Destroy successfully releases the channel.
	OnDestroy()
	// OnOccupancy reports the buffered payload count immediately after a
	// send or receive commits.
	OnOccupancy(count, capacity int)
}

type noopRecorder struct{}

func (noopRecorder) OnSend(bool, error)    {}
func (noopRecorder) OnReceive(bool, error) {}
func (noopRecorder) OnClose()              {}
func (noopRecorder) OnDestroy()            {}
func (noopRecorder) OnOccupancy(int, int)  {}

// Option configures a Chan at creation time.
type Option func(*Chan)

// WithRecorder attaches a Recorder to observe every operation on the
// channel. Without this option, operations are unobserved.
func WithRecorder(r Recorder) Option {
	return func(c *Chan) {
		if r != nil {
			c.rec = r
		}
	}
}
