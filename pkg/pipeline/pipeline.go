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

// Package pipeline is a thin orchestration layer over pkg/rzchan: the C
// source this module is built from has no notion of "an application using
// the channel", so this is where that application lives, in the shape the
// teacher's pkg/scaling layers orchestration atop lower-level primitives
// (scalers, caches) it does not itself implement.
package pipeline

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/rzchan/rzchan/pkg/rzchan"
)

// ReliableSend retries a non-blocking send against an exponential backoff
// until it succeeds, the channel closes, or ctx is cancelled. It exists
// for producers that would rather back off under contention than either
// block indefinitely on Send or spin on TrySend.
func ReliableSend(ctx context.Context, ch *rzchan.Chan, payload any, b backoff.BackOff) error {
	b = backoff.WithContext(b, ctx)
	return backoff.Retry(func() error {
		err := ch.TrySend(payload)
		switch err {
		case nil:
			return nil
		case rzchan.ErrClosed:
			return backoff.Permanent(err)
		default: // ErrWouldBlock: worth retrying
			return err
		}
	}, b)
}

// DefaultBackOff returns the exponential backoff policy ReliableSend uses
// when the caller has no specific policy of its own: short initial
// retries, capped so a long-closed channel is still detected promptly.
func DefaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Millisecond
	b.MaxInterval = 50 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second
	return b
}

// Stage is one step of a fan-out pipeline: a function driving a single
// producer or consumer goroutine, stopping and returning an error when ctx
// is cancelled or when it hits an unrecoverable channel error.
type Stage func(ctx context.Context) error

// Run launches every stage concurrently and waits for all of them to
// finish, the way scaleHandler.startScaleLoops launches one goroutine per
// scaler and the manager joins them at shutdown — except here the join
// uses golang.org/x/sync/errgroup instead of a bare sync.WaitGroup, so the
// first stage's error cancels ctx for every other stage still running.
func Run(ctx context.Context, stages ...Stage) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, stage := range stages {
		stage := stage
		g.Go(func() error {
			return stage(gctx)
		})
	}
	return g.Wait()
}

// Producer returns a Stage that sends every value from values in order,
// using ReliableSend, then, if closeWhenDone is set, closes ch once all
// values are sent. It is the
// pipeline's canonical producer shape, used by cmd/rzchan-serve and by
// tests that want a deterministic source without hand-rolling a goroutine.
func Producer(ch *rzchan.Chan, values []any, closeWhenDone bool) Stage {
	return func(ctx context.Context) error {
		for _, v := range values {
			if err := ReliableSend(ctx, ch, v, DefaultBackOff()); err != nil {
				if err == rzchan.ErrClosed {
					return nil
				}
				return err
			}
		}
		if closeWhenDone {
			if err := ch.Close(); err != nil && err != rzchan.ErrClosed {
				return err
			}
		}
		return nil
	}
}

// Consumer returns a Stage that blocking-receives from ch until it closes,
// handing each payload to fn. It returns nil once ch reports closed-error,
// since that is the expected end of stream rather than a pipeline failure.
func Consumer(ch *rzchan.Chan, fn func(payload any)) Stage {
	return func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			payload, err := ch.Receive()
			if err == rzchan.ErrClosed {
				return nil
			}
			if err != nil {
				return err
			}
			fn(payload)
		}
	}
}
