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

// Command rzchan-bench is a scripted scenario runner reproducing the
// primitive's testable scenarios end to end against a real *rzchan.Chan,
// the way a conformance smoke test would, and printing each scenario's
// outcome through a structured logger rather than asserting in-process.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rzchan/rzchan/pkg/rzchan"
)

func main() {
	var devMode bool
	pflag.BoolVar(&devMode, "dev", false, "use a human-readable development logger instead of JSON")
	pflag.Parse()

	zapLog, err := newZapLogger(devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rzchan-bench: unable to construct logger: %v\n", err)
		os.Exit(1)
	}
	log := zapr.NewLogger(zapLog).WithName("rzchan-bench")

	scenarios := []struct {
		name string
		run  func(logr.Logger) error
	}{
		{"bounded-buffer-fifo", scenarioBoundedBufferFIFO},
		{"rendezvous-handoff", scenarioRendezvous},
		{"close-wakes-blocked-senders", scenarioCloseWakesBlockedSenders},
		{"select-wakes-on-peer-receive", scenarioSelectWakesOnPeerReceive},
		{"select-receives-from-ready-case", scenarioSelectReceivesFromReadyCase},
		{"select-reports-close", scenarioSelectReportsClose},
	}

	failures := 0
	for _, s := range scenarios {
		start := time.Now()
		if err := s.run(log); err != nil {
			failures++
			log.Error(err, "scenario failed", "scenario", s.name, "elapsed", time.Since(start))
			continue
		}
		log.Info("scenario passed", "scenario", s.name, "elapsed", time.Since(start))
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func newZapLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func expect(cond bool, msg string) error {
	if !cond {
		return errors.New(msg)
	}
	return nil
}

// scenarioBoundedBufferFIFO is spec.md §8 scenario 1.
func scenarioBoundedBufferFIFO(log logr.Logger) error {
	ch, err := rzchan.New(2)
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close(); _ = ch.Destroy() }()

	if err := ch.TrySend("A"); err != nil {
		return err
	}
	if err := ch.TrySend("B"); err != nil {
		return err
	}
	if err := ch.TrySend("C"); !errors.Is(err, rzchan.ErrWouldBlock) {
		return fmt.Errorf("expected would-block sending into a full channel, got %v", err)
	}

	v, err := ch.TryReceive()
	if err != nil || v != "A" {
		return fmt.Errorf("expected A, got %v, %v", v, err)
	}
	if err := ch.TrySend("C"); err != nil {
		return err
	}
	for _, want := range []string{"B", "C"} {
		v, err := ch.TryReceive()
		if err != nil || v != want {
			return fmt.Errorf("expected %v, got %v, %v", want, v, err)
		}
	}
	log.V(1).Info("fifo order confirmed")
	return nil
}

// scenarioRendezvous is spec.md §8 scenario 2.
func scenarioRendezvous(log logr.Logger) error {
	ch, err := rzchan.New(0)
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close(); _ = ch.Destroy() }()

	result := make(chan any, 1)
	go func() {
		v, _ := ch.Receive()
		result <- v
	}()

	time.Sleep(10 * time.Millisecond) // give the receiver time to block
	if err := ch.Send("X"); err != nil {
		return err
	}
	select {
	case v := <-result:
		if err := expect(v == "X", fmt.Sprintf("expected X, got %v", v)); err != nil {
			return err
		}
		log.V(1).Info("rendezvous handoff completed")
		return nil
	case <-time.After(time.Second):
		return errors.New("rendezvous timed out")
	}
}

// scenarioCloseWakesBlockedSenders is spec.md §8 scenario 3.
func scenarioCloseWakesBlockedSenders(log logr.Logger) error {
	ch, err := rzchan.New(1)
	if err != nil {
		return err
	}
	defer func() { _ = ch.Destroy() }()

	if err := ch.Send("A"); err != nil {
		return err
	}

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { errs <- ch.Send("blocked") }()
	}
	time.Sleep(10 * time.Millisecond)

	if err := ch.Close(); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if err := <-errs; !errors.Is(err, rzchan.ErrClosed) {
			return fmt.Errorf("expected closed-error for blocked sender, got %v", err)
		}
	}

	v, err := ch.Receive()
	if err != nil || v != "A" {
		return fmt.Errorf("expected buffered A, got %v, %v", v, err)
	}
	if _, err := ch.Receive(); !errors.Is(err, rzchan.ErrClosed) {
		return fmt.Errorf("expected closed-error on drained closed channel, got %v", err)
	}
	log.V(1).Info("all blocked senders chain-woken on close")
	return nil
}

// scenarioSelectWakesOnPeerReceive is spec.md §8 scenario 4.
func scenarioSelectWakesOnPeerReceive(log logr.Logger) error {
	ch1, err := rzchan.New(1)
	if err != nil {
		return err
	}
	ch2, err := rzchan.New(1)
	if err != nil {
		return err
	}
	defer func() { _ = ch1.Close(); _ = ch1.Destroy(); _ = ch2.Close(); _ = ch2.Destroy() }()

	if err := ch1.TrySend("full"); err != nil {
		return err
	}

	done := make(chan struct {
		idx int
		err error
	}, 1)
	cases := []rzchan.Case{
		{Chan: ch1, Dir: rzchan.Send, Payload: "X"},
		{Chan: ch2, Dir: rzchan.Receive},
	}
	go func() {
		idx, err := rzchan.Select(cases)
		done <- struct {
			idx int
			err error
		}{idx, err}
	}()

	time.Sleep(10 * time.Millisecond)
	if _, err := ch1.Receive(); err != nil {
		return err
	}

	select {
	case r := <-done:
		if r.err != nil {
			return r.err
		}
		if err := expect(r.idx == 0, fmt.Sprintf("expected index 0, got %d", r.idx)); err != nil {
			return err
		}
		log.V(1).Info("select woke on freed send slot")
		return nil
	case <-time.After(time.Second):
		return errors.New("select did not wake after peer receive")
	}
}

// scenarioSelectReceivesFromReadyCase is spec.md §8 scenario 5.
func scenarioSelectReceivesFromReadyCase(log logr.Logger) error {
	ch1, err := rzchan.New(1)
	if err != nil {
		return err
	}
	ch2, err := rzchan.New(1)
	if err != nil {
		return err
	}
	defer func() { _ = ch1.Close(); _ = ch1.Destroy(); _ = ch2.Close(); _ = ch2.Destroy() }()

	if err := ch2.TrySend("on ch2"); err != nil {
		return err
	}

	cases := []rzchan.Case{
		{Chan: ch1, Dir: rzchan.Receive},
		{Chan: ch2, Dir: rzchan.Receive},
	}
	idx, err := rzchan.Select(cases)
	if err != nil {
		return err
	}
	if err := expect(idx == 1, fmt.Sprintf("expected index 1, got %d", idx)); err != nil {
		return err
	}
	log.V(1).Info("select returned the only ready case", "payload", cases[idx].Payload)
	return nil
}

// scenarioSelectReportsClose is spec.md §8 scenario 6.
func scenarioSelectReportsClose(log logr.Logger) error {
	ch1, err := rzchan.New(1)
	if err != nil {
		return err
	}
	ch2, err := rzchan.New(1)
	if err != nil {
		return err
	}
	defer func() { _ = ch1.Destroy(); _ = ch2.Close(); _ = ch2.Destroy() }()

	done := make(chan struct {
		idx int
		err error
	}, 1)
	cases := []rzchan.Case{
		{Chan: ch1, Dir: rzchan.Receive},
		{Chan: ch2, Dir: rzchan.Receive},
	}
	go func() {
		idx, err := rzchan.Select(cases)
		done <- struct {
			idx int
			err error
		}{idx, err}
	}()

	time.Sleep(10 * time.Millisecond)
	if err := ch1.Close(); err != nil {
		return err
	}

	select {
	case r := <-done:
		if !errors.Is(r.err, rzchan.ErrClosed) {
			return fmt.Errorf("expected closed-error, got %v", r.err)
		}
		if err := expect(r.idx == 0, fmt.Sprintf("expected index 0, got %d", r.idx)); err != nil {
			return err
		}
		log.V(1).Info("select reported the closed channel's index")
		return nil
	case <-time.After(time.Second):
		return errors.New("select did not report close")
	}
}
