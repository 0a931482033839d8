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

// Command rzchan-serve is a long-running demonstration pipeline: it wires
// a named channel through pkg/registry, drives a producer/consumer fan-out
// through pkg/pipeline, and exposes /metrics and /healthz through
// pkg/prommetrics, the way cmd/operator wires a controller manager around
// the teacher's reconcilers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rzchan/rzchan/pkg/pipeline"
	"github.com/rzchan/rzchan/pkg/prommetrics"
	"github.com/rzchan/rzchan/pkg/registry"
	"github.com/rzchan/rzchan/pkg/rzchan"
)

func main() {
	var metricsAddr string
	var channelName string
	var capacity int
	var produceCount int
	var devMode bool
	pflag.StringVar(&metricsAddr, "metrics-bind-address", ":8080", "The address the metrics and health endpoints bind to.")
	pflag.StringVar(&channelName, "channel", "demo", "Name the channel is registered under.")
	pflag.IntVar(&capacity, "capacity", 8, "Capacity of the demo channel (0 for rendezvous).")
	pflag.IntVar(&produceCount, "count", 1000, "Number of payloads the demo producer sends before closing the channel.")
	pflag.BoolVar(&devMode, "dev", false, "use a human-readable development logger instead of JSON")
	pflag.Parse()

	zapLog, err := newZapLogger(devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rzchan-serve: unable to construct logger: %v\n", err)
		os.Exit(1)
	}
	log := zapr.NewLogger(zapLog).WithName("rzchan-serve")
	registry.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := registry.NewManager()
	rec := prommetrics.NewRecorder(channelName)
	ch, err := mgr.Create(channelName, capacity, rzchan.WithRecorder(rec))
	if err != nil {
		log.Error(err, "unable to create channel")
		os.Exit(1)
	}

	go func() {
		if err := prommetrics.NewServer(metricsAddr, "/metrics"); err != nil {
			log.Error(err, "metrics server stopped")
		}
	}()

	values := make([]any, produceCount)
	for i := range values {
		values[i] = i
	}

	received := 0
	start := time.Now()
	err = pipeline.Run(ctx,
		pipeline.Producer(ch, values, true),
		pipeline.Consumer(ch, func(any) { received++ }),
	)
	if err != nil {
		log.Error(err, "pipeline stopped with error")
	}
	log.Info("pipeline finished", "received", received, "elapsed", time.Since(start))

	if err := ch.Destroy(); err != nil {
		log.Error(err, "error destroying channel")
	}
}

func newZapLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
