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

package pipeline

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rzchan/rzchan/pkg/rzchan"
)

var _ = Describe("Producer and Consumer", func() {
	var ctx context.Context
	var cancel context.CancelFunc

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 2*time.Second)
	})

	AfterEach(func() {
		cancel()
	})

	It("delivers every value in order and closes when the producer is done", func() {
		ch, err := rzchan.New(1)
		Expect(err).NotTo(HaveOccurred())

		var mu sync.Mutex
		var got []any

		err = Run(ctx,
			Producer(ch, []any{1, 2, 3}, true),
			Consumer(ch, func(p any) {
				mu.Lock()
				defer mu.Unlock()
				got = append(got, p)
			}),
		)
		Expect(err).NotTo(HaveOccurred())

		mu.Lock()
		defer mu.Unlock()
		Expect(got).To(Equal([]any{1, 2, 3}))
	})

	It("stops the producer cleanly when the channel is closed from elsewhere", func() {
		ch, err := rzchan.New(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(ch.Close()).To(Succeed())

		err = Producer(ch, []any{"never sent"}, false)(ctx)
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("ReliableSend", func() {
	It("retries a full channel until a receiver drains it", func() {
		ch, err := rzchan.New(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(ch.TrySend("first")).To(Succeed())

		done := make(chan struct{})
		go func() {
			defer close(done)
			time.Sleep(10 * time.Millisecond)
			_, _ = ch.Receive()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(ReliableSend(ctx, ch, "second", DefaultBackOff())).To(Succeed())
		<-done
	})

	It("gives up permanently once the channel is closed", func() {
		ch, err := rzchan.New(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(ch.Close()).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		err = ReliableSend(ctx, ch, "x", DefaultBackOff())
		Expect(err).To(MatchError(rzchan.ErrClosed))
	})
})
