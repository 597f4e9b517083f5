// Command asyncrtdemo exercises the asyncrt library end to end: forked
// strands, an interleaved fan-out, a promise, and a race against a
// deadline. It is not part of the asyncrt module's public surface, just
// a runnable illustration of how the pieces fit together, in the same
// spirit as the teacher's own main.go wiring a logger, env file, and
// signal-driven shutdown around its domain logic.
package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/xid"

	"github.com/asyncrt/asyncrt"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	delay := 150 * time.Millisecond
	if v := os.Getenv("ASYNCRT_DEMO_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			delay = time.Duration(n) * time.Millisecond
		}
	}

	root := asyncrt.NewRoot(asyncrt.WithLogger(logger.Handler()))
	ctx = asyncrt.WithContext(ctx, root)
	strand := asyncrt.StrandFromContext(ctx, asyncrt.NewRealTimerHost(), logger)

	logger.Info("starting demo", "delay", delay)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runDemo(strand, delay)
	}()

	select {
	case <-done:
		logger.Info("demo finished")
	case <-ctx.Done():
		logger.Info("shutting down on signal")
		<-done
	}
}

// runDemo fans out a few strands that exercise Fork, Interleaved,
// Promise and Timeout, then waits for all of them.
func runDemo(s *asyncrt.Strand, delay time.Duration) {
	var wg sync.WaitGroup
	wg.Add(1)
	s.Logger.Info("forking background strand")
	asyncrt.Fork(s, asyncrt.RunnableFunc(func(cs *asyncrt.Strand) (any, error) {
		defer wg.Done()
		id := xid.New().String()
		if err := asyncrt.Wait(cs, delay); err != nil {
			cs.Logger.Warn("background strand canceled", "strand", id)
			return nil, err
		}
		cs.Logger.Info("background strand finished", "strand", id)
		return nil, nil
	}))

	results, err := asyncrt.Interleaved(s, []asyncrt.Runnable{
		fetch(delay, "users"),
		fetch(delay/2, "posts"),
		fetch(delay*2, "comments"),
	})
	if err != nil {
		s.Logger.Error("interleaved fan-out failed", "error", err)
	} else {
		s.Logger.Info("interleaved fan-out completed", "results", results)
	}

	p := asyncrt.NewPromise()
	asyncrt.Fork(s, asyncrt.RunnableFunc(func(cs *asyncrt.Strand) (any, error) {
		if err := asyncrt.Wait(cs, delay/3); err != nil {
			return nil, err
		}
		_ = p.Resolve("promise settled")
		return nil, nil
	}))
	s.Logger.Info("awaiting promise", "value", p.Await(s))

	value, ok, err := asyncrt.Timeout(s, delay, fetch(delay*3, "slow-report"))
	if err != nil {
		s.Logger.Error("timeout race failed", "error", err)
	} else if !ok {
		s.Logger.Info("slow-report timed out as expected")
	} else {
		s.Logger.Info("slow-report finished before the deadline", "value", value)
	}

	wg.Wait()
}

// fetch simulates a latency-bound lookup, the same role the teacher's
// /api/comments/ handler played against a real endpoint, now modeled
// purely through Wait so it runs against whatever TimerHost the strand
// carries.
func fetch(d time.Duration, name string) asyncrt.Runnable {
	return asyncrt.RunnableFunc(func(cs *asyncrt.Strand) (any, error) {
		jitter := time.Duration(rand.Intn(10)) * time.Millisecond
		if err := asyncrt.Wait(cs, d+jitter); err != nil {
			return nil, err
		}
		return name + "-ok", nil
	})
}
