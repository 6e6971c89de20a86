package harness

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/notargets/structpack/logging"
	"github.com/notargets/structpack/verifier"
	"go.uber.org/zap"
)

// Suite runs its tests sequentially. Each test gets its own notifier whose
// messages the suite acknowledges after recording them.
type Suite struct {
	mu      sync.Mutex
	tests   []*UnitTest
	stopped atomic.Bool
}

func NewSuite(tests ...*UnitTest) *Suite {
	return &Suite{tests: tests}
}

// Add registers more tests.
func (s *Suite) Add(tests ...*UnitTest) {
	s.mu.Lock()
	s.tests = append(s.tests, tests...)
	s.mu.Unlock()
}

// Tests returns the registered tests in run order.
func (s *Suite) Tests() []*UnitTest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*UnitTest(nil), s.tests...)
}

// Stop keeps the suite from starting further tests. The active test runs to
// completion.
func (s *Suite) Stop() {
	s.stopped.Store(true)
}

// Summary counts test outcomes.
type Summary struct {
	Passed, Failed, Unknown, Skipped int
}

// OK reports whether every test ran and passed.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Unknown == 0 && s.Skipped == 0
}

func (s Summary) String() string {
	return fmt.Sprintf("passed=%d failed=%d unknown=%d skipped=%d", s.Passed, s.Failed, s.Unknown, s.Skipped)
}

// Run executes every registered test in order and summarises the outcomes.
// A test that returns without sending a message stays UNKNOWN; one that
// returns an error is FAILED.
func (s *Suite) Run(ctx context.Context) Summary {
	log := logging.Logger()
	var sum Summary

	for _, t := range s.Tests() {
		if s.stopped.Load() || ctx.Err() != nil {
			sum.Skipped++
			continue
		}

		s.runOne(ctx, t)
		switch t.status {
		case StatusPassed:
			sum.Passed++
		case StatusFailed:
			sum.Failed++
		default:
			sum.Unknown++
		}

		fields := []zap.Field{zap.String("test", t.Name), zap.Stringer("status", t.status)}
		if t.err != nil {
			log.Error("unit test error", append(fields, zap.Error(t.err))...)
		} else {
			log.Info("unit test finished", fields...)
		}
	}
	return sum
}

func (s *Suite) runOne(ctx context.Context, t *UnitTest) {
	n := verifier.NewChanNotifier()
	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic in %s: %v", t.Name, r)
			}
		}()
		done <- t.run(ctx, n)
	}()

	for {
		select {
		case d := <-n.Deliveries():
			t.handle(d.Msg)
			d.Ack()
		case err := <-done:
			if err != nil {
				t.err = err
				t.status = StatusFailed
			}
			return
		}
	}
}
