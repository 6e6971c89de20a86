// Package harness runs layout unit tests one after another and collects the
// PASS or FAIL message each of them sends.
package harness

import (
	"context"
	"fmt"

	"github.com/notargets/structpack/verifier"
)

// Status is the recorded outcome of a unit test.
type Status int

const (
	StatusUnknown Status = iota
	StatusPassed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "PASSED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// RunFunc is the body of a unit test. It reports its outcome through n.
type RunFunc func(ctx context.Context, n verifier.Notifier) error

// UnitTest is one named test in a Suite.
type UnitTest struct {
	Name string
	run  RunFunc

	status Status
	err    error
}

func NewUnitTest(name string, run RunFunc) *UnitTest {
	return &UnitTest{Name: name, run: run}
}

// Status returns the outcome recorded so far.
func (t *UnitTest) Status() Status {
	return t.status
}

// Err returns the error the test body returned, if any.
func (t *UnitTest) Err() error {
	return t.err
}

func (t *UnitTest) String() string {
	return fmt.Sprintf("%s: %s", t.Name, t.status)
}

// handle records a message from the test body. Anything but PASSED fails the
// test, and a FAILED message is never overwritten by a later PASSED.
func (t *UnitTest) handle(msg verifier.Message) {
	switch {
	case msg == verifier.MsgTestPassed && t.status != StatusFailed:
		t.status = StatusPassed
	default:
		t.status = StatusFailed
	}
}
