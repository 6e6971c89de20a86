package verifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_String(t *testing.T) {
	assert.Equal(t, "PASSED", MsgTestPassed.String())
	assert.Equal(t, "FAILED", MsgTestFailed.String())
	assert.Equal(t, "Message(7)", Message(7).String())
}

func TestChanNotifier_BlocksUntilAck(t *testing.T) {
	n := NewChanNotifier()
	done := make(chan error, 1)
	go func() {
		done <- n.Notify(context.Background(), MsgTestPassed)
	}()

	d := <-n.Deliveries()
	assert.Equal(t, MsgTestPassed, d.Msg)

	select {
	case <-done:
		t.Fatal("Notify returned before the ack")
	case <-time.After(20 * time.Millisecond):
	}

	d.Ack()
	require.NoError(t, <-done)
}

func TestChanNotifier_Cancelled(t *testing.T) {
	n := NewChanNotifier()

	t.Run("no_listener", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		err := n.Notify(ctx, MsgTestFailed)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("no_ack", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- n.Notify(ctx, MsgTestFailed)
		}()
		<-n.Deliveries()
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}
