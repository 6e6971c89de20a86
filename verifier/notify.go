package verifier

import (
	"context"
	"fmt"
)

// Message is the one-shot code a test sends to its listener.
type Message int32

const (
	MsgTestPassed Message = 100
	MsgTestFailed Message = 101
)

func (m Message) String() string {
	switch m {
	case MsgTestPassed:
		return "PASSED"
	case MsgTestFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("Message(%d)", int32(m))
	}
}

// Notifier delivers a message to a listener and blocks until the listener
// acknowledges it.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, msg Message) error

func (f NotifierFunc) Notify(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// Delivery is a message waiting for its acknowledgment.
type Delivery struct {
	Msg Message
	ack chan struct{}
}

// Ack releases the sender blocked in Notify.
func (d Delivery) Ack() {
	close(d.ack)
}

// ChanNotifier hands messages to a listener reading Deliveries.
type ChanNotifier struct {
	deliveries chan Delivery
}

func NewChanNotifier() *ChanNotifier {
	return &ChanNotifier{
		deliveries: make(chan Delivery),
	}
}

// Deliveries is the listener side of the notifier. Every Delivery received
// must be acknowledged.
func (n *ChanNotifier) Deliveries() <-chan Delivery {
	return n.deliveries
}

func (n *ChanNotifier) Notify(ctx context.Context, msg Message) error {
	d := Delivery{Msg: msg, ack: make(chan struct{})}
	select {
	case n.deliveries <- d:
	case <-ctx.Done():
		return fmt.Errorf("send %s: %w", msg, ctx.Err())
	}
	select {
	case <-d.ack:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for ack of %s: %w", msg, ctx.Err())
	}
}
