// Package notify delivers alert messages to people over email. Delivery is
// fire-and-forget: a sink reports success or failure for one message and
// never retries.
package notify

import "context"

// Message is one alert to deliver.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sink sends a single message. Implementations must be safe for concurrent
// use and should honor ctx cancellation.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, msg Message) error

func (f SinkFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// Discard is a sink that accepts every message and does nothing.
var Discard Sink = SinkFunc(func(context.Context, Message) error { return nil })
