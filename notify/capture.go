package notify

import (
	"context"
	"sync"
)

// Capture is a sink that records every message it receives. It is intended
// for tests and local runs without SMTP access.
type Capture struct {
	mu   sync.Mutex
	msgs []Message
	fail error
}

// NewCapture returns an empty capturing sink.
func NewCapture() *Capture { return &Capture{} }

// Fail makes every subsequent Send return err. Pass nil to restore success.
func (c *Capture) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = err
}

func (c *Capture) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.msgs = append(c.msgs, msg)
	return nil
}

// Messages returns a copy of everything captured so far.
func (c *Capture) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Last returns the most recent message, if any.
func (c *Capture) Last() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.msgs) == 0 {
		return Message{}, false
	}
	return c.msgs[len(c.msgs)-1], true
}

// Reset drops all captured messages.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = nil
}
