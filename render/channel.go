package render

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrChannelClosed is returned by Send after Close.
var ErrChannelClosed = errors.New("render: channel closed")

// Channel owns the single background renderer goroutine. Both queues
// hold one message, so a sender honoring the one-in-flight discipline
// never blocks: callers wait for the response before sending again.
// Responses arrive exactly once per request, in submission order.
type Channel struct {
	reqs  chan Request
	resps chan Response

	mu     sync.Mutex
	closed bool
}

// NewChannel starts the worker goroutine for r.
func NewChannel(r Renderer) (*Channel, error) {
	if r == nil {
		return nil, errors.New("render: nil renderer")
	}

	var c = &Channel{
		reqs:  make(chan Request, 1),
		resps: make(chan Response, 1),
	}
	go c.work(r)
	return c, nil
}

func (c *Channel) work(r Renderer) {
	for req := range c.reqs {
		c.resps <- r.Render(req)
	}
}

// Send hands one request to the renderer, transferring ownership of its
// sample buffer. Sending into a closed channel is a configuration
// error, never a silent drop.
func (c *Channel) Send(req Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrChannelClosed
	}
	c.reqs <- req
	return nil
}

// Responses delivers the rendered frames.
func (c *Channel) Responses() <-chan Response {
	return c.resps
}

// Close stops the worker once any in-flight request finishes. A late
// response stays buffered and unread. Close is idempotent.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.reqs)
}
