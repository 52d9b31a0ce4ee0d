package mail

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrQueueFull is returned when the background queue cannot take another message.
var ErrQueueFull = errors.New("mail queue full")

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("mail queue closed")

// Async hands messages to a background worker so requests never wait for SMTP.
// Delivery errors are logged by the worker.
type Async struct {
	next  Mailer
	queue chan Message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAsync starts a worker delivering through next. size is the queue capacity.
func NewAsync(next Mailer, size int) *Async {
	a := &Async{
		next:  next,
		queue: make(chan Message, size),
		done:  make(chan struct{}),
	}

	go a.run()

	return a
}

func (a *Async) run() {
	defer close(a.done)

	for msg := range a.queue {
		if err := a.next.Send(context.Background(), msg); err != nil {
			log.Error().Err(err).
				Str("subject", msg.Subject).
				Str("reply_to", msg.ReplyTo).
				Msg("failed to send notification email")
		}
	}
}

// Send enqueues msg without blocking.
func (a *Async) Send(_ context.Context, msg Message) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return ErrClosed
	}

	select {
	case a.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits until the queue is drained or ctx ends.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
