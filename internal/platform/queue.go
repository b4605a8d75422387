package platform

import (
	"context"
	"errors"
	"sync"

	"github.com/mj1618/tilewm/internal/model"
)

// ErrQueueFull is returned by Queue.Post when the buffer is exhausted.
var ErrQueueFull = errors.New("event queue full")

// ErrQueueClosed is returned by Queue.Post after Close.
var ErrQueueClosed = errors.New("event queue closed")

// Queue is a channel-backed EventSource. Post never blocks.
type Queue struct {
	ch      chan model.Notification
	done    chan struct{}
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	forward func(payload any) uintptr
}

// NewQueue creates a queue holding up to size pending notifications.
// forward handles Passthrough payloads; nil makes Forward return 0.
func NewQueue(size int, forward func(payload any) uintptr) *Queue {
	return &Queue{
		ch:      make(chan model.Notification, size),
		done:    make(chan struct{}),
		forward: forward,
	}
}

// Post queues n without blocking.
func (q *Queue) Post(n model.Notification) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting notifications. Run delivers what is already queued
// and then returns nil.
func (q *Queue) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.done)
	})
}

// Run delivers notifications to handle until ctx is done or the queue is closed and drained.
func (q *Queue) Run(ctx context.Context, handle func(model.Notification) uintptr) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-q.ch:
			handle(n)
		case <-q.done:
			for {
				select {
				case n := <-q.ch:
					handle(n)
				default:
					return nil
				}
			}
		}
	}
}

// Drain delivers the notifications queued so far without blocking and
// returns how many were handled. Notifications posted by handle are
// delivered too.
func (q *Queue) Drain(handle func(model.Notification) uintptr) int {
	delivered := 0
	for {
		select {
		case n := <-q.ch:
			handle(n)
			delivered++
		default:
			return delivered
		}
	}
}

// Forward passes payload to the queue's forward func.
func (q *Queue) Forward(payload any) uintptr {
	if q.forward == nil {
		return 0
	}
	return q.forward(payload)
}

// Pending returns the number of queued notifications.
func (q *Queue) Pending() int {
	return len(q.ch)
}
