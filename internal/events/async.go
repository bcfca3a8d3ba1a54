package events

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrQueueFull is returned when the async queue cannot take another event.
	ErrQueueFull = errors.New("event queue full")
	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("event publisher closed")
)

// AsyncPublisher queues events and hands them to the wrapped publisher from
// a single goroutine, so callers never wait on the broker. Events keep their
// order. When the queue is full new events are dropped.
type AsyncPublisher struct {
	next  Publisher
	log   logrus.FieldLogger
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAsyncPublisher starts the delivery goroutine. Close stops it.
func NewAsyncPublisher(next Publisher, size int, log logrus.FieldLogger) *AsyncPublisher {
	if size < 1 {
		size = 1
	}
	p := &AsyncPublisher{
		next:  next,
		log:   log,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish enqueues evt without blocking.
func (p *AsyncPublisher) Publish(_ context.Context, evt Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- evt:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for evt := range p.queue {
		if err := p.next.Publish(context.Background(), evt); err != nil {
			p.log.WithError(err).WithFields(logrus.Fields{
				"event":      evt.Kind,
				"vehicle_id": evt.VehicleID,
			}).Warn("Failed to deliver event")
		}
	}
}

// Close stops accepting events and waits until the queued ones are
// delivered.
func (p *AsyncPublisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	<-p.done
}
