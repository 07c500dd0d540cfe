package queue

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Memory is an in-process PriceQueue for local mode and tests. Received
// messages are held in-flight until deleted; there is no redelivery.
type Memory struct {
	mu       sync.Mutex
	pending  []Message
	inflight map[string]Message
	nextID   int
	wait     time.Duration
}

// NewMemory creates an empty in-memory queue
func NewMemory() *Memory {
	return &Memory{
		inflight: make(map[string]Message),
		wait:     100 * time.Millisecond,
	}
}

// Receive returns up to 10 pending messages, waiting briefly when the
// queue is empty so callers can poll in a tight loop.
func (q *Memory) Receive(ctx context.Context) ([]Message, error) {
	if msgs := q.take(); len(msgs) > 0 {
		return msgs, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(q.wait):
	}
	return q.take(), nil
}

func (q *Memory) take() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.pending)
	if n == 0 {
		return nil
	}
	if n > maxBatchSize {
		n = maxBatchSize
	}

	msgs := make([]Message, n)
	copy(msgs, q.pending[:n])
	q.pending = q.pending[n:]
	for _, m := range msgs {
		q.inflight[m.ReceiptHandle] = m
	}
	return msgs
}

// Send enqueues a message body
func (q *Memory) Send(_ context.Context, body string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	id := strconv.Itoa(q.nextID)
	q.pending = append(q.pending, Message{
		ID:            id,
		Body:          body,
		ReceiptHandle: "rh-" + id,
	})
	return nil
}

// Delete removes an in-flight message
func (q *Memory) Delete(_ context.Context, msg Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.inflight, msg.ReceiptHandle)
	return nil
}

// Len reports how many messages are pending delivery
func (q *Memory) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Inflight reports how many received messages have not been deleted yet
func (q *Memory) Inflight() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.inflight)
}
