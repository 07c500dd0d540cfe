// Package queue provides the price update queue consumed by the alert
// evaluator and fed by the stock data publisher. Delivery is at-least-once:
// a message stays on the queue until it is explicitly deleted.
package queue

import "context"

// Message is a single price update as received from the queue.
// Body carries the "<SYMBOL>:<PRICE>" payload; ReceiptHandle is the token
// needed to delete the message after processing.
type Message struct {
	ID            string
	Body          string
	ReceiptHandle string
}

// PriceQueue is implemented by SQS in deployment and by Memory in local
// mode and tests.
type PriceQueue interface {
	// Receive long-polls for a batch of pending messages. It returns an
	// empty slice when the wait time elapses without any messages.
	Receive(ctx context.Context) ([]Message, error)
	// Send enqueues a raw message body.
	Send(ctx context.Context, body string) error
	// Delete removes a consumed message from the queue.
	Delete(ctx context.Context, msg Message) error
}
