package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
)

// Batch receive limits. SQS caps a single receive at 10 messages and a
// long-poll wait at 20 seconds.
const (
	maxBatchSize    = 10
	waitTimeSeconds = 20
)

// SQSQueue is the PriceQueue implementation backed by Amazon SQS.
type SQSQueue struct {
	client   *sqs.Client
	queueURL string
	log      zerolog.Logger
}

// NewSQS creates a queue client for the given queue URL
func NewSQS(client *sqs.Client, queueURL string, log zerolog.Logger) *SQSQueue {
	return &SQSQueue{
		client:   client,
		queueURL: queueURL,
		log:      log.With().Str("component", "sqs").Logger(),
	}
}

// Receive long-polls the queue for up to 10 messages
func (q *SQSQueue) Receive(ctx context.Context) ([]Message, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: maxBatchSize,
		WaitTimeSeconds:     waitTimeSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	msgs := make([]Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		msgs = append(msgs, Message{
			ID:            aws.ToString(m.MessageId),
			Body:          aws.ToString(m.Body),
			ReceiptHandle: aws.ToString(m.ReceiptHandle),
		})
	}
	return msgs, nil
}

// Send enqueues a message body
func (q *SQSQueue) Send(ctx context.Context, body string) error {
	_, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Delete removes a consumed message from the queue
func (q *SQSQueue) Delete(ctx context.Context, msg Message) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(msg.ReceiptHandle),
	})
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", msg.ID, err)
	}
	return nil
}
