package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"stockwatch/internal/cache"
	"stockwatch/internal/queue"
)

// Evaluator consumes price updates from the queue, matches them against the
// stored conditions and records triggered alerts in the cache. It runs as a
// single background task, processing one batch at a time; there is no
// parallelism within an instance.
//
// Failure policy: a receive error backs off and retries, a malformed message
// or a condition lookup error skips that message, a cache write error skips
// that condition. In every case the consumed message is still deleted from
// the queue after its single evaluation attempt.
type Evaluator struct {
	queue      queue.PriceQueue
	store      ConditionStore
	cache      cache.Cache
	alertTTL   time.Duration
	retryDelay time.Duration
	log        zerolog.Logger
}

// EvaluatorConfig holds the evaluator's constructor-injected dependencies
type EvaluatorConfig struct {
	Queue      queue.PriceQueue
	Store      ConditionStore
	Cache      cache.Cache
	AlertTTL   time.Duration // defaults to 5 minutes
	RetryDelay time.Duration // defaults to 1 second
	Log        zerolog.Logger
}

// NewEvaluator creates a new evaluator
func NewEvaluator(cfg EvaluatorConfig) *Evaluator {
	if cfg.AlertTTL <= 0 {
		cfg.AlertTTL = 5 * time.Minute
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	return &Evaluator{
		queue:      cfg.Queue,
		store:      cfg.Store,
		cache:      cfg.Cache,
		alertTTL:   cfg.AlertTTL,
		retryDelay: cfg.RetryDelay,
		log:        cfg.Log.With().Str("component", "evaluator").Logger(),
	}
}

// Run consumes price updates until ctx is cancelled. No error is fatal:
// failures are logged and the loop resumes after a fixed delay.
func (e *Evaluator) Run(ctx context.Context) {
	e.log.Info().Msg("Evaluator started")
	for {
		select {
		case <-ctx.Done():
			e.log.Info().Msg("Evaluator stopped")
			return
		default:
		}

		if err := e.poll(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			e.log.Error().Err(err).Msg("Failed to receive price updates")
			e.sleep(ctx)
		}
	}
}

// poll receives one batch and processes each message in receipt order.
// Every received message is deleted after processing regardless of outcome.
func (e *Evaluator) poll(ctx context.Context) error {
	msgs, err := e.queue.Receive(ctx)
	if err != nil {
		return fmt.Errorf("receive failed: %w", err)
	}

	for _, msg := range msgs {
		e.process(ctx, msg)
		if err := e.queue.Delete(ctx, msg); err != nil {
			e.log.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to delete message from queue")
		}
	}
	return nil
}

func (e *Evaluator) process(ctx context.Context, msg queue.Message) {
	update, err := ParsePriceUpdate(msg.Body)
	if err != nil {
		e.log.Error().Err(err).Str("body", msg.Body).Msg("Dropping malformed price update")
		return
	}

	conditions, err := e.store.ListBySymbol(ctx, update.Symbol)
	if err != nil {
		e.log.Error().Err(err).Str("symbol", update.Symbol).Msg("Failed to load alert conditions")
		return
	}

	for _, cond := range conditions {
		if !cond.Triggered(update.Price) {
			continue
		}

		alert := TriggeredAlert{
			AlertID:     cond.AlertID,
			StockSymbol: update.Symbol,
			Price:       update.Price,
			Condition:   cond.ConditionType,
			Threshold:   cond.Threshold,
		}
		if err := e.writeAlert(ctx, alert); err != nil {
			e.log.Error().Err(err).Str("alert_id", cond.AlertID).Msg("Failed to cache triggered alert")
			continue
		}

		e.log.Info().
			Str("alert_id", alert.AlertID).
			Str("symbol", alert.StockSymbol).
			Float64("price", alert.Price).
			Str("condition", string(alert.Condition)).
			Float64("threshold", alert.Threshold).
			Msg("Triggered alert")
	}
}

func (e *Evaluator) writeAlert(ctx context.Context, alert TriggeredAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	return e.cache.Set(ctx, cache.AlertKey(alert.AlertID), payload, e.alertTTL)
}

func (e *Evaluator) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(e.retryDelay):
	}
}
