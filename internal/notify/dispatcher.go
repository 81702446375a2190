package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Report summarizes one dispatch.
type Report struct {
	Batches int
	Sent    int
	Failed  int
	Pruned  int
}

// Dispatcher sends messages in batches and prunes tokens that fail permanently.
type Dispatcher struct {
	sender    Sender
	tokens    store.PushTokenStore
	batchSize int
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher. batchSize is capped at MaxBatchSize;
// zero or less means MaxBatchSize.
func NewDispatcher(sender Sender, tokens store.PushTokenStore, batchSize int, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize <= 0 || batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}
	return &Dispatcher{
		sender:    sender,
		tokens:    tokens,
		batchSize: batchSize,
		logger:    logger.With("component", "push_dispatcher"),
	}
}

// Dispatch sends msgs in order, batchSize at a time. A failed message whose
// code is permanent has its token deleted; any other failure is logged and
// the token kept. If a whole batch call fails, the remaining batches are
// abandoned and the error returned; nothing is retried.
func (d *Dispatcher) Dispatch(ctx context.Context, msgs []Message) (Report, error) {
	log := logger.FromContextOrDefault(ctx, d.logger)
	var report Report

	for start := 0; start < len(msgs); start += d.batchSize {
		end := min(start+d.batchSize, len(msgs))
		batch := msgs[start:end]
		report.Batches++

		results, err := d.sender.SendBatch(ctx, batch)
		if err == nil && len(results) != len(batch) {
			err = fmt.Errorf("%w: got %d for %d messages", ErrResultCount, len(results), len(batch))
		}
		if err != nil {
			log.Error("push batch failed, abandoning dispatch",
				slog.String("error", err.Error()),
				slog.Int("batch", report.Batches),
				slog.Int("batch_size", len(batch)),
				slog.Int("unsent", len(msgs)-start))
			return report, fmt.Errorf("failed to send push batch %d: %w", report.Batches, err)
		}

		for i, res := range results {
			if res.Failure == FailureNone {
				report.Sent++
				continue
			}
			report.Failed++

			token := batch[i].Token
			attrs := []any{
				slog.String("token", redact.Token(token)),
				slog.String("failure", res.Failure.String()),
			}
			if res.Err != nil {
				attrs = append(attrs, slog.String("error", res.Err.Error()))
			}

			if !res.Failure.Permanent() {
				log.Warn("push delivery failed, keeping token", attrs...)
				continue
			}

			if err := d.tokens.Delete(ctx, token); err != nil {
				log.Error("failed to prune push token",
					append(attrs, slog.String("prune_error", err.Error()))...)
				continue
			}
			report.Pruned++
			log.Info("pruned push token", attrs...)
		}
	}

	if len(msgs) > 0 {
		log.Debug("push dispatch finished",
			slog.Int("batches", report.Batches),
			slog.Int("sent", report.Sent),
			slog.Int("failed", report.Failed),
			slog.Int("pruned", report.Pruned))
	}
	return report, nil
}
