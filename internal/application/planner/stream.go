package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/infrastructure/monitoring"
	"github.com/kitchensage/v2/internal/ports/inbound"
	apperrors "github.com/kitchensage/v2/pkg/errors"
)

// defaultEventBuffer bounds the event channel so a slow consumer
// applies backpressure instead of growing memory.
const defaultEventBuffer = 32

// WorkFunc is one streaming pipeline run. It reports progress through
// emit and returns the terminal result or an error. emit returns false
// once the run is cancelled; workers should stop promptly when it does.
type WorkFunc func(ctx context.Context, emit func(inbound.ProgressEvent) bool) (*inbound.PlanResult, error)

// StreamBridge runs a pipeline on a dedicated worker goroutine and
// relays ordered progress events to a single consumer.
type StreamBridge struct {
	buffer  int
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewStreamBridge creates a bridge with the given channel buffer size.
// A non-positive size falls back to the default. metrics may be nil.
func NewStreamBridge(buffer int, metrics *monitoring.Metrics, logger *zap.Logger) *StreamBridge {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &StreamBridge{
		buffer:  buffer,
		metrics: metrics,
		logger:  logger.Named("stream-bridge"),
	}
}

// Run starts fn on a worker goroutine and returns the event channel.
// Guarantees:
//   - events arrive in emission order
//   - the final event is either complete or error, then the channel
//     closes; closure is the only completion signal
//   - after ctx is cancelled no further event is delivered, even if
//     the worker finished its result first
//   - a worker panic surfaces as a terminal error event
//
// The consumer never blocks on teardown; an abandoned worker runs to
// completion in the background and its sends are dropped.
func (b *StreamBridge) Run(ctx context.Context, fn WorkFunc) <-chan inbound.ProgressEvent {
	events := make(chan inbound.ProgressEvent, b.buffer)

	emit := func(ev inbound.ProgressEvent) bool {
		ev.Timestamp = time.Now()
		// Cancellation wins any race with a pending event.
		select {
		case <-ctx.Done():
			return false
		default:
		}
		select {
		case events <- ev:
			if b.metrics != nil {
				b.metrics.RecordStreamEvent(string(ev.Type))
			}
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(events)
		defer func() {
			if r := recover(); r != nil {
				err := apperrors.NewWorkerFailureError(fmt.Errorf("panic: %v", r))
				b.logger.Error("planning worker panicked", zap.Any("panic", r))
				emit(inbound.ProgressEvent{
					Type: inbound.EventError,
					Err:  err.Error(),
				})
			}
		}()

		result, err := fn(ctx, emit)
		if ctx.Err() != nil {
			b.logger.Debug("stream cancelled, suppressing terminal event")
			return
		}
		if err != nil {
			emit(inbound.ProgressEvent{
				Type: inbound.EventError,
				Err:  err.Error(),
			})
			return
		}
		emit(inbound.ProgressEvent{
			Type:   inbound.EventComplete,
			Result: result,
		})
	}()

	return events
}
