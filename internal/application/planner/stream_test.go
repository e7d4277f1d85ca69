package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensage/v2/internal/ports/inbound"
	"github.com/kitchensage/v2/pkg/logger"
)

func collect(t *testing.T, events <-chan inbound.ProgressEvent, timeout time.Duration) []inbound.ProgressEvent {
	t.Helper()
	var received []inbound.ProgressEvent
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return received
			}
			received = append(received, ev)
		case <-deadline:
			t.Fatal("timed out waiting for channel close")
		}
	}
}

func TestStreamBridgeEmitsInOrderWithTerminalComplete(t *testing.T) {
	b := NewStreamBridge(8, nil, logger.NewNop())

	events := b.Run(context.Background(), func(ctx context.Context, emit func(inbound.ProgressEvent) bool) (*inbound.PlanResult, error) {
		emit(inbound.ProgressEvent{Type: inbound.EventThinking, Message: "first"})
		emit(inbound.ProgressEvent{Type: inbound.EventToolStart, Message: "second"})
		emit(inbound.ProgressEvent{Type: inbound.EventTaskComplete, Message: "third"})
		return &inbound.PlanResult{Outcome: inbound.OutcomeSuccess}, nil
	})

	received := collect(t, events, time.Second)

	require.Len(t, received, 4)
	assert.Equal(t, inbound.EventThinking, received[0].Type)
	assert.Equal(t, inbound.EventToolStart, received[1].Type)
	assert.Equal(t, inbound.EventTaskComplete, received[2].Type)
	assert.Equal(t, inbound.EventComplete, received[3].Type)
	require.NotNil(t, received[3].Result)
	assert.Equal(t, inbound.OutcomeSuccess, received[3].Result.Outcome)
}

func TestStreamBridgeWorkerErrorBecomesTerminalEvent(t *testing.T) {
	b := NewStreamBridge(8, nil, logger.NewNop())

	events := b.Run(context.Background(), func(ctx context.Context, emit func(inbound.ProgressEvent) bool) (*inbound.PlanResult, error) {
		return nil, errors.New("pipeline exploded")
	})

	received := collect(t, events, time.Second)

	require.Len(t, received, 1)
	assert.Equal(t, inbound.EventError, received[0].Type)
	assert.Contains(t, received[0].Err, "pipeline exploded")
}

func TestStreamBridgeWorkerPanicBecomesTerminalEvent(t *testing.T) {
	b := NewStreamBridge(8, nil, logger.NewNop())

	events := b.Run(context.Background(), func(ctx context.Context, emit func(inbound.ProgressEvent) bool) (*inbound.PlanResult, error) {
		panic("boom")
	})

	received := collect(t, events, time.Second)

	require.Len(t, received, 1)
	assert.Equal(t, inbound.EventError, received[0].Type)
	assert.Contains(t, received[0].Err, "boom")
}

func TestStreamBridgeCancellationSuppressesTerminalEvent(t *testing.T) {
	b := NewStreamBridge(8, nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	workerStarted := make(chan struct{})
	release := make(chan struct{})

	events := b.Run(ctx, func(ctx context.Context, emit func(inbound.ProgressEvent) bool) (*inbound.PlanResult, error) {
		close(workerStarted)
		<-release
		// Worker "finished" its result, but cancellation already won.
		return &inbound.PlanResult{Outcome: inbound.OutcomeSuccess}, nil
	})

	<-workerStarted
	cancel()
	close(release)

	received := collect(t, events, time.Second)

	for _, ev := range received {
		assert.NotEqual(t, inbound.EventComplete, ev.Type,
			"no completion event may be delivered after cancellation")
	}
}

func TestStreamBridgeEmitReportsCancellation(t *testing.T) {
	b := NewStreamBridge(1, nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emitResult := make(chan bool, 1)
	events := b.Run(ctx, func(ctx context.Context, emit func(inbound.ProgressEvent) bool) (*inbound.PlanResult, error) {
		emitResult <- emit(inbound.ProgressEvent{Type: inbound.EventThinking})
		return nil, ctx.Err()
	})

	select {
	case ok := <-emitResult:
		assert.False(t, ok, "emit must report cancellation so the worker can stop")
	case <-time.After(time.Second):
		t.Fatal("worker never observed cancellation")
	}

	collect(t, events, time.Second)
}

func TestStreamBridgeConsumerTeardownIsBounded(t *testing.T) {
	b := NewStreamBridge(1, nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := b.Run(ctx, func(ctx context.Context, emit func(inbound.ProgressEvent) bool) (*inbound.PlanResult, error) {
		// Flood more events than the buffer holds; the consumer walks away.
		for i := 0; i < 100; i++ {
			if !emit(inbound.ProgressEvent{Type: inbound.EventThinking}) {
				return nil, ctx.Err()
			}
		}
		return &inbound.PlanResult{Outcome: inbound.OutcomeSuccess}, nil
	})

	// Consume one event, then abandon the stream.
	<-events
	done := make(chan struct{})
	go func() {
		cancel()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("teardown blocked the consumer")
	}
}
