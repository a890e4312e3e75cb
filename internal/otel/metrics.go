package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "pane-runner"

// Metrics holds all OTEL metric instruments for pane-runner.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// MuxCalls counts tmux invocations, partitioned by subcommand and
	// outcome via attributes.
	MuxCalls metric.Int64Counter

	// Runner lifecycle counters
	RunnersCreated metric.Int64Counter
	RunnersReused  metric.Int64Counter
	RunnersClosed  metric.Int64Counter

	// CommandsRun counts commands dispatched to runner panes.
	CommandsRun metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.MuxCalls, err = meter.Int64Counter("mux.calls",
		metric.WithDescription("Total tmux invocations partitioned by subcommand and outcome"))
	if err != nil {
		return nil, err
	}

	m.RunnersCreated, err = meter.Int64Counter("runner.created",
		metric.WithDescription("Runner panes created by splitting"))
	if err != nil {
		return nil, err
	}

	m.RunnersReused, err = meter.Int64Counter("runner.reused",
		metric.WithDescription("Runner ensure calls satisfied by a live runner or a reused inactive pane"))
	if err != nil {
		return nil, err
	}

	m.RunnersClosed, err = meter.Int64Counter("runner.closed",
		metric.WithDescription("Runner panes killed via close"))
	if err != nil {
		return nil, err
	}

	m.CommandsRun, err = meter.Int64Counter("commands.run",
		metric.WithDescription("Commands sent to runner panes"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordMuxCall records one tmux invocation and its outcome.
func (m *Metrics) RecordMuxCall(ctx context.Context, subcommand string, failed bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	m.MuxCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mux.subcommand", subcommand),
		attribute.String("mux.outcome", outcome),
	))
}

// RecordRunnerCreated records a runner pane created by splitting.
func (m *Metrics) RecordRunnerCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.RunnersCreated.Add(ctx, 1)
}

// RecordRunnerReused records an ensure call that found a live runner.
func (m *Metrics) RecordRunnerReused(ctx context.Context) {
	if m == nil {
		return
	}
	m.RunnersReused.Add(ctx, 1)
}

// RecordRunnerClosed records a runner pane killed via close.
func (m *Metrics) RecordRunnerClosed(ctx context.Context) {
	if m == nil {
		return
	}
	m.RunnersClosed.Add(ctx, 1)
}

// RecordCommandRun records a command dispatched to a runner pane.
func (m *Metrics) RecordCommandRun(ctx context.Context) {
	if m == nil {
		return
	}
	m.CommandsRun.Add(ctx, 1)
}
