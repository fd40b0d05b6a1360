package task

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/smallbiznis/answer-bridge/internal/task"

// Func is a unit of post-acknowledgment work.
type Func func(ctx context.Context) error

// Group runs detached tasks. Errors and panics are logged and dropped; they
// never reach the caller that scheduled the task.
type Group struct {
	timeout time.Duration
	logger  *zap.Logger
	tracer  trace.Tracer

	mu     sync.Mutex
	closed bool
	eg     errgroup.Group
}

// NewGroup creates a task group with a per-task timeout.
func NewGroup(timeout time.Duration, logger *zap.Logger) *Group {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Group{
		timeout: timeout,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// Go schedules fn. It returns false once the group has been closed.
func (g *Group) Go(name string, fn Func) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		g.logger.Warn("task rejected after shutdown", zap.String("task", name))
		return false
	}
	g.eg.Go(func() error {
		g.run(name, fn)
		return nil
	})
	return true
}

// Wait closes the group and blocks until running tasks finish or ctx is done.
func (g *Group) Wait(ctx context.Context) error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = g.eg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Group) run(name string, fn Func) {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()
	ctx, span := g.tracer.Start(ctx, "task."+name, trace.WithAttributes(attribute.String("task.name", name)))
	defer span.End()

	start := time.Now()
	err := safeCall(ctx, fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.logger.Error("task failed",
			zap.String("task", name),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	g.logger.Debug("task done", zap.String("task", name), zap.Duration("latency", time.Since(start)))
}

func safeCall(ctx context.Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return fn(ctx)
}
