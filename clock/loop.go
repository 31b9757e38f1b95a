// Package clock drives the two overlay cadences from one update loop: a
// fixed-step simulation tick and a variable render tick.
package clock

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"debug-overlay/overlay"
)

// Phases is the part of *overlay.Engine the loop drives.
type Phases interface {
	SlowPhase()
	FastPhase() overlay.Frame
}

// Loop accumulates frame time and runs whole simulation steps from it.
// While a simulation callback runs, CurrentTick reports TickSlow, so a
// Router bound to the loop stamps entries with the right cadence.
type Loop struct {
	phases    Phases
	step      time.Duration
	maxFrame  time.Duration
	slowFirst bool

	onSlow func(step time.Duration)
	onFast func(dt time.Duration)

	acc     time.Duration
	current overlay.TickKind

	frames    uint64
	slowSteps uint64

	tracer trace.Tracer
	log    logrus.FieldLogger
	now    func() time.Time
}

type Option func(*Loop)

// WithSlowFirst selects whether simulation steps run before the render
// step of a frame. Defaults to true.
func WithSlowFirst(b bool) Option {
	return func(l *Loop) { l.slowFirst = b }
}

// WithMaxFrameTime caps the time a single frame may add to the
// accumulator. Zero disables the cap.
func WithMaxFrameTime(d time.Duration) Option {
	return func(l *Loop) { l.maxFrame = d }
}

// OnSlow registers the simulation callback, run once per fixed step.
func OnSlow(fn func(step time.Duration)) Option {
	return func(l *Loop) { l.onSlow = fn }
}

// OnFast registers the render callback, run once per frame.
func OnFast(fn func(dt time.Duration)) Option {
	return func(l *Loop) { l.onFast = fn }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Loop) { l.log = log }
}

func WithTracer(t trace.Tracer) Option {
	return func(l *Loop) { l.tracer = t }
}

// NewLoop builds a loop running slowHz simulation steps per second.
// A non-positive rate falls back to 60 Hz.
func NewLoop(phases Phases, slowHz float64, opts ...Option) *Loop {
	if slowHz <= 0 {
		slowHz = 60
	}
	l := &Loop{
		phases:    phases,
		step:      time.Duration(float64(time.Second) / slowHz),
		maxFrame:  250 * time.Millisecond,
		slowFirst: true,
		current:   overlay.TickFast,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.tracer == nil {
		l.tracer = otel.Tracer("debug-overlay/clock")
	}
	if l.log == nil {
		l.log = logrus.StandardLogger().WithField("component", "clock")
	}
	return l
}

// CurrentTick implements overlay.TickSource.
func (l *Loop) CurrentTick() overlay.TickKind { return l.current }

// Step is the fixed simulation step.
func (l *Loop) Step() time.Duration { return l.step }

// Alpha is how far the accumulator sits into the next simulation step,
// in [0, 1).
func (l *Loop) Alpha() float64 {
	return float64(l.acc) / float64(l.step)
}

// Frame advances the loop by dt: zero or more simulation steps followed
// (or preceded, see WithSlowFirst) by one render step.
func (l *Loop) Frame(ctx context.Context, dt time.Duration) overlay.Frame {
	ctx, span := l.tracer.Start(ctx, "clock.Loop.Frame",
		trace.WithAttributes(attribute.Int64("dt_us", dt.Microseconds())))
	defer span.End()

	if dt < 0 {
		dt = 0
	}
	if l.maxFrame > 0 && dt > l.maxFrame {
		l.log.WithFields(logrus.Fields{"dt": dt, "cap": l.maxFrame}).Debug("frame time capped")
		dt = l.maxFrame
	}
	l.acc += dt

	var frame overlay.Frame
	var steps int
	if l.slowFirst {
		steps = l.runSlow(ctx)
		frame = l.runFast(ctx, dt)
	} else {
		frame = l.runFast(ctx, dt)
		steps = l.runSlow(ctx)
	}
	l.frames++

	span.SetAttributes(
		attribute.Int("slow_steps", steps),
		attribute.Bool("needs_reorder", frame.NeedsReorder),
		attribute.Bool("empty", frame.Empty),
	)
	return frame
}

func (l *Loop) runSlow(ctx context.Context) int {
	steps := 0
	for l.acc >= l.step {
		_, span := l.tracer.Start(ctx, "overlay.SlowPhase")
		l.current = overlay.TickSlow
		if l.onSlow != nil {
			l.onSlow(l.step)
		}
		l.phases.SlowPhase()
		l.current = overlay.TickFast
		span.End()

		l.acc -= l.step
		l.slowSteps++
		steps++
	}
	return steps
}

func (l *Loop) runFast(ctx context.Context, dt time.Duration) overlay.Frame {
	_, span := l.tracer.Start(ctx, "overlay.FastPhase")
	defer span.End()

	l.current = overlay.TickFast
	if l.onFast != nil {
		l.onFast(dt)
	}
	frame := l.phases.FastPhase()
	span.SetAttributes(
		attribute.Int("created", frame.Created),
		attribute.Int("destroyed", frame.Destroyed),
	)
	return frame
}

// Counts returns the number of frames and simulation steps run so far.
func (l *Loop) Counts() (frames, slowSteps uint64) {
	return l.frames, l.slowSteps
}

// Run calls Frame every interval, measuring dt with the wall clock, and
// hands each result to present. It returns when ctx is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration, present func(overlay.Frame)) error {
	ctx, span := l.tracer.Start(ctx, "clock.Loop.Run")
	defer span.End()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := l.now()
	for {
		select {
		case <-ctx.Done():
			if err := ctx.Err(); !errors.Is(err, context.Canceled) {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			l.log.WithFields(logrus.Fields{"frames": l.frames, "slow_steps": l.slowSteps}).Debug("loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			now := l.now()
			frame := l.Frame(ctx, now.Sub(last))
			last = now
			if present != nil {
				present(frame)
			}
		}
	}
}
