package writer

import (
	"log/slog"
	"time"

	"github.com/aretw0/notepad/pkg/core"
)

type options struct {
	period   time.Duration
	logger   *slog.Logger
	surfaces core.SurfaceFactory
	status   func(string)
	clock    func() time.Time
	onError  func(error)
}

// Option configures a Writer.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		period: core.DefaultPeriod,
		logger: slog.New(slog.DiscardHandler),
		clock:  time.Now,
	}
}

// WithPeriod sets the autosave cadence. Non-positive values keep the default.
func WithPeriod(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.period = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSurfaces renders notes on surfaces created by f.
func WithSurfaces(f core.SurfaceFactory) Option {
	return func(o *options) {
		o.surfaces = f
	}
}

// WithStatus receives the "saved at <time>" label after each successful save.
func WithStatus(fn func(string)) Option {
	return func(o *options) {
		o.status = fn
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithErrorHandler receives every failed save.
// The autosave loop keeps running regardless.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
