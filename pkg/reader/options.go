package reader

import (
	"log/slog"
	"time"

	"github.com/aretw0/notepad/pkg/core"
)

type options struct {
	period   time.Duration
	logger   *slog.Logger
	renderer core.Renderer
	status   func(string)
	clock    func() time.Time
	onError  func(error)
}

// Option configures a Reader.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		period: core.DefaultPeriod,
		logger: slog.New(slog.DiscardHandler),
		clock:  time.Now,
	}
}

// WithPeriod sets the polling cadence. Non-positive values keep the default.
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

// WithRenderer receives every rebuilt read-only view.
func WithRenderer(r core.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithStatus receives the "updated at <time>" label after every poll.
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

// WithErrorHandler receives store read failures. The view is kept as-is.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
