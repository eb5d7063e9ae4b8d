// Package schedule decides when the daily run happens. Instead of polling a
// clock, it computes the next window start with a cron expression and sleeps
// until that instant, waking early only on context cancellation.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Window is a same-day local-time interval, e.g. 21:00 to 23:00.
type Window struct {
	startMin int // minutes after local midnight, inclusive
	endMin   int // exclusive
	loc      *time.Location
	start    cron.Schedule // fires at the window start every day
}

// ParseWindow builds a Window from "HH:MM" bounds. The end must be after the
// start within the same day.
func ParseWindow(start, end string, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}

	st, err := time.Parse("15:04", start)
	if err != nil {
		return Window{}, fmt.Errorf("parsing window start %q: %w", start, err)
	}
	en, err := time.Parse("15:04", end)
	if err != nil {
		return Window{}, fmt.Errorf("parsing window end %q: %w", end, err)
	}

	startMin := st.Hour()*60 + st.Minute()
	endMin := en.Hour()*60 + en.Minute()
	if endMin <= startMin {
		return Window{}, fmt.Errorf("window end %s is not after start %s", end, start)
	}

	sched, err := cron.ParseStandard(fmt.Sprintf("%d %d * * *", st.Minute(), st.Hour()))
	if err != nil {
		return Window{}, fmt.Errorf("building window schedule: %w", err)
	}

	return Window{startMin: startMin, endMin: endMin, loc: loc, start: sched}, nil
}

// Contains reports whether t falls inside the window in the window's
// timezone.
func (w Window) Contains(t time.Time) bool {
	lt := t.In(w.loc)
	m := lt.Hour()*60 + lt.Minute()
	return m >= w.startMin && m < w.endMin
}

// NextStart returns the first window start strictly after t.
func (w Window) NextStart(t time.Time) time.Time {
	return w.start.Next(t.In(w.loc))
}

// NextFire is the instant the runner would act on if consulted at t: t
// itself when already inside the window, else the next window start.
func (w Window) NextFire(t time.Time) time.Time {
	if w.Contains(t) {
		return t
	}
	return w.NextStart(t)
}

// RunFunc is one pipeline attempt at the given wall-clock instant.
type RunFunc func(ctx context.Context, now time.Time) error

// Runner executes a RunFunc under one of three modes: immediately, once
// inside the next window, or daily forever.
type Runner struct {
	window Window
	run    RunFunc
	logger *slog.Logger
	now    func() time.Time // stubbed in tests
}

func NewRunner(window Window, run RunFunc) *Runner {
	return &Runner{
		window: window,
		run:    run,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// RunNow runs once, immediately, ignoring the window.
func (r *Runner) RunNow(ctx context.Context) error {
	return r.run(ctx, r.now())
}

// WaitWindow runs once inside the window and returns. If the window is
// already open it runs right away; otherwise it sleeps until the next start.
func (r *Runner) WaitWindow(ctx context.Context) error {
	now := r.now()
	if !r.window.Contains(now) {
		next := r.window.NextStart(now)
		r.logger.Info("sleeping until next window", "wake_at", next, "for", next.Sub(now).Round(time.Second))
		if err := r.sleepUntil(ctx, next); err != nil {
			return err
		}
	}
	return r.run(ctx, r.now())
}

// DailyWindow runs once per window, forever, until the context is canceled.
// Failures are logged and the loop moves on to the next day; the run
// ledger's date key makes a same-day restart harmless.
func (r *Runner) DailyWindow(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := r.now()
		if !r.window.Contains(now) {
			next := r.window.NextStart(now)
			r.logger.Info("sleeping until next window", "wake_at", next, "for", next.Sub(now).Round(time.Second))
			if err := r.sleepUntil(ctx, next); err != nil {
				return err
			}
		}

		if err := r.run(ctx, r.now()); err != nil {
			r.logger.Error("daily run failed, continuing", "error", err)
		}

		// park until tomorrow's start so one window never runs twice
		next := r.window.NextStart(r.now())
		r.logger.Info("sleeping until next window", "wake_at", next)
		if err := r.sleepUntil(ctx, next); err != nil {
			return err
		}
	}
}

// sleepUntil blocks until t or until ctx is canceled.
func (r *Runner) sleepUntil(ctx context.Context, t time.Time) error {
	d := t.Sub(r.now())
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
