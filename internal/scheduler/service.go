// Package scheduler runs a background job on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// OnTickFunc is called each time the schedule fires.
type OnTickFunc func(ctx context.Context) error

var parser = robfigcron.NewParser(
	robfigcron.Minute | robfigcron.Hour | robfigcron.Dom | robfigcron.Month | robfigcron.Dow | robfigcron.Descriptor,
)

// Service fires onTick on a parsed schedule. A tick that is still running
// when the next one is due causes that next tick to be skipped.
type Service struct {
	name     string
	expr     string
	schedule robfigcron.Schedule
	onTick   OnTickFunc
	robfig   *robfigcron.Cron
}

// NewService parses expr (five-field cron or a descriptor such as
// "@every 5m") and returns a Service that is not yet started.
func NewService(name, expr string, onTick OnTickFunc) (*Service, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	return &Service{
		name:     name,
		expr:     expr,
		schedule: sched,
		onTick:   onTick,
		robfig: robfigcron.New(
			robfigcron.WithParser(parser),
			robfigcron.WithChain(robfigcron.SkipIfStillRunning(robfigcron.DiscardLogger)),
		),
	}, nil
}

// Next returns the first activation strictly after from.
func (s *Service) Next(from time.Time) time.Time {
	return s.schedule.Next(from)
}

// Start arms the schedule and blocks until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.robfig.Schedule(s.schedule, robfigcron.FuncJob(func() { s.tick(ctx) }))
	s.robfig.Start()
	slog.Info("scheduler: started", "job", s.name, "schedule", s.expr, "next", s.Next(time.Now()))

	<-ctx.Done()

	<-s.robfig.Stop().Done()
	slog.Info("scheduler: stopped", "job", s.name)
	return ctx.Err()
}

func (s *Service) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	slog.Info("scheduler: running job", "job", s.name)
	if s.onTick == nil {
		return
	}
	if err := s.onTick(ctx); err != nil {
		slog.Error("scheduler: job failed", "job", s.name, "err", err)
	}
}
