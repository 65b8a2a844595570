// Package dependency wires core mailbridge services using go.uber.org/dig.
package dependency

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"github.com/crystaldolphin/mailbridge/internal/applescript"
	"github.com/crystaldolphin/mailbridge/internal/config"
	"github.com/crystaldolphin/mailbridge/internal/dispatch"
	"github.com/crystaldolphin/mailbridge/internal/mail"
	"github.com/crystaldolphin/mailbridge/internal/mcp"
	"github.com/crystaldolphin/mailbridge/internal/scheduler"
	"github.com/crystaldolphin/mailbridge/internal/schema"
	"github.com/crystaldolphin/mailbridge/internal/tools"
)

// Container holds the resolved service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	registry   *tools.Registry
	dispatcher *dispatch.Dispatcher
	server     *mcp.Server
	mailCheck  *scheduler.Service
}

func (c *Container) Registry() *tools.Registry        { return c.registry }
func (c *Container) Dispatcher() *dispatch.Dispatcher { return c.dispatcher }
func (c *Container) Server() *mcp.Server              { return c.server }

// MailCheck returns the periodic new-mail check, or nil when none is configured.
func (c *Container) MailCheck() *scheduler.Service { return c.mailCheck }

// mailCheckJob wraps the optional scheduler so dig can carry a nil service.
type mailCheckJob struct{ *scheduler.Service }

// New builds and wires all services from cfg, running scripts through the
// configured interpreter.
func New(cfg *config.Config) (*Container, error) {
	return build(cfg, func(c *config.Config) schema.ScriptRunner { return newRunner(c) })
}

// NewWithRunner is New with a caller-supplied script runner.
func NewWithRunner(cfg *config.Config, runner schema.ScriptRunner) (*Container, error) {
	return build(cfg, func(*config.Config) schema.ScriptRunner { return runner })
}

func build(cfg *config.Config, runnerProvider func(*config.Config) schema.ScriptRunner) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(runnerProvider); err != nil {
		return nil, err
	}
	if err := d.Provide(tools.NewMailRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newDispatcher); err != nil {
		return nil, err
	}
	if err := d.Provide(newServer); err != nil {
		return nil, err
	}
	if err := d.Provide(newMailCheck); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		registry *tools.Registry,
		dispatcher *dispatch.Dispatcher,
		server *mcp.Server,
		job mailCheckJob,
	) {
		result = &Container{
			registry:   registry,
			dispatcher: dispatcher,
			server:     server,
			mailCheck:  job.Service,
		}
	})
	return result, err
}

func newRunner(cfg *config.Config) *applescript.Runner {
	return applescript.NewRunner(applescript.Options{
		Interpreter:    cfg.Mail.Interpreter,
		StagingDir:     cfg.Mail.StagingDir,
		Timeout:        cfg.Mail.TimeoutDuration(),
		MaxOutputBytes: cfg.Mail.MaxOutputBytes,
	})
}

func newDispatcher(reg *tools.Registry) *dispatch.Dispatcher {
	return dispatch.New(reg)
}

func newServer(cfg *config.Config, d *dispatch.Dispatcher) *mcp.Server {
	return mcp.NewServer(d, mcp.Info{Name: cfg.Server.Name, Version: cfg.Server.Version})
}

// newMailCheck schedules check-for-new-mail through the dispatcher when
// mail.checkSchedule is set.
func newMailCheck(cfg *config.Config, d *dispatch.Dispatcher) (mailCheckJob, error) {
	if cfg.Mail.CheckSchedule == "" {
		return mailCheckJob{}, nil
	}
	svc, err := scheduler.NewService(mail.OpCheckForNewMail, cfg.Mail.CheckSchedule, func(ctx context.Context) error {
		env := d.Dispatch(ctx, dispatch.Call{Name: mail.OpCheckForNewMail})
		if env.IsError {
			return errors.New(env.Text())
		}
		return nil
	})
	if err != nil {
		return mailCheckJob{}, err
	}
	return mailCheckJob{svc}, nil
}
