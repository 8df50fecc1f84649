package commands

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terralift/terralift/internal/models"
	srvErrors "github.com/terralift/terralift/pkg/errors"
	"github.com/terralift/terralift/pkg/terraform"
)

// StackResolver maps the two invocation forms to stack configurations: the
// root form operates on the project-wide default stack, the action form on a
// named one.
type StackResolver interface {
	Root() (models.StackConfig, error)
	Action(name string) (models.StackConfig, error)
}

// CacheInvalidator removes any cached status for a stack. The root form
// invalidates before running so a manual CLI invocation outside the normal
// lifecycle cannot leave a stale record behind.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, stackName, workspace string) error
}

// ExecutorFactory builds the executor for one stack config, resolving the
// configured terraform version to a binary.
type ExecutorFactory func(ctx context.Context, cfg models.StackConfig) (terraform.Executor, error)

// Dispatcher is the passthrough command surface: a fixed allow-list of
// terraform subcommands, each statically classified for variable injection,
// init and workspace setup.
type Dispatcher struct {
	stacks      StackResolver
	cache       CacheInvalidator
	newExecutor ExecutorFactory
	sink        terraform.LineSink
	log         *zap.SugaredLogger
}

func NewDispatcher(stacks StackResolver, cache CacheInvalidator, newExecutor ExecutorFactory, sink terraform.LineSink) *Dispatcher {
	return &Dispatcher{
		stacks:      stacks,
		cache:       cache,
		newExecutor: newExecutor,
		sink:        sink,
		log:         zap.S().Named("commands"),
	}
}

// RunRoot runs a subcommand against the project-wide root stack.
func (d *Dispatcher) RunRoot(ctx context.Context, command string, args []string) error {
	cfg, err := d.stacks.Root()
	if err != nil {
		return err
	}
	if d.cache != nil {
		if err := d.cache.Invalidate(ctx, cfg.Name, cfg.Workspace); err != nil {
			return err
		}
	}
	return d.run(ctx, cfg, command, args)
}

// RunAction runs a subcommand against the stack of a named action.
func (d *Dispatcher) RunAction(ctx context.Context, action, command string, args []string) error {
	if action == "" {
		return srvErrors.NewParameterError("the first argument must be an action name")
	}
	cfg, err := d.stacks.Action(action)
	if err != nil {
		return err
	}
	return d.run(ctx, cfg, command, args)
}

func (d *Dispatcher) run(ctx context.Context, cfg models.StackConfig, command string, args []string) error {
	spec, ok := Table[command]
	if !ok {
		return srvErrors.NewParameterError("terraform command %q is not supported", command)
	}

	opID := uuid.NewString()
	log := d.log.With("op", opID, "stack", cfg.Name, "command", command)
	log.Infow("dispatching terraform command")

	executor, err := d.newExecutor(ctx, cfg)
	if err != nil {
		return err
	}
	stack := terraform.NewStack(cfg, executor)

	if spec.RequiresWorkspace {
		if err := stack.EnsureWorkspace(ctx); err != nil {
			return err
		}
	}
	if spec.RequiresInit {
		if err := stack.EnsureInit(ctx); err != nil {
			return err
		}
	}

	finalArgs := []string{command}
	finalArgs = append(finalArgs, args...)
	if spec.AcceptsVariables {
		varArgs, err := terraform.PrepareVariables(cfg.RootPath, cfg.Variables)
		if err != nil {
			return err
		}
		finalArgs = append(finalArgs, varArgs...)
	}

	// Operator-invoked passthroughs include apply and destroy, so the long
	// timeout applies across the board.
	res, err := executor.Stream(ctx, terraform.Request{
		Dir:          cfg.RootPath,
		Args:         finalArgs,
		AllowFailure: true,
		Timeout:      terraform.LongRunTimeout,
	}, d.sink)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return srvErrors.NewExecError("terraform "+command, res.ExitCode, res.Stderr)
	}
	log.Infow("terraform command finished")
	return nil
}
