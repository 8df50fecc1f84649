package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terralift/terralift/internal/config"
	"github.com/terralift/terralift/internal/models"
	"github.com/terralift/terralift/internal/store"
	srvErrors "github.com/terralift/terralift/pkg/errors"
	"github.com/terralift/terralift/pkg/scheduler"
	"github.com/terralift/terralift/pkg/terraform"
)

// ExecutorFactory builds the executor for one stack config, resolving the
// configured terraform version to a binary.
type ExecutorFactory func(ctx context.Context, cfg models.StackConfig) (terraform.Executor, error)

// Option customizes a StackService.
type Option func(*StackService)

// WithExecutorFactory replaces the default binary-resolving factory.
func WithExecutorFactory(f ExecutorFactory) Option {
	return func(s *StackService) {
		s.newExecutor = f
	}
}

// StackService exposes the host-orchestrator entry points (status, deploy,
// delete) over configured stacks. Operations run on the shared scheduler so
// a burst of requests cannot fork an unbounded number of terraform
// processes.
type StackService struct {
	scheduler   *scheduler.Scheduler[*models.StackResult]
	store       *store.Store
	cfg         *config.Configuration
	newExecutor ExecutorFactory
	log         *zap.SugaredLogger
}

func NewStackService(s *scheduler.Scheduler[*models.StackResult], st *store.Store, cfg *config.Configuration, opts ...Option) *StackService {
	svc := &StackService{
		scheduler: s,
		store:     st,
		cfg:       cfg,
		log:       zap.S().Named("stack_service"),
	}
	svc.newExecutor = svc.NewExecutor
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Resolve maps an action name to its per-operation stack config. Unknown
// names and non-terraform actions are parameter errors; a missing root
// directory is a configuration error.
func (s *StackService) Resolve(name string) (models.StackConfig, error) {
	spec, ok := s.cfg.Stacks[name]
	if !ok {
		return models.StackConfig{}, srvErrors.NewParameterError("no stack named %q is configured", name)
	}
	if spec.Kind != string(models.StackKindTerraform) {
		return models.StackConfig{}, srvErrors.NewParameterError("stack %q has kind %q, not %q", name, spec.Kind, models.StackKindTerraform)
	}

	stackCfg := spec.StackConfig(name)
	if err := stackCfg.Validate(); err != nil {
		return models.StackConfig{}, srvErrors.NewConfigurationError("%s", err)
	}
	return stackCfg, nil
}

// ResolveRoot returns the project-wide default stack.
func (s *StackService) ResolveRoot() (models.StackConfig, error) {
	if s.cfg.DefaultStack == "" {
		return models.StackConfig{}, srvErrors.NewParameterError("no default stack is configured")
	}
	return s.Resolve(s.cfg.DefaultStack)
}

// NewExecutor resolves the configured terraform version for one stack and
// returns a runner bound to that binary.
func (s *StackService) NewExecutor(ctx context.Context, cfg models.StackConfig) (terraform.Executor, error) {
	bin, err := terraform.ResolveBinary(ctx, s.binariesDir(), cfg.Version)
	if err != nil {
		return nil, err
	}
	return terraform.NewRunner(bin), nil
}

func (s *StackService) binariesDir() string {
	return filepath.Join(s.cfg.Agent.DataFolder, "bin")
}

// GetStatus probes the stack and returns its state with live outputs.
func (s *StackService) GetStatus(ctx context.Context, name string) (*models.StackResult, error) {
	return s.submit(ctx, name, "status", func(ctx context.Context, stack *terraform.Stack, cfg models.StackConfig, log *zap.SugaredLogger) (*models.StackResult, error) {
		if err := stack.EnsureWorkspace(ctx); err != nil {
			return nil, err
		}
		if err := stack.EnsureInit(ctx); err != nil {
			return nil, err
		}
		status, err := stack.Status(ctx)
		if err != nil {
			return nil, err
		}
		outputs, err := stack.Outputs(ctx)
		if err != nil {
			return nil, err
		}

		result := &models.StackResult{State: deployState(status), Outputs: outputs}
		s.cache(ctx, cfg, status, outputs, log)
		return result, nil
	})
}

// Deploy applies the stack when it is out of date. With autoApply disabled
// an outdated stack is reported with a warning and its current outputs
// instead of being applied, best effort.
func (s *StackService) Deploy(ctx context.Context, name string) (*models.StackResult, error) {
	return s.submit(ctx, name, "deploy", func(ctx context.Context, stack *terraform.Stack, cfg models.StackConfig, log *zap.SugaredLogger) (*models.StackResult, error) {
		if err := stack.EnsureWorkspace(ctx); err != nil {
			return nil, err
		}
		if err := stack.EnsureInit(ctx); err != nil {
			return nil, err
		}
		status, err := stack.Status(ctx)
		if err != nil {
			return nil, err
		}

		state := models.DeployStateReady
		switch {
		case status == models.StackStatusUpToDate:
			log.Infow("stack is up to date, nothing to apply")
		case cfg.AutoApply:
			if err := stack.Apply(ctx); err != nil {
				return nil, err
			}
			status = models.StackStatusUpToDate
		default:
			log.Warnw("stack is out of date but autoApply is disabled, returning current outputs",
				"status", status)
			state = models.DeployStateOutdated
		}

		outputs, err := stack.Outputs(ctx)
		if err != nil {
			return nil, err
		}

		s.cache(ctx, cfg, status, outputs, log)
		return &models.StackResult{State: state, Outputs: outputs}, nil
	})
}

// Delete destroys the stack, respecting the allowDestroy guard. When the
// guard is off the stack stays as-is and is reported outdated.
func (s *StackService) Delete(ctx context.Context, name string) (*models.StackResult, error) {
	return s.submit(ctx, name, "delete", func(ctx context.Context, stack *terraform.Stack, cfg models.StackConfig, log *zap.SugaredLogger) (*models.StackResult, error) {
		if !cfg.AllowDestroy {
			log.Warnw("allowDestroy is false, stack left in place")
			return &models.StackResult{State: models.DeployStateOutdated, Outputs: map[string]any{}}, nil
		}

		if err := stack.Destroy(ctx); err != nil {
			return nil, err
		}

		if err := s.store.Status().Delete(ctx, cfg.Name, cfg.Workspace); err != nil {
			log.Warnw("failed to drop cached status", "error", err)
		}
		return &models.StackResult{State: models.DeployStateMissing, Outputs: map[string]any{}}, nil
	})
}

type stackOp func(ctx context.Context, stack *terraform.Stack, cfg models.StackConfig, log *zap.SugaredLogger) (*models.StackResult, error)

// submit resolves the stack, schedules the operation and waits for its
// future. Each operation gets a uuid tagged on every log line it emits.
func (s *StackService) submit(ctx context.Context, name, op string, fn stackOp) (*models.StackResult, error) {
	cfg, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	log := s.log.With("op", opID, "stack", cfg.Name, "operation", op)
	log.Infow("stack operation submitted")

	future := s.scheduler.Submit(func(workCtx context.Context) (*models.StackResult, error) {
		executor, err := s.newExecutor(workCtx, cfg)
		if err != nil {
			return nil, err
		}
		return fn(workCtx, terraform.NewStack(cfg, executor), cfg, log)
	})

	select {
	case res := <-future.C():
		if res.Err != nil {
			log.Errorw("stack operation failed", "error", res.Err)
			return nil, res.Err
		}
		log.Infow("stack operation finished")
		return res.Data, nil
	case <-ctx.Done():
		future.Stop()
		return nil, ctx.Err()
	}
}

// Invalidate drops the cached status row for a stack. Used by the command
// surface before a root-form passthrough runs.
func (s *StackService) Invalidate(ctx context.Context, stackName, workspace string) error {
	return s.store.Status().Delete(ctx, stackName, workspace)
}

func (s *StackService) cache(ctx context.Context, cfg models.StackConfig, status models.StackStatus, outputs map[string]any, log *zap.SugaredLogger) {
	data, err := json.Marshal(outputs)
	if err != nil {
		log.Warnw("failed to marshal outputs for the status cache", "error", err)
		return
	}
	err = s.store.Status().Save(ctx, &models.CachedStatus{
		StackName: cfg.Name,
		Workspace: cfg.Workspace,
		Status:    status,
		Outputs:   data,
		CachedAt:  time.Now().UTC(),
	})
	if err != nil {
		log.Warnw("failed to persist status cache", "error", err)
	}
}

func deployState(status models.StackStatus) models.DeployState {
	if status == models.StackStatusUpToDate {
		return models.DeployStateReady
	}
	return models.DeployStateOutdated
}
