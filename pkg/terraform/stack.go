package terraform

import (
	"sort"

	"go.uber.org/zap"

	"github.com/terralift/terralift/internal/models"
)

// Stack binds one StackConfig to an executor and exposes the lifecycle
// operations on that working directory.
type Stack struct {
	cfg models.StackConfig
	tf  Executor
	log *zap.SugaredLogger
}

func NewStack(cfg models.StackConfig, tf Executor) *Stack {
	return &Stack{
		cfg: cfg,
		tf:  tf,
		log: zap.S().Named("terraform").With("stack", cfg.Name),
	}
}

// backendArgs renders the configured backend settings as -backend-config
// flags, in stable key order.
func (s *Stack) backendArgs() []string {
	if len(s.cfg.BackendConfig) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.cfg.BackendConfig))
	for k := range s.cfg.BackendConfig {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, "-backend-config", k+"="+s.cfg.BackendConfig[k])
	}
	return args
}

func (s *Stack) variableArgs() ([]string, error) {
	return PrepareVariables(s.cfg.RootPath, s.cfg.Variables)
}
