package terraform

import (
	"context"

	"github.com/terralift/terralift/internal/models"
	srvErrors "github.com/terralift/terralift/pkg/errors"
)

// Status probes the stack with a dry-run plan and classifies the detailed
// exit code. The probe is read-only: -refresh=false and -lock=false keep it
// from refreshing state or contending with a concurrent real apply.
//
//	0 - no changes pending
//	1 - plan error (logged, not fatal; the caller decides what to do)
//	2 - valid plan with pending changes
//
// Anything else violates terraform's documented detailed-exitcode contract
// and is a PluginError.
func (s *Stack) Status(ctx context.Context) (models.StackStatus, error) {
	varArgs, err := s.variableArgs()
	if err != nil {
		return "", err
	}

	args := append([]string{"plan", "-detailed-exitcode", "-input=false", "-refresh=false", "-lock=false"}, varArgs...)
	res, err := s.tf.Run(ctx, Request{Dir: s.cfg.RootPath, Args: args, AllowFailure: true})
	if err != nil {
		return "", err
	}

	switch res.ExitCode {
	case 0:
		return models.StackStatusUpToDate, nil
	case 1:
		s.log.Errorw("terraform plan returned an error", "stderr", res.Stderr)
		return models.StackStatusError, nil
	case 2:
		return models.StackStatusOutdated, nil
	default:
		return "", srvErrors.NewPluginError(
			"terraform plan exited with unexpected code %d\nstdout:\n%s\nstderr:\n%s",
			res.ExitCode, res.Stdout, res.Stderr,
		)
	}
}
