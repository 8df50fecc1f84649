package terraform

import (
	"context"

	srvErrors "github.com/terralift/terralift/pkg/errors"
)

// Apply runs `terraform apply -auto-approve` as a streaming subprocess.
// Infrastructure applies can take many minutes, so every output line is
// forwarded to the log sink as it is produced; stderr is also kept in full
// for the error message when the apply fails.
func (s *Stack) Apply(ctx context.Context) error {
	varArgs, err := s.variableArgs()
	if err != nil {
		return err
	}

	args := append([]string{"apply", "-auto-approve", "-input=false"}, varArgs...)
	res, err := s.tf.Stream(ctx, Request{
		Dir:          s.cfg.RootPath,
		Args:         args,
		AllowFailure: true,
		Timeout:      LongRunTimeout,
	}, func(line string) {
		s.log.Info(line)
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return srvErrors.NewRuntimeError("terraform apply failed with code %d:\n%s", res.ExitCode, res.Stderr)
	}
	return nil
}

// Destroy tears the stack down, but only when the config explicitly allows
// it. With allowDestroy unset the request downgrades to a warning and a
// successful return: destructive operations are opt-in, and callers treating
// delete as a no-op must not see a failure.
func (s *Stack) Destroy(ctx context.Context) error {
	if !s.cfg.AllowDestroy {
		s.log.Warnw("allowDestroy is false, skipping destroy", "root", s.cfg.RootPath)
		return nil
	}

	if err := s.EnsureWorkspace(ctx); err != nil {
		return err
	}

	varArgs, err := s.variableArgs()
	if err != nil {
		return err
	}

	args := append([]string{"destroy", "-auto-approve", "-input=false"}, varArgs...)
	_, err = s.tf.Run(ctx, Request{Dir: s.cfg.RootPath, Args: args, Timeout: LongRunTimeout})
	return err
}
