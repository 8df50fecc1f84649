package terraform

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	srvErrors "github.com/terralift/terralift/pkg/errors"
)

// validateResult is the parsed output of `terraform validate -json`.
type validateResult struct {
	Valid       bool         `json:"valid"`
	Diagnostics []diagnostic `json:"diagnostics"`
}

type diagnostic struct {
	Severity string `json:"severity"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail"`
}

func formatDiagnostics(diags []diagnostic) string {
	if len(diags) == 0 {
		return "(no diagnostics)"
	}
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		line := fmt.Sprintf("%s: %s", d.Severity, d.Summary)
		if d.Detail != "" {
			line += " - " + d.Detail
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// EnsureInit makes sure the stack root is initialized, doing as little work
// as possible:
//
//   - Recorded backend config drifted from the desired one: run
//     `init -reconfigure` immediately. Reconfiguration is known necessary, so
//     the validate-first shortcut is skipped.
//   - Otherwise run `validate -json` first. Init is slow and validate is
//     cheap, so an already-initialized root (the common case in repeated CI
//     runs) costs one validate and nothing more.
//   - Validation failed: run init with the backend flags and re-validate
//     exactly once. A second failure, or a failing init, surfaces as one
//     consolidated ConfigurationError carrying every diagnostic.
func (s *Stack) EnsureInit(ctx context.Context) error {
	if len(s.cfg.BackendConfig) > 0 {
		changed, err := HasBackendConfigChanged(s.cfg.RootPath, s.cfg.BackendConfig)
		if err != nil {
			return err
		}
		if changed {
			s.log.Infow("backend configuration drift detected, reinitializing")
			return s.init(ctx, true)
		}
	}

	result, err := s.validate(ctx)
	if err != nil {
		return err
	}
	if result.Valid {
		return nil
	}

	s.log.Infow("stack failed validation, initializing", "diagnostics", len(result.Diagnostics))
	if initErr := s.init(ctx, false); initErr != nil {
		return srvErrors.NewConfigurationError(
			"stack %q failed validation:\n%s\nand terraform init failed: %s",
			s.cfg.Name, formatDiagnostics(result.Diagnostics), initErr,
		)
	}

	retry, err := s.validate(ctx)
	if err != nil {
		return err
	}
	if retry.Valid {
		return nil
	}
	return srvErrors.NewConfigurationError(
		"stack %q failed validation:\n%s\nand still fails after terraform init:\n%s",
		s.cfg.Name, formatDiagnostics(result.Diagnostics), formatDiagnostics(retry.Diagnostics),
	)
}

func (s *Stack) init(ctx context.Context, reconfigure bool) error {
	args := []string{"init", "-input=false"}
	if reconfigure {
		args = append(args, "-reconfigure")
	}
	args = append(args, s.backendArgs()...)

	_, err := s.tf.Run(ctx, Request{Dir: s.cfg.RootPath, Args: args, Timeout: LongRunTimeout})
	return err
}

// validate runs `terraform validate -json`. The command exits nonzero on an
// invalid configuration while still emitting the JSON report, so the exit
// code is ignored and the report is the signal.
func (s *Stack) validate(ctx context.Context) (*validateResult, error) {
	res, err := s.tf.Run(ctx, Request{Dir: s.cfg.RootPath, Args: []string{"validate", "-json"}, AllowFailure: true})
	if err != nil {
		return nil, err
	}

	var result validateResult
	if err := json.Unmarshal([]byte(res.Stdout), &result); err != nil {
		return nil, fmt.Errorf("parsing terraform validate output: %w", err)
	}
	return &result, nil
}
