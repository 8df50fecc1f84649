package models

import (
	"fmt"
	"os"
	"time"
)

// StackKind identifies which lifecycle engine manages a configured stack.
// Only terraform is implemented today; the field exists so the command
// surface can reject actions of an incompatible kind.
type StackKind string

const (
	StackKindTerraform StackKind = "terraform"
)

// StackStatus is the tri-state result of a status probe.
type StackStatus string

const (
	// StackStatusUpToDate - a dry-run plan reported no pending changes
	StackStatusUpToDate StackStatus = "up-to-date"
	// StackStatusOutdated - the plan is valid but changes are pending
	StackStatusOutdated StackStatus = "outdated"
	// StackStatusError - the plan itself failed (malformed config, missing vars)
	StackStatusError StackStatus = "error"
)

func ParseStackStatus(s string) (StackStatus, error) {
	switch s {
	case "up-to-date":
		return StackStatusUpToDate, nil
	case "outdated":
		return StackStatusOutdated, nil
	case "error":
		return StackStatusError, nil
	default:
		return "", fmt.Errorf("invalid stack status: %s", s)
	}
}

// DeployState is the state reported back to the host orchestrator.
type DeployState string

const (
	DeployStateReady    DeployState = "ready"
	DeployStateOutdated DeployState = "outdated"
	DeployStateMissing  DeployState = "missing"
)

// StackConfig identifies one terraform working directory and how to operate
// on it. A new instance is built per operation and is immutable while the
// operation runs.
type StackConfig struct {
	Name          string
	RootPath      string
	Workspace     string
	BackendConfig map[string]string
	Variables     map[string]any
	Version       string
	AllowDestroy  bool
	AutoApply     bool
}

// Validate checks the parts of the config that must hold before any external
// invocation is attempted. A missing root directory is a configuration
// mistake, not a runtime failure.
func (c StackConfig) Validate() error {
	if c.RootPath == "" {
		return fmt.Errorf("stack %q has no root path", c.Name)
	}
	info, err := os.Stat(c.RootPath)
	if err != nil {
		return fmt.Errorf("stack %q root %q is not accessible: %w", c.Name, c.RootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("stack %q root %q is not a directory", c.Name, c.RootPath)
	}
	return nil
}

// WorkspaceSet is the parsed output of `terraform workspace list`. It is
// recomputed on every query because the external tool mutates workspace
// state itself.
type WorkspaceSet struct {
	Workspaces []string
	Selected   string
}

func (w WorkspaceSet) Contains(name string) bool {
	for _, ws := range w.Workspaces {
		if ws == name {
			return true
		}
	}
	return false
}

// ProcessResult captures one finished subprocess invocation. It is used
// transiently and never retained beyond the call that produced it.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// StackResult is what the host orchestrator receives from the status,
// deploy and delete entry points.
type StackResult struct {
	State   DeployState
	Outputs map[string]any
}

// CachedStatus is the last observed status of a stack, persisted for
// diagnostics only. Live operations never trust it.
type CachedStatus struct {
	StackName string
	Workspace string
	Status    StackStatus
	Outputs   []byte
	CachedAt  time.Time
}
