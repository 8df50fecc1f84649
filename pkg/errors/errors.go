package errors

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates the caller's configuration cannot be acted on:
// a missing stack root, an unresolvable terraform version, or a stack that
// still fails validation after the bounded init retry.
type ConfigurationError struct {
	Message string
}

func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func IsConfigurationError(err error) bool {
	var t *ConfigurationError
	return errors.As(err, &t)
}

// ParameterError indicates the caller addressed the command surface with a
// missing or unknown action name, an action of the wrong kind, or a
// subcommand outside the allow-list.
type ParameterError struct {
	Message string
}

func NewParameterError(format string, args ...any) *ParameterError {
	return &ParameterError{Message: fmt.Sprintf(format, args...)}
}

func (e *ParameterError) Error() string {
	return e.Message
}

func IsParameterError(err error) bool {
	var t *ParameterError
	return errors.As(err, &t)
}

// RuntimeError indicates the external tool failed at runtime: apply exited
// nonzero or the terraform binary could not be located on PATH.
type RuntimeError struct {
	Message string
}

func NewRuntimeError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func IsRuntimeError(err error) bool {
	var t *RuntimeError
	return errors.As(err, &t)
}

// PluginError indicates the external tool behaved outside its documented
// contract, e.g. plan's detailed-exitcode protocol returned something other
// than 0, 1 or 2. This is a defect in the integration, not user error.
type PluginError struct {
	Message string
}

func NewPluginError(format string, args ...any) *PluginError {
	return &PluginError{Message: fmt.Sprintf(format, args...)}
}

func (e *PluginError) Error() string {
	return e.Message
}

func IsPluginError(err error) bool {
	var t *PluginError
	return errors.As(err, &t)
}

// ExecError carries a nonzero subprocess exit along with the captured stderr
// for operator diagnosis. It is the generic failure for invocations that have
// no more specific classification (workspace list/select/new, destroy).
type ExecError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func NewExecError(command string, exitCode int, stderr string) *ExecError {
	return &ExecError{Command: command, ExitCode: exitCode, Stderr: stderr}
}

func (e *ExecError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("command %q exited with code %d:\n%s", e.Command, e.ExitCode, e.Stderr)
}

func IsExecError(err error) bool {
	var t *ExecError
	return errors.As(err, &t)
}

// NotFoundError indicates a requested record does not exist in the store.
type NotFoundError struct {
	Message string
}

func NewStatusNotFoundError(stack, workspace string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("no cached status for stack %q workspace %q", stack, workspace)}
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}
