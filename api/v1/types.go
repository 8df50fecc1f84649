// Package v1 defines the wire types of the agent's HTTP API.
package v1

import (
	"github.com/terralift/terralift/internal/models"
)

// StackResultResponse is the body returned by the status, deploy and delete
// endpoints.
type StackResultResponse struct {
	State   string         `json:"state"`
	Outputs map[string]any `json:"outputs"`
}

func NewStackResultResponse(m *models.StackResult) StackResultResponse {
	outputs := m.Outputs
	if outputs == nil {
		outputs = map[string]any{}
	}
	return StackResultResponse{
		State:   string(m.State),
		Outputs: outputs,
	}
}

// CommandRequest invokes one allow-listed terraform subcommand. An empty
// Action selects the root form, which operates on the default stack.
type CommandRequest struct {
	Command string   `json:"command" binding:"required"`
	Args    []string `json:"args"`
	Action  string   `json:"action,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
