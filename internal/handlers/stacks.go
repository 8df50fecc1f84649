package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/terralift/terralift/api/v1"
	srvErrors "github.com/terralift/terralift/pkg/errors"
)

// GetStackStatus probes a stack and returns its state with live outputs.
// (GET /stacks/{name}/status)
func (h *Handler) GetStackStatus(c *gin.Context) {
	result, err := h.stackSrv.GetStatus(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewStackResultResponse(result))
}

// DeployStack applies a stack when it is out of date.
// (POST /stacks/{name}/deploy)
func (h *Handler) DeployStack(c *gin.Context) {
	result, err := h.stackSrv.Deploy(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewStackResultResponse(result))
}

// DeleteStack destroys a stack, respecting the allowDestroy guard.
// (DELETE /stacks/{name})
func (h *Handler) DeleteStack(c *gin.Context) {
	result, err := h.stackSrv.Delete(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewStackResultResponse(result))
}

// RunCommand forwards one allow-listed terraform subcommand to the stack
// root (root form) or a named action's stack (action form).
// (POST /commands)
func (h *Handler) RunCommand(c *gin.Context) {
	var req v1.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	var err error
	if req.Action == "" {
		err = h.dispatcher.RunRoot(c.Request.Context(), req.Command, req.Args)
	} else {
		err = h.dispatcher.RunAction(c.Request.Context(), req.Action, req.Command, req.Args)
	}
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError maps the error taxonomy onto HTTP statuses for the stack
// endpoints, where the stack name is a path segment: a parameter error means
// the addressed resource does not exist (404). Configuration errors are bad
// deployment config; everything else is an internal failure.
func respondError(c *gin.Context, err error) {
	respondWithStatus(c, err, http.StatusNotFound)
}

// respondCommandError is the mapping for the command endpoint, where both
// the subcommand and the action arrive in the request body: a parameter
// error (disallowed subcommand, unknown action) is a bad request (400), not
// a missing resource.
func respondCommandError(c *gin.Context, err error) {
	respondWithStatus(c, err, http.StatusBadRequest)
}

func respondWithStatus(c *gin.Context, err error, parameterStatus int) {
	zap.S().Named("handlers").Errorw("request failed", "path", c.FullPath(), "error", err)

	status := http.StatusInternalServerError
	switch {
	case srvErrors.IsParameterError(err):
		status = parameterStatus
	case srvErrors.IsConfigurationError(err):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, v1.ErrorResponse{Error: err.Error()})
}
