package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/terralift/terralift/internal/services"
	"github.com/terralift/terralift/pkg/commands"
)

type Handler struct {
	stackSrv   *services.StackService
	dispatcher *commands.Dispatcher
}

func New(stackSrv *services.StackService, dispatcher *commands.Dispatcher) *Handler {
	return &Handler{
		stackSrv:   stackSrv,
		dispatcher: dispatcher,
	}
}

// RegisterRoutes mounts all v1 endpoints on the given group.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/stacks/:name/status", h.GetStackStatus)
	rg.POST("/stacks/:name/deploy", h.DeployStack)
	rg.DELETE("/stacks/:name", h.DeleteStack)
	rg.POST("/commands", h.RunCommand)
}
