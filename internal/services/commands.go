package services

import (
	"github.com/terralift/terralift/internal/models"
)

// CommandStacks adapts StackService to the command surface's resolver
// interface.
type CommandStacks struct {
	srv *StackService
}

func NewCommandStacks(srv *StackService) CommandStacks {
	return CommandStacks{srv: srv}
}

func (c CommandStacks) Root() (models.StackConfig, error) {
	return c.srv.ResolveRoot()
}

func (c CommandStacks) Action(name string) (models.StackConfig, error) {
	return c.srv.Resolve(name)
}
