package terraform

import (
	"context"
	"strings"

	"github.com/terralift/terralift/internal/models"
)

// ListWorkspaces returns the workspaces known to the stack root and which one
// is currently selected. Init runs first so the workspace subcommands are
// usable on a fresh checkout.
func (s *Stack) ListWorkspaces(ctx context.Context) (*models.WorkspaceSet, error) {
	initArgs := append([]string{"init", "-input=false"}, s.backendArgs()...)
	if _, err := s.tf.Run(ctx, Request{Dir: s.cfg.RootPath, Args: initArgs, Timeout: LongRunTimeout}); err != nil {
		return nil, err
	}

	res, err := s.tf.Run(ctx, Request{Dir: s.cfg.RootPath, Args: []string{"workspace", "list"}})
	if err != nil {
		return nil, err
	}

	return parseWorkspaceList(res.Stdout), nil
}

// parseWorkspaceList reads `terraform workspace list` output. The selected
// workspace carries a leading `*` marker.
func parseWorkspaceList(output string) *models.WorkspaceSet {
	set := &models.WorkspaceSet{}
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "*") {
			name = strings.TrimSpace(strings.TrimPrefix(name, "*"))
			set.Selected = name
		}
		set.Workspaces = append(set.Workspaces, name)
	}
	return set
}

// EnsureWorkspace makes the configured workspace the selected one, creating
// it when missing. Selecting the already-selected workspace is a no-op so
// repeated calls cause no external state mutation.
func (s *Stack) EnsureWorkspace(ctx context.Context) error {
	workspace := s.cfg.Workspace
	if workspace == "" {
		return nil
	}

	set, err := s.ListWorkspaces(ctx)
	if err != nil {
		return err
	}
	if set.Selected == workspace {
		return nil
	}

	subcommand := "new"
	if set.Contains(workspace) {
		subcommand = "select"
	}
	s.log.Infow("switching workspace", "workspace", workspace, "previous", set.Selected)

	_, err = s.tf.Run(ctx, Request{Dir: s.cfg.RootPath, Args: []string{"workspace", subcommand, workspace}})
	return err
}
