package commands

// Spec classifies one allow-listed terraform subcommand. Keeping the three
// memberships as booleans on a single entry means a new subcommand cannot be
// added without deciding all of them.
type Spec struct {
	// AcceptsVariables injects the stack's -var-file args.
	AcceptsVariables bool
	// RequiresInit runs the init orchestrator before the subcommand.
	RequiresInit bool
	// RequiresWorkspace selects the configured workspace before the subcommand.
	RequiresWorkspace bool
}

// Table is the fixed allow-list of terraform subcommands exposed through the
// command surface. Subcommands with all three flags unset (fmt, get, login,
// logout, init, validate) bypass setup entirely and are forwarded directly.
var Table = map[string]Spec{
	"apply":        {AcceptsVariables: true, RequiresInit: true, RequiresWorkspace: true},
	"plan":         {AcceptsVariables: true, RequiresInit: true, RequiresWorkspace: true},
	"destroy":      {AcceptsVariables: true, RequiresInit: true, RequiresWorkspace: true},
	"refresh":      {AcceptsVariables: true, RequiresInit: true, RequiresWorkspace: true},
	"import":       {AcceptsVariables: true, RequiresInit: true, RequiresWorkspace: true},
	"output":       {RequiresInit: true, RequiresWorkspace: true},
	"show":         {RequiresInit: true, RequiresWorkspace: true},
	"graph":        {RequiresInit: true, RequiresWorkspace: true},
	"taint":        {RequiresInit: true, RequiresWorkspace: true},
	"untaint":      {RequiresInit: true, RequiresWorkspace: true},
	"test":         {RequiresInit: true, RequiresWorkspace: true},
	"force-unlock": {RequiresInit: true, RequiresWorkspace: true},
	"state":        {RequiresInit: true, RequiresWorkspace: true},
	"workspace":    {RequiresInit: true},
	"init":         {},
	"validate":     {},
	"fmt":          {},
	"get":          {},
	"login":        {},
	"logout":       {},
}
