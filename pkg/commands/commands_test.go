package commands_test

import (
	"context"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/terralift/terralift/internal/models"
	"github.com/terralift/terralift/pkg/commands"
	srvErrors "github.com/terralift/terralift/pkg/errors"
	"github.com/terralift/terralift/pkg/terraform"
)

// classification is the documented membership table; the test guards against
// adding a subcommand without classifying it (or silently reclassifying one).
var classification = map[string]commands.Spec{
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

var _ = Describe("Table", func() {
	// Given the documented classification of every allow-listed subcommand
	// When we compare it against the live table
	// Then both directions match exactly
	It("should match the documented classification exactly", func() {
		Expect(commands.Table).To(HaveLen(len(classification)))
		for name, spec := range classification {
			Expect(commands.Table).To(HaveKey(name), "missing subcommand %q", name)
			Expect(commands.Table[name]).To(Equal(spec), "classification mismatch for %q", name)
		}
	})
})

var _ = Describe("Dispatcher", func() {
	var (
		ctx         context.Context
		fake        *fakeExecutor
		invalidator *fakeInvalidator
		dispatcher  *commands.Dispatcher
		cfg         models.StackConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = newFakeExecutor()
		invalidator = &fakeInvalidator{}
		cfg = models.StackConfig{
			Name:      "vpc",
			RootPath:  GinkgoT().TempDir(),
			Workspace: "",
			Variables: map[string]any{"env": "dev"},
		}

		dispatcher = commands.NewDispatcher(
			fakeResolver{cfg: cfg},
			invalidator,
			func(ctx context.Context, cfg models.StackConfig) (terraform.Executor, error) {
				return fake, nil
			},
			nil,
		)
	})

	// Given a subcommand outside the allow-list
	// When it is dispatched
	// Then a ParameterError is returned and nothing runs
	It("should reject an unsupported command", func() {
		err := dispatcher.RunRoot(ctx, "console", nil)
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsParameterError(err)).To(BeTrue())
		Expect(fake.calls).To(BeEmpty())
	})

	// Given the root invocation form
	// When any command is dispatched
	// Then the cached status is invalidated first
	It("should invalidate the cached status on the root form", func() {
		Expect(dispatcher.RunRoot(ctx, "fmt", nil)).To(Succeed())
		Expect(invalidator.invalidated).To(Equal([]string{"vpc"}))
	})

	// Given a setup-free subcommand
	// When it is dispatched
	// Then no init or validate runs before it
	It("should bypass setup for fmt", func() {
		Expect(dispatcher.RunRoot(ctx, "fmt", []string{"-check"})).To(Succeed())

		Expect(fake.callsFor("init")).To(BeEmpty())
		Expect(fake.callsFor("validate")).To(BeEmpty())
		fmtCalls := fake.callsFor("fmt")
		Expect(fmtCalls).To(HaveLen(1))
		Expect(fmtCalls[0].Args).To(Equal([]string{"fmt", "-check"}))
	})

	// Given a variable-accepting subcommand
	// When it is dispatched
	// Then var-file args are appended
	It("should inject variables for plan", func() {
		fake.on("validate", &models.ProcessResult{Stdout: `{"valid": true}`}, nil)

		Expect(dispatcher.RunRoot(ctx, "plan", nil)).To(Succeed())

		planCalls := fake.callsFor("plan")
		Expect(planCalls).To(HaveLen(1))
		Expect(planCalls[0].Args).To(ContainElement("-var-file"))
	})

	// Given a subcommand that requires init
	// When it is dispatched against an already-valid root
	// Then the init orchestrator's validate shortcut runs first
	It("should run the init orchestrator for plan", func() {
		fake.on("validate", &models.ProcessResult{Stdout: `{"valid": true}`}, nil)

		Expect(dispatcher.RunRoot(ctx, "plan", nil)).To(Succeed())
		Expect(fake.callsFor("validate")).To(HaveLen(1))
	})

	// Given the action form without an action name
	// When it is dispatched
	// Then a ParameterError is returned
	It("should require an action name in the action form", func() {
		err := dispatcher.RunAction(ctx, "", "plan", nil)
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsParameterError(err)).To(BeTrue())
	})

	// Given a passthrough exiting nonzero
	// When it is dispatched
	// Then the exec failure carries the exit code and stderr
	It("should surface nonzero passthrough exits", func() {
		fake.on("fmt", &models.ProcessResult{ExitCode: 3, Stderr: "not formatted"}, nil)

		err := dispatcher.RunRoot(ctx, "fmt", []string{"-check"})
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsExecError(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("not formatted"))
	})
})

type fakeResolver struct {
	cfg models.StackConfig
}

func (f fakeResolver) Root() (models.StackConfig, error) {
	return f.cfg, nil
}

func (f fakeResolver) Action(name string) (models.StackConfig, error) {
	if name != f.cfg.Name {
		return models.StackConfig{}, srvErrors.NewParameterError("no stack named %q is configured", name)
	}
	return f.cfg, nil
}

type fakeInvalidator struct {
	invalidated []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, stackName, workspace string) error {
	f.invalidated = append(f.invalidated, stackName)
	return nil
}

// fakeExecutor mirrors the scripted executor used by the terraform package
// tests.
type fakeExecutor struct {
	mu     sync.Mutex
	calls  []terraform.Request
	queues map[string][]fakeResponse
}

type fakeResponse struct {
	result *models.ProcessResult
	err    error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{queues: map[string][]fakeResponse{}}
}

func (f *fakeExecutor) on(command string, result *models.ProcessResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues[command] = append(f.queues[command], fakeResponse{result: result, err: err})
}

func (f *fakeExecutor) Run(ctx context.Context, req terraform.Request) (*models.ProcessResult, error) {
	resp := f.record(req)
	return resp.result, resp.err
}

func (f *fakeExecutor) Stream(ctx context.Context, req terraform.Request, sink terraform.LineSink) (*models.ProcessResult, error) {
	resp := f.record(req)
	if sink != nil && resp.result != nil {
		for _, line := range strings.Split(resp.result.Stdout, "\n") {
			if line != "" {
				sink(line)
			}
		}
	}
	return resp.result, resp.err
}

func (f *fakeExecutor) record(req terraform.Request) fakeResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)

	queue := f.queues[req.Args[0]]
	if len(queue) == 0 {
		return fakeResponse{result: &models.ProcessResult{}}
	}
	resp := queue[0]
	f.queues[req.Args[0]] = queue[1:]
	return resp
}

func (f *fakeExecutor) callsFor(command string) []terraform.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []terraform.Request
	for _, call := range f.calls {
		if len(call.Args) > 0 && call.Args[0] == command {
			matched = append(matched, call)
		}
	}
	return matched
}
