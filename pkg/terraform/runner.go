package terraform

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/terralift/terralift/internal/models"
	srvErrors "github.com/terralift/terralift/pkg/errors"
)

const (
	// DefaultTimeout bounds short probes (validate, plan, workspace ops).
	DefaultTimeout = 1 * time.Hour
	// LongRunTimeout bounds apply/destroy/init. Effectively unbounded for
	// operator-approved operations, but a runaway subprocess still fails
	// eventually instead of hanging the host forever.
	LongRunTimeout = 6 * time.Hour
)

// CLIRunner executes a terraform binary with os/exec.
type CLIRunner struct {
	bin string
	log *zap.SugaredLogger
}

func NewRunner(bin string) *CLIRunner {
	return &CLIRunner{
		bin: bin,
		log: zap.S().Named("terraform_exec"),
	}
}

func (r *CLIRunner) Run(ctx context.Context, req Request) (*models.ProcessResult, error) {
	ctx, cancel := r.withTimeout(ctx, req)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.bin, req.Args...)
	cmd.Dir = req.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debugw("running terraform", "args", req.Args, "dir", req.Dir)
	err := cmd.Run()

	return r.finish(req, err, stdout.String(), stderr.String())
}

func (r *CLIRunner) Stream(ctx context.Context, req Request, sink LineSink) (*models.ProcessResult, error) {
	ctx, cancel := r.withTimeout(ctx, req)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.bin, req.Args...)
	cmd.Dir = req.Dir

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}

	r.log.Debugw("streaming terraform", "args", req.Args, "dir", req.Dir)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	// Two sinks per stream: every line is forwarded live, and the full text
	// is buffered so a failure carries an actionable message.
	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumeLines(stdoutPipe, &stdout, sink)
	}()
	go func() {
		defer wg.Done()
		consumeLines(stderrPipe, &stderr, sink)
	}()
	wg.Wait()

	waitErr := cmd.Wait()
	return r.finish(req, waitErr, stdout.String(), stderr.String())
}

func consumeLines(src io.Reader, buf *bytes.Buffer, sink LineSink) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteByte('\n')
		if sink != nil {
			sink(line)
		}
	}
}

func (r *CLIRunner) finish(req Request, err error, stdout, stderr string) (*models.ProcessResult, error) {
	result := &models.ProcessResult{
		Stdout: stdout,
		Stderr: stderr,
	}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if req.AllowFailure {
			return result, nil
		}
		return result, srvErrors.NewExecError(r.command(req), result.ExitCode, stderr)
	}
	// Did not run at all (binary missing, context expired before start).
	return nil, err
}

func (r *CLIRunner) command(req Request) string {
	return strings.TrimSpace(r.bin + " " + strings.Join(req.Args, " "))
}

func (r *CLIRunner) withTimeout(ctx context.Context, req Request) (context.Context, context.CancelFunc) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
