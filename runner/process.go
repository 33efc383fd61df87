package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"syscall"
	"time"

	"github.com/kbukum/taskgraph/errors"
	"github.com/kbukum/taskgraph/logger"
)

// ProcessConfig configures a ProcessRunner.
type ProcessConfig struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string `yaml:"binary" mapstructure:"binary" validate:"required"`
	// BaseArgs are arguments placed before the operation id.
	BaseArgs []string `yaml:"base_args,omitempty" mapstructure:"base_args"`
	// Dir is the working directory. If empty, uses the current directory.
	Dir string `yaml:"dir,omitempty" mapstructure:"dir"`
	// Env is additional environment variables (key=value). Merged with os.Environ.
	Env []string `yaml:"env,omitempty" mapstructure:"env"`
	// Timeout is the per-operation deadline. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	// Defaults to 5 seconds if zero.
	GracePeriod time.Duration `yaml:"grace_period,omitempty" mapstructure:"grace_period"`
}

// ProcessRunner executes operations as subprocesses. The command line is
// "binary [baseArgs...] opID --key value ..." with parameters in sorted key
// order, so a given invocation is reproducible.
type ProcessRunner struct {
	cfg ProcessConfig
	log *logger.Logger
}

// NewProcessRunner creates a ProcessRunner.
func NewProcessRunner(cfg ProcessConfig) *ProcessRunner {
	return &ProcessRunner{cfg: cfg, log: logger.Get("runner")}
}

// Execute implements Runner. Stdout is the operation's output; a non-zero
// exit wraps stderr into an OPERATION_FAILED error, and a deadline hit maps
// to TIMEOUT.
func (p *ProcessRunner) Execute(ctx context.Context, opID string, params map[string]any) (string, error) {
	if p.cfg.Binary == "" {
		return "", errors.MissingField("binary")
	}
	if opID == "" {
		return "", errors.MissingField("operation")
	}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	args := append(append([]string(nil), p.cfg.BaseArgs...), opID)
	args = append(args, paramArgs(params)...)

	gracePeriod := p.cfg.GracePeriod
	if gracePeriod == 0 {
		gracePeriod = 5 * time.Second
	}

	c := exec.CommandContext(ctx, p.cfg.Binary, args...) //nolint:gosec // dynamic args are the purpose of this runner
	c.Dir = p.cfg.Dir
	c.Env = mergeEnv(p.cfg.Env)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	// Use process group so we can kill the entire tree
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	// Don't let exec.CommandContext kill with SIGKILL immediately
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = gracePeriod

	start := time.Now()
	err := c.Run()
	duration := time.Since(start)

	p.log.Debug("operation finished", map[string]interface{}{
		"operation":          opID,
		logger.FieldDuration: duration.Milliseconds(),
		"exit_code":          exitCode(c),
	})

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.Timeout(opID).WithCause(ctx.Err())
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", errors.OperationFailed(opID, err).
			WithDetail("exit_code", exitCode(c)).
			WithDetail("stderr", stderr.String())
	}

	return stdout.String(), nil
}

// exitCode is -1 when the process never started.
func exitCode(c *exec.Cmd) int {
	if c.ProcessState == nil {
		return -1
	}
	return c.ProcessState.ExitCode()
}

// paramArgs renders a parameter map as "--key value" pairs in sorted key
// order. Nil values become bare flags.
func paramArgs(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, "--"+k)
		if v := params[k]; v != nil {
			args = append(args, fmt.Sprintf("%v", v))
		}
	}
	return args
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}
