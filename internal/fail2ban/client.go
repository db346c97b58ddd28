package fail2ban

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"strings"

	"f2bsentinel/pkg/logging"
)

const clientSubsystem = "Fail2banClient"

// UnbanBatchSize is the number of addresses sent per "set <jail> unbanip" call.
const UnbanBatchSize = 50

// DefaultCommand is the control tool looked up on PATH.
const DefaultCommand = "fail2ban-client"

// Runner executes one fail2ban-client invocation and returns its stdout.
// A failed invocation returns a *ToolError.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ToolError is returned when fail2ban-client could not be started or exited
// non-zero.
type ToolError struct {
	Args    []string
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ExecRunner runs the control tool as a child process.
type ExecRunner struct {
	// Command is the executable, "fail2ban-client" by default.
	Command string
	// Args are prepended to every invocation, e.g. "-s", "/run/fail2ban/fail2ban.sock".
	Args []string
	// Sudo prefixes the invocation with "sudo -n".
	Sudo bool
}

// NewExecRunner returns a runner for the given command.
func NewExecRunner(command string, args []string, sudo bool) *ExecRunner {
	if command == "" {
		command = DefaultCommand
	}
	return &ExecRunner{Command: command, Args: args, Sudo: sudo}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	name, argv := r.argv(args)
	cmd := exec.CommandContext(ctx, name, argv...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()
	stdout := stdoutBuf.String()
	if runErr != nil {
		return stdout, newToolError(args, stdout, stderrBuf.String(), runErr)
	}
	return stdout, nil
}

func (r *ExecRunner) argv(args []string) (string, []string) {
	full := make([]string, 0, len(r.Args)+len(args)+2)
	full = append(full, r.Args...)
	full = append(full, args...)
	if r.Sudo {
		return "sudo", append([]string{"-n", r.Command}, full...)
	}
	return r.Command, full
}

func newToolError(args []string, stdout, stderr string, err error) *ToolError {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = strings.TrimSpace(stdout)
	}
	if msg == "" {
		msg = fmt.Sprintf("fail2ban-client %s failed: %v", strings.Join(args, " "), err)
	}
	return &ToolError{Args: append([]string(nil), args...), Message: msg, Err: err}
}

// Client issues the mutation commands and builds snapshots.
type Client struct {
	runner Runner
}

// NewClient wraps a Runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// Fetch builds a fresh snapshot.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	return NewFetcher(c.runner).Fetch(ctx)
}

// Ban inserts ip into jail. The address must already be validated.
func (c *Client) Ban(ctx context.Context, jail, ip string) error {
	logging.Info(clientSubsystem, "Banning %s in jail %s", ip, jail)
	if _, err := c.runner.Run(ctx, "set", jail, "banip", ip); err != nil {
		return err
	}
	return nil
}

// Unban removes one or more addresses from jail in a single invocation.
func (c *Client) Unban(ctx context.Context, jail string, ips ...string) error {
	if len(ips) == 0 {
		return nil
	}
	logging.Info(clientSubsystem, "Unbanning %d address(es) in jail %s", len(ips), jail)
	args := append([]string{"set", jail, "unbanip"}, ips...)
	if _, err := c.runner.Run(ctx, args...); err != nil {
		return err
	}
	return nil
}

// UnbanBatches removes ips from jail in batches of UnbanBatchSize. It stops
// at the first failing batch and returns the number of addresses removed by
// the batches that completed before it. Completed batches are not rolled back.
func (c *Client) UnbanBatches(ctx context.Context, jail string, ips []string) (int, error) {
	removed := 0
	for start := 0; start < len(ips); start += UnbanBatchSize {
		end := start + UnbanBatchSize
		if end > len(ips) {
			end = len(ips)
		}
		batch := ips[start:end]
		if err := c.Unban(ctx, jail, batch...); err != nil {
			logging.Error(clientSubsystem, err, "Unban batch %d-%d in jail %s failed", start, end, jail)
			return removed, err
		}
		removed += len(batch)
	}
	return removed, nil
}

// ValidateAddress checks that s is an IPv4 or IPv6 literal and returns it
// trimmed.
func ValidateAddress(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", errors.New("enter an IP address")
	}
	if net.ParseIP(trimmed) == nil {
		return "", fmt.Errorf("%q is not a valid IP address", trimmed)
	}
	return trimmed, nil
}

// ErrorMessage returns the diagnostic for err, preferring a *ToolError's message.
func ErrorMessage(err error) string {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Message
	}
	return err.Error()
}
