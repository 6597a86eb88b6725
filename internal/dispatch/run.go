package dispatch

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/go-recli/recli/internal/rerr"
)

// Result is the outcome of running a dispatched command to completion.
type Result struct {
	ExitCode int
}

// Run forks execPath with args and envp, streams its stdout/stderr to out
// and errOut as they arrive, and forwards SIGINT/SIGQUIT delivered to the
// recli process on to the child for the duration of the call — the same
// "let the foreground job see the signal too" behavior an interactive
// shell gives a child it's waiting on. SIGPIPE is ignored process-wide from
// the first call on (the ignore is never undone), so a closed pipe produces
// an EPIPE write error instead of killing the session.
//
// Go's os/exec pipes and io.Copy already retry on interrupted syscalls
// under the runtime poller, so there is no hand-rolled EINTR-retry loop
// here the way a raw read()/write() dispatch loop would need.
func Run(ctx context.Context, execPath string, args, envp []string, stdin io.Reader, out, errOut io.Writer) (*Result, error) {
	cmd := exec.CommandContext(ctx, execPath, args...)
	cmd.Env = envp
	cmd.Stdin = stdin

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &rerr.DispatchError{Stage: rerr.StagePipe, Err: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &rerr.DispatchError{Stage: rerr.StagePipe, Err: err}
	}

	signal.Ignore(unix.SIGPIPE)

	if err := cmd.Start(); err != nil {
		return nil, &rerr.DispatchError{Stage: rerr.StageFork, Err: err}
	}

	sigCh := make(chan os.Signal, 4)
	signal.Notify(sigCh, unix.SIGINT, unix.SIGQUIT)
	done := make(chan struct{})
	go forwardSignals(sigCh, done, cmd)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _, _ = io.Copy(out, stdoutPipe) }()
	go func() { defer wg.Done(); _, _ = io.Copy(errOut, stderrPipe) }()
	wg.Wait()

	waitErr := cmd.Wait()
	close(done)
	signal.Stop(sigCh)

	if waitErr == nil {
		return &Result{ExitCode: 0}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return &Result{ExitCode: exitErr.ExitCode()}, nil
	}
	return nil, &rerr.DispatchError{Stage: rerr.StageWait, Err: waitErr}
}

func forwardSignals(sigCh <-chan os.Signal, done <-chan struct{}, cmd *exec.Cmd) {
	for {
		select {
		case sig := <-sigCh:
			if cmd.Process != nil {
				_ = cmd.Process.Signal(sig)
			}
		case <-done:
			return
		}
	}
}
