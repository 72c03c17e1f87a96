package devreload

import (
	"context"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/teranos/graphsync/logger"
)

// Supervisor runs command as a child process and restarts it whenever
// either the watched source tree changes (SIGTERM + re-exec) or the
// child itself exits with ExitCodeReload — the same "exit 3 means
// restart me" contract reloader.py's restart_with_reloader loop used,
// just driven by fsnotify events instead of an mtime-polling coroutine.
type Supervisor struct {
	command    []string
	watchPaths []string
	debounce   time.Duration
}

// NewSupervisor builds a Supervisor that re-execs command (argv0 plus
// args) on a change under any of watchPaths.
func NewSupervisor(command []string, watchPaths []string, debounce time.Duration) *Supervisor {
	return &Supervisor{command: command, watchPaths: watchPaths, debounce: debounce}
}

// Run loops spawning the child until it exits with a code other than
// ExitCodeReload, or ctx is cancelled. It returns the child's final exit
// code (0 on a clean ctx cancellation).
func (s *Supervisor) Run(ctx context.Context) int {
	for {
		code, restart := s.runOnce(ctx)
		if !restart {
			return code
		}
		logger.Infow("devreload restarting child", "command", s.command)
	}
}

func (s *Supervisor) runOnce(ctx context.Context) (code int, restart bool) {
	childCtx, cancelChild := context.WithCancel(ctx)
	defer cancelChild()

	cmd := exec.CommandContext(childCtx, s.command[0], s.command[1:]...)
	cmd.Stdout, cmd.Stderr, cmd.Env = os.Stdout, os.Stderr, os.Environ()
	if err := cmd.Start(); err != nil {
		logger.Errorw("devreload failed to start child", "error", err)
		return 1, false
	}

	w, err := New(s.watchPaths, s.debounce)
	if err != nil {
		logger.Errorw("devreload failed to watch source tree", "error", err)
		w = nil
	}

	restartSignal := make(chan struct{}, 1)
	if w != nil {
		go w.Run(func(int) {
			select {
			case restartSignal <- struct{}{}:
			default:
			}
		})
		defer w.Close()
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		cmd.Process.Signal(syscall.SIGTERM)
		<-exited
		return 0, false
	case <-restartSignal:
		cmd.Process.Signal(syscall.SIGTERM)
		<-exited
		return 0, true
	case err := <-exited:
		exitCode := exitCodeOf(err)
		return exitCode, exitCode == ExitCodeReload
	}
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return 1
}
