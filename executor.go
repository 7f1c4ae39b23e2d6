package shell

import (
	"errors"
	"fmt"
	"os/exec"
)

// waiter abstracts over an external process, an in-process builtin, and a
// stage that failed to spawn at all, so the executor can start every stage
// first and wait on all of them afterward without caring which kind each
// one is.
type waiter interface {
	wait() int
}

type externalWaiter struct {
	cmd *exec.Cmd
}

func (w *externalWaiter) wait() int {
	return exitStatusOf(w.cmd.Wait())
}

type builtinWaiter struct {
	done chan int
}

func (w *builtinWaiter) wait() int { return <-w.done }

type constantWaiter int

func (w constantWaiter) wait() int { return int(w) }

func exitStatusOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// Execute runs one Pipeline to completion: every stage is spawned before
// any is waited on, so a writer stage and a reader stage run concurrently
// and neither blocks on a full pipe buffer. It returns the exit status of
// the pipeline's last stage and closes every stream the pipeline owns
// before returning.
func Execute(pipeline *Pipeline, state *GlobalState, hist *HistoryManager) int {
	defer pipeline.Close()

	waiters := make([]waiter, len(pipeline.Commands))
	for i, cmd := range pipeline.Commands {
		if cmd.Location.Kind == LocationBuiltin {
			waiters[i] = spawnBuiltin(cmd, state, hist)
			continue
		}
		w, err := spawnExternal(cmd)
		if err != nil {
			fmt.Fprintf(cmd.Stderr.AsWriter(), "%s: command not found\n", cmd.Location.External)
			closeStage(cmd)
			waiters[i] = constantWaiter(127)
			continue
		}
		waiters[i] = w
	}

	var status int
	for _, w := range waiters {
		status = w.wait()
	}
	return status
}

func spawnBuiltin(cmd *SimpleCommand, state *GlobalState, hist *HistoryManager) waiter {
	done := make(chan int, 1)
	go func() {
		ctx := &BuiltinContext{
			Args:    cmd.Args,
			Stdin:   cmd.Stdin,
			Stdout:  cmd.Stdout,
			Stderr:  cmd.Stderr,
			State:   state,
			History: hist,
		}
		status := RunBuiltin(cmd.Location.Builtin, ctx)
		// Built-ins don't fork, so they hold the only copy of any pipe end
		// they were given; a stage downstream waiting on EOF would block
		// forever if this closed only at the very end of the pipeline.
		closeStage(cmd)
		done <- status
	}()
	return &builtinWaiter{done: done}
}

func spawnExternal(cmd *SimpleCommand) (waiter, error) {
	path, ok := ResolveExecutable(cmd.Location.External)
	if !ok {
		return nil, &ExecutableNotFoundError{Name: cmd.Location.External}
	}

	c := exec.Command(path, cmd.Args...)
	c.Stdin = cmd.Stdin.handle()
	c.Stdout = cmd.Stdout.handle()
	c.Stderr = cmd.Stderr.handle()

	if err := c.Start(); err != nil {
		return nil, err
	}

	// The child process dup'd whatever pipe ends it needs; drop the
	// parent's copies now so the other side of each pipe sees EOF once
	// every writer has exited, rather than waiting on a fd the parent
	// still holds open.
	closeStage(cmd)

	return &externalWaiter{cmd: c}, nil
}

// closeStage releases a stage's stream targets. Stderr is skipped when it
// shares a handle with Stdout, which happens for a `|&` stage — otherwise
// the second Close would just return an ignorable "already closed" error,
// but skipping it keeps intent explicit.
func closeStage(cmd *SimpleCommand) {
	cmd.Stdin.Close()
	stdoutHandle := cmd.Stdout.handle()
	cmd.Stdout.Close()
	if cmd.Stderr.handle() != stdoutHandle {
		cmd.Stderr.Close()
	}
}
