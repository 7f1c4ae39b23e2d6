package shell

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// BuiltinContext is the environment one built-in invocation runs with: its
// arguments, its three stream targets, and the process-wide collaborators
// it may need (cd and history both mutate shared state).
type BuiltinContext struct {
	Args    []string
	Stdin   InStream
	Stdout  OutStream
	Stderr  OutStream
	State   *GlobalState
	History *HistoryManager
}

// RunBuiltin dispatches to the implementation for kind and returns its
// exit status.
func RunBuiltin(kind BuiltinKind, ctx *BuiltinContext) int {
	switch kind {
	case Echo:
		return runEcho(ctx)
	case Type:
		return runType(ctx)
	case Pwd:
		return runPwd(ctx)
	case Cd:
		return runCd(ctx)
	case Exit:
		return runExit(ctx)
	case History:
		return runHistory(ctx)
	default:
		return 1
	}
}

func runEcho(ctx *BuiltinContext) int {
	fmt.Fprintln(ctx.Stdout.AsWriter(), strings.Join(ctx.Args, " "))
	return 0
}

func runType(ctx *BuiltinContext) int {
	w := bufio.NewWriter(ctx.Stdout.AsWriter())
	defer w.Flush()
	for _, name := range ctx.Args {
		if _, ok := ParseBuiltinKind(name); ok {
			fmt.Fprintf(w, "%s is a shell builtin\n", name)
			continue
		}
		if path, ok := ResolveExecutable(name); ok {
			fmt.Fprintf(w, "%s is %s\n", name, path)
			continue
		}
		fmt.Fprintf(w, "%s: not found\n", name)
	}
	return 0
}

func runPwd(ctx *BuiltinContext) int {
	fmt.Fprintln(ctx.Stdout.AsWriter(), ctx.State.GetCWD())
	return 0
}

func runCd(ctx *BuiltinContext) int {
	target := ""
	if len(ctx.Args) > 0 {
		target = ctx.Args[0]
	}
	target = expandTilde(target)

	if target == "" {
		return 0
	}

	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(ctx.Stderr.AsWriter(), "cd: %s: No such file or directory\n", target)
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = target
	}
	ctx.State.UpdateCWD(cwd)
	return 0
}

func runExit(ctx *BuiltinContext) int {
	os.Exit(0)
	return 0 // unreachable
}

func runHistory(ctx *BuiltinContext) int {
	stdout := bufio.NewWriter(ctx.Stdout.AsWriter())
	stderr := bufio.NewWriter(ctx.Stderr.AsWriter())
	return RunHistoryBuiltin(ctx.History, ctx.Args, stdout, stderr)
}
