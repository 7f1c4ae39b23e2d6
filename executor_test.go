package shell

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExecuteBuiltinWritesToRedirectedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	f, err := os.Create(target)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}

	pipeline := &Pipeline{Commands: []*SimpleCommand{
		{
			Location: NewCommandLocation("echo"),
			Args:     []string{"hello", "world"},
			Stdin:    InheritIn(),
			Stdout:   FileOut(f),
			Stderr:   InheritOut(),
		},
	}}

	state := GetGlobalState()
	hist := NewHistoryManager()
	status := Execute(pipeline, state, hist)
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "hello world\n" {
		t.Fatalf("file contents = %q, want %q", string(data), "hello world\n")
	}
}

func TestExecuteCdFailureReturnsStatusTwo(t *testing.T) {
	pipeline := &Pipeline{Commands: []*SimpleCommand{
		{
			Location: NewCommandLocation("cd"),
			Args:     []string{"/no/such/directory/for/testing"},
			Stdin:    InheritIn(),
			Stdout:   InheritOut(),
			Stderr:   InheritOut(),
		},
	}}

	status := Execute(pipeline, GetGlobalState(), NewHistoryManager())
	if status != 2 {
		t.Fatalf("status = %d, want 2", status)
	}
}

func TestExecuteExternalNotFoundReturns127(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "err.txt")
	f, err := os.Create(target)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}

	original := os.Getenv("PATH")
	t.Cleanup(func() { os.Setenv("PATH", original) })
	os.Setenv("PATH", t.TempDir()) // empty directory: nothing resolves

	pipeline := &Pipeline{Commands: []*SimpleCommand{
		{
			Location: NewCommandLocation("definitely-not-a-real-command"),
			Stdin:    InheritIn(),
			Stdout:   InheritOut(),
			Stderr:   FileOut(f),
		},
	}}

	status := Execute(pipeline, GetGlobalState(), NewHistoryManager())
	if status != 127 {
		t.Fatalf("status = %d, want 127", status)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "definitely-not-a-real-command: command not found\n"
	if string(data) != want {
		t.Fatalf("stderr file contents = %q, want %q", string(data), want)
	}
}

func TestExecuteBuiltinPipelineReturnsLastStageStatus(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	f, err := os.Create(target)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}

	pipeline := &Pipeline{Commands: []*SimpleCommand{
		{
			Location: NewCommandLocation("echo"),
			Args:     []string{"ignored"},
			Stdin:    InheritIn(),
			Stdout:   PipeOut(w),
			Stderr:   InheritOut(),
		},
		{
			Location: NewCommandLocation("pwd"),
			Stdin:    PipeIn(r),
			Stdout:   FileOut(f),
			Stderr:   InheritOut(),
		},
	}}

	status := Execute(pipeline, GetGlobalState(), NewHistoryManager())
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("pwd builtin wrote nothing to redirected stdout")
	}
}
