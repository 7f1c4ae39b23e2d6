package shell

import (
	"io"
	"os"
)

// StreamKind distinguishes the three ways a child's stream can be wired.
type StreamKind int

const (
	Inherit StreamKind = iota
	FileStream
	PipeStream
)

// InStream is where a simple command reads its stdin from.
type InStream struct {
	Kind   StreamKind
	File   *os.File
	Reader *os.File // read end of an anonymous pipe
}

// OutStream is where a simple command writes its stdout/stderr to. For
// Kind == Inherit, inheritFD records which of the shell's own fds this
// resolves to (1 for stdout, 2 for stderr) — without it, an inherited
// stderr and an inherited stdout are indistinguishable.
type OutStream struct {
	Kind      StreamKind
	File      *os.File
	Writer    *os.File // write end of an anonymous pipe
	inheritFD int
}

func InheritIn() InStream { return InStream{Kind: Inherit} }

// InheritStdout returns a stream that resolves to the shell's own stdout.
func InheritStdout() OutStream { return OutStream{Kind: Inherit, inheritFD: 1} }

// InheritStderr returns a stream that resolves to the shell's own stderr.
func InheritStderr() OutStream { return OutStream{Kind: Inherit, inheritFD: 2} }

// InheritOut is an alias for InheritStdout, kept for callers that don't
// care which fd they inherit (e.g. a command's stdin side has no such
// ambiguity to begin with).
func InheritOut() OutStream { return InheritStdout() }

func FileIn(f *os.File) InStream   { return InStream{Kind: FileStream, File: f} }
func FileOut(f *os.File) OutStream { return OutStream{Kind: FileStream, File: f} }

func PipeIn(r *os.File) InStream   { return InStream{Kind: PipeStream, Reader: r} }
func PipeOut(w *os.File) OutStream { return OutStream{Kind: PipeStream, Writer: w} }

// handle returns the *os.File this stream resolves to, for use as a child
// process's stdio handle or as the target of a builtin's direct write/read.
func (in InStream) handle() *os.File {
	switch in.Kind {
	case FileStream:
		return in.File
	case PipeStream:
		return in.Reader
	default:
		return os.Stdin
	}
}

func (out OutStream) handle() *os.File {
	switch out.Kind {
	case FileStream:
		return out.File
	case PipeStream:
		return out.Writer
	default:
		if out.inheritFD == 2 {
			return os.Stderr
		}
		return os.Stdout
	}
}

// AsReader exposes this InStream for a builtin's direct read (only Inherit
// and File targets are ever read directly by a builtin; builtins in this
// shell don't read stdin, but the conversion is provided for completeness
// and external-process wiring).
func (in InStream) AsReader() io.Reader { return in.handle() }

// AsWriter exposes this OutStream as an io.Writer so builtins can write to
// it uniformly, whether it's the shell's own stdout, a redirected file, or a
// pipe's write end.
func (out OutStream) AsWriter() io.Writer { return out.handle() }

// Close releases any owned OS resource (file or pipe end). Inherited
// streams are never closed here since the shell does not own stdin/stdout.
func (in InStream) Close() error {
	if in.Kind != Inherit {
		return in.handle().Close()
	}
	return nil
}

func (out OutStream) Close() error {
	if out.Kind != Inherit {
		return out.handle().Close()
	}
	return nil
}
