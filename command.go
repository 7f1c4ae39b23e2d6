package shell

// BuiltinKind enumerates the closed set of built-in command names.
type BuiltinKind int

const (
	Echo BuiltinKind = iota
	Type
	Pwd
	Cd
	Exit
	History
)

var builtinNames = map[string]BuiltinKind{
	"echo":    Echo,
	"type":    Type,
	"pwd":     Pwd,
	"cd":      Cd,
	"exit":    Exit,
	"history": History,
}

func (k BuiltinKind) String() string {
	for name, bk := range builtinNames {
		if bk == k {
			return name
		}
	}
	return "?"
}

// ParseBuiltinKind reports the BuiltinKind for name, if name is one of the
// six built-in names.
func ParseBuiltinKind(name string) (BuiltinKind, bool) {
	k, ok := builtinNames[name]
	return k, ok
}

// CommandLocationKind distinguishes the two CommandLocation variants.
type CommandLocationKind int

const (
	LocationBuiltin CommandLocationKind = iota
	LocationExternal
)

// CommandLocation is the resolved dispatch target for a simple command: a
// built-in, or an external program identified by name (not yet resolved
// against PATH — that happens at spawn time, or on demand for `type`).
type CommandLocation struct {
	Kind     CommandLocationKind
	Builtin  BuiltinKind
	External string
}

func NewCommandLocation(name string) CommandLocation {
	if k, ok := ParseBuiltinKind(name); ok {
		return CommandLocation{Kind: LocationBuiltin, Builtin: k}
	}
	return CommandLocation{Kind: LocationExternal, External: name}
}

func (loc CommandLocation) String() string {
	if loc.Kind == LocationBuiltin {
		return loc.Builtin.String()
	}
	return loc.External
}

// SimpleCommand is one executable invocation: a resolved location, its
// arguments, and its three stream targets.
type SimpleCommand struct {
	Location CommandLocation
	Args     []string
	Stdin    InStream
	Stdout   OutStream
	Stderr   OutStream
}

// Pipeline is a non-empty ordered list of simple commands joined by `|` or
// `|&`, already wired: for adjacent stages (k, k+1), stage k's stdout is the
// write end of a pipe whose read end is stage k+1's stdin.
type Pipeline struct {
	Commands []*SimpleCommand
}

// Close releases every stream target this pipeline owns. Safe to call after
// the pipeline has finished executing, or to unwind on a construction error.
// A `|&` stage shares one handle between Stdout and Stderr, so Stderr is
// skipped when it already points at the same file as Stdout.
func (p *Pipeline) Close() {
	for _, cmd := range p.Commands {
		cmd.Stdin.Close()
		stdoutHandle := cmd.Stdout.handle()
		cmd.Stdout.Close()
		if cmd.Stderr.handle() != stdoutHandle {
			cmd.Stderr.Close()
		}
	}
}
