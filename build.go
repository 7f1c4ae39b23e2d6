package shell

import (
	"fmt"
	"os"

	"goshell/parser"
)

// BuildPipelines converts the parser's pipeline descriptions into
// executable Pipelines: it resolves each stage's command location, opens
// every redirect target, and allocates the anonymous pipes that join
// adjacent stages. On error, any stream already opened for this line is
// closed before returning.
func BuildPipelines(parsed []parser.ParsedPipeline) ([]*Pipeline, error) {
	var built []*Pipeline
	for _, pp := range parsed {
		p, err := buildPipeline(pp)
		if err != nil {
			for _, done := range built {
				done.Close()
			}
			return nil, err
		}
		built = append(built, p)
	}
	return built, nil
}

func buildPipeline(pp parser.ParsedPipeline) (pipeline *Pipeline, err error) {
	commands := make([]*SimpleCommand, len(pp.Stages))
	for i, stage := range pp.Stages {
		words := stage.Words()
		if len(words) == 0 {
			return nil, newParseError("command has no name")
		}
		commands[i] = &SimpleCommand{
			Location: NewCommandLocation(words[0]),
			Args:     words[1:],
			Stdin:    InheritIn(),
			Stdout:   InheritStdout(),
			Stderr:   InheritStderr(),
		}
	}

	result := &Pipeline{Commands: commands}
	defer func() {
		if err != nil {
			result.Close()
		}
	}()

	// Wire pipes between adjacent stages before applying explicit
	// redirects, so a stage's own `>`/`2>`/`<` overrides the implicit pipe
	// connection on that fd — matching real shell behavior for e.g.
	// `producer > out.txt | consumer`, where producer writes to the file
	// and consumer reads an empty pipe.
	for i := 0; i < len(commands)-1; i++ {
		r, w, perr := os.Pipe()
		if perr != nil {
			return nil, fmt.Errorf("allocating pipe: %w", perr)
		}
		commands[i].Stdout = PipeOut(w)
		if i < len(pp.PipeAmp) && pp.PipeAmp[i] {
			commands[i].Stderr = PipeOut(w)
		}
		commands[i+1].Stdin = PipeIn(r)
	}

	for i, stage := range pp.Stages {
		for _, rd := range stage.Redirects() {
			if rerr := applyRedirect(commands[i], rd); rerr != nil {
				return nil, rerr
			}
		}
	}

	return result, nil
}

func applyRedirect(cmd *SimpleCommand, rd parser.ParsedRedirect) error {
	target := expandTilde(rd.Target)

	if rd.Kind == parser.RStdin {
		f, err := os.Open(target)
		if err != nil {
			return fmt.Errorf("%s: %w", rd.Target, err)
		}
		cmd.Stdin.Close()
		cmd.Stdin = FileIn(f)
		return nil
	}

	flags := os.O_WRONLY | os.O_CREATE
	if rd.Kind.Appends() {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(target, flags, 0o644)
	if err != nil {
		return fmt.Errorf("%s: %w", rd.Target, err)
	}

	switch rd.Kind.FD() {
	case 1:
		cmd.Stdout.Close()
		cmd.Stdout = FileOut(f)
	case 2:
		cmd.Stderr.Close()
		cmd.Stderr = FileOut(f)
	}
	return nil
}
