package parser

// ParsedRedirect is one redirection directive attached to a stage, in the
// order it appeared.
type ParsedRedirect struct {
	Kind   RedirectOperatorKind
	Target string
}

// ParsedPart is one element of a stage in source order: a plain word or a
// redirect. Preserving order matters only in that later redirects to the
// same fd are meant to win; stage construction downstream applies them in
// this order.
type ParsedPart struct {
	Word     string
	Redirect *ParsedRedirect
}

// ParsedStage is one simple command: its words (command name and
// arguments, in order) and its redirects (in order), still interleaved as
// Parts so a caller can apply "last redirect for a given fd wins" simply
// by walking Parts front to back.
type ParsedStage struct {
	Parts []ParsedPart
}

// Words returns this stage's non-redirect tokens in order: the command
// name followed by its arguments.
func (s ParsedStage) Words() []string {
	var words []string
	for _, p := range s.Parts {
		if p.Redirect == nil {
			words = append(words, p.Word)
		}
	}
	return words
}

// Redirects returns this stage's redirect directives in source order.
func (s ParsedStage) Redirects() []ParsedRedirect {
	var rs []ParsedRedirect
	for _, p := range s.Parts {
		if p.Redirect != nil {
			rs = append(rs, *p.Redirect)
		}
	}
	return rs
}

// ParsedPipeline is a sequence of stages joined by `|` or `|&`. PipeAmp has
// len(Stages)-1 entries; PipeAmp[i] reports whether the separator after
// Stages[i] was `|&` (duplicating that stage's stderr into the pipe)
// rather than a plain `|`.
type ParsedPipeline struct {
	Stages  []ParsedStage
	PipeAmp []bool
}
