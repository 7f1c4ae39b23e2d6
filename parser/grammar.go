package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The character-level lexing (quoting, escapes, operator recognition) is
// already done by Lex before participle ever runs; participle is only
// asked to recognize shape — the order of words and redirect/target pairs
// within a single pipeline stage. tokenLexerDef bridges the two: it reads
// a stage encoded by encodeStageTokens and replays it as a token stream,
// rather than re-lexing raw characters participle would have to guess at.
const tokenSep = "\x1f"

func encodeStageTokens(tokens []Token) (string, error) {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		switch {
		case t.Kind == WordToken:
			parts = append(parts, "W:"+t.Word.Text)
		case t.IsRedirectOperator():
			parts = append(parts, "R:"+t.Operator.Redirect.String())
		default:
			return "", fmt.Errorf("unexpected token %s in simple command", t.String())
		}
	}
	return strings.Join(parts, tokenSep), nil
}

const (
	wordSymbol     lexer.TokenType = -2
	redirectSymbol lexer.TokenType = -3
)

type tokenLexerDef struct{}

func (tokenLexerDef) Symbols() map[string]lexer.TokenType {
	return map[string]lexer.TokenType{
		"EOF":      lexer.EOF,
		"Word":     wordSymbol,
		"Redirect": redirectSymbol,
	}
}

func (tokenLexerDef) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var parts []string
	if len(data) > 0 {
		parts = strings.Split(string(data), tokenSep)
	}
	return &replayLexer{parts: parts}, nil
}

// replayLexer is a participle lexer.Lexer that replays a pre-split token
// stream instead of scanning characters.
type replayLexer struct {
	parts []string
	pos   int
}

func (l *replayLexer) Next() (lexer.Token, error) {
	if l.pos >= len(l.parts) {
		return lexer.Token{Type: lexer.EOF}, nil
	}
	part := l.parts[l.pos]
	l.pos++
	if len(part) < 2 {
		return lexer.Token{}, fmt.Errorf("malformed internal token %q", part)
	}
	tag, value := part[:2], part[2:]
	switch tag {
	case "W:":
		return lexer.Token{Type: wordSymbol, Value: value}, nil
	case "R:":
		return lexer.Token{Type: redirectSymbol, Value: value}, nil
	default:
		return lexer.Token{}, fmt.Errorf("malformed internal token %q", part)
	}
}

// grammarRedirect is one `REDIRECT WORD` pair: a redirect operator and the
// word immediately following it, its target.
type grammarRedirect struct {
	Kind   string `@Redirect`
	Target string `@Word`
}

// grammarPart is one element of a stage: either a redirect or a bare word.
type grammarPart struct {
	Redirect *grammarRedirect `@@`
	Word     *string          `| @Word`
}

// grammarStage is a non-empty sequence of parts, interleaved in any order
// — a stage may open with a redirect before its command name, the way
// `> out.txt echo hi` is legal in the shell this core is a subset of.
type grammarStage struct {
	Parts []*grammarPart `@@+`
}

var stageParser = participle.MustBuild[grammarStage](
	participle.Lexer(tokenLexerDef{}),
)

// parseStageTokens runs the participle grammar over one stage's tokens
// (words and redirects only — the caller has already stripped pipe and
// command-delimiter operators) and converts the result to a ParsedStage.
func parseStageTokens(tokens []Token) (ParsedStage, error) {
	encoded, err := encodeStageTokens(tokens)
	if err != nil {
		return ParsedStage{}, newParseError("%v", err)
	}
	g, err := stageParser.ParseString("", encoded)
	if err != nil {
		return ParsedStage{}, newParseError("%v", err)
	}

	var parts []ParsedPart
	for _, p := range g.Parts {
		switch {
		case p.Redirect != nil:
			kind, ok := parseRedirectKindFromText(p.Redirect.Kind)
			if !ok {
				return ParsedStage{}, newParseError("unknown redirect operator %q", p.Redirect.Kind)
			}
			parts = append(parts, ParsedPart{Redirect: &ParsedRedirect{Kind: kind, Target: p.Redirect.Target}})
		case p.Word != nil:
			parts = append(parts, ParsedPart{Word: *p.Word})
		}
	}
	return ParsedStage{Parts: parts}, nil
}

func parseRedirectKindFromText(s string) (RedirectOperatorKind, bool) {
	for _, o := range redirectOperatorsByLength {
		if o.text == s {
			return o.kind, true
		}
	}
	return 0, false
}
