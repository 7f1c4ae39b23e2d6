package parser

import (
	"reflect"
	"testing"
)

func words(ss ...string) []Token {
	tokens := make([]Token, len(ss))
	for i, s := range ss {
		tokens[i] = NewWordToken(s)
	}
	return tokens
}

func TestLexSimpleWords(t *testing.T) {
	got := Lex("echo hello world")
	want := words("echo", "hello", "world")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexOperators(t *testing.T) {
	cases := []struct {
		line string
		want []Token
	}{
		{"a|b", []Token{NewWordToken("a"), NewOperatorToken(Operator{Kind: ControlKind, Control: Pipe}), NewWordToken("b")}},
		{"a|&b", []Token{NewWordToken("a"), NewOperatorToken(Operator{Kind: ControlKind, Control: PipeAmp}), NewWordToken("b")}},
		{"a&&b", []Token{NewWordToken("a"), NewOperatorToken(Operator{Kind: ControlKind, Control: And}), NewWordToken("b")}},
		{"a;;&b", []Token{NewWordToken("a"), NewOperatorToken(Operator{Kind: ControlKind, Control: DoubleSemiAmp}), NewWordToken("b")}},
		{"a>>b", []Token{NewWordToken("a"), NewOperatorToken(Operator{Kind: RedirectKind, Redirect: AppendStdout}), NewWordToken("b")}},
		{"a2>>b", []Token{NewWordToken("a"), NewOperatorToken(Operator{Kind: RedirectKind, Redirect: AppendStderr}), NewWordToken("b")}},
	}
	for _, c := range cases {
		got := Lex(c.line)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Lex(%q) = %#v, want %#v", c.line, got, c.want)
		}
	}
}

func TestLexBlanksDelimitWithoutEmittingTokens(t *testing.T) {
	got := Lex("  echo   hi  ")
	want := words("echo", "hi")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexSingleQuoteLiteral(t *testing.T) {
	got := Lex(`echo 'a $b "c" \d'`)
	want := words("echo", `a $b "c" \d`)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexSingleQuoteUnterminatedIsLiteral(t *testing.T) {
	got := Lex(`echo 'abc`)
	want := words("echo", "'abc")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexDoubleQuoteEscapes(t *testing.T) {
	got := Lex(`echo "a \$b \\c \"d\" \e"`)
	want := words("echo", `a $b \c "d" \e`)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexDoubleQuoteUnterminatedIsVerbatim(t *testing.T) {
	got := Lex(`echo "abc \$`)
	want := words("echo", `"abc \$`)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexConcatenatedQuotedAndBareFormOneToken(t *testing.T) {
	got := Lex(`foo'bar'"baz"qux`)
	want := words("foobarbazqux")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexBackslashOutsideQuotesIsLiteral(t *testing.T) {
	got := Lex(`a\ b\|c`)
	want := words("a b|c")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexTrailingBackslashDropped(t *testing.T) {
	got := Lex(`abc\`)
	want := words("abc")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexGreedyOperatorPrefixMatch(t *testing.T) {
	got := Lex(";;&")
	want := []Token{NewOperatorToken(Operator{Kind: ControlKind, Control: DoubleSemiAmp})}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex(\";;&\") = %#v, want %#v", got, want)
	}
}

func TestLexEmptyQuotedWordStillEmitsToken(t *testing.T) {
	got := Lex(`echo "" a`)
	want := words("echo", "", "a")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexBareEmptySingleQuotesStillEmitToken(t *testing.T) {
	got := Lex(`cmd ''`)
	want := words("cmd", "")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexNewlineProducesNewlineOperator(t *testing.T) {
	got := Lex("echo hi\n")
	want := []Token{NewWordToken("echo"), NewWordToken("hi"), NewOperatorToken(Operator{Kind: ControlKind, Control: Newline})}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}
