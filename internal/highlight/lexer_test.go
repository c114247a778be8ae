package highlight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lex(t *testing.T, text string, prev LexerState) ([]Token, LexerState) {
	t.Helper()
	return NewGo().HighlightLine(text, prev)
}

func typesAt(tokens []Token, pos int) TokenType {
	for _, tok := range tokens {
		if pos >= tok.Start && pos < tok.End {
			return tok.Type
		}
	}
	return TokenNone
}

func TestLexKeywords(t *testing.T) {
	tokens, state := lex(t, "func main() {", StateNormal)
	if state != StateNormal {
		t.Errorf("state = %v, want normal", state)
	}
	want := []Token{
		{Type: TokenKeyword, Start: 0, End: 4},
		{Type: TokenFunction, Start: 5, End: 9},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLexString(t *testing.T) {
	tokens, _ := lex(t, `x := "hi \" there"`, StateNormal)
	if got := typesAt(tokens, 6); got != TokenString {
		t.Errorf("type at 6 = %v, want string", got)
	}
	// The escaped quote does not end the literal.
	if got := typesAt(tokens, 12); got != TokenString {
		t.Errorf("type at 12 = %v, want string", got)
	}
	if got := typesAt(tokens, 0); got != TokenNone {
		t.Errorf("identifier x should be unstyled, got %v", got)
	}
}

func TestLexLineComment(t *testing.T) {
	tokens, state := lex(t, "x // trailing", StateNormal)
	if state != StateNormal {
		t.Errorf("state = %v", state)
	}
	if got := typesAt(tokens, 2); got != TokenComment {
		t.Errorf("type at 2 = %v, want comment", got)
	}
	if got := typesAt(tokens, 12); got != TokenComment {
		t.Errorf("comment should run to end of line")
	}
}

func TestLexBlockCommentAcrossLines(t *testing.T) {
	tokens, state := lex(t, "a /* open", StateNormal)
	if state != StateBlockComment {
		t.Fatalf("state = %v, want block comment", state)
	}
	if got := typesAt(tokens, 5); got != TokenComment {
		t.Errorf("type at 5 = %v, want comment", got)
	}

	tokens, state = lex(t, "still */ done()", StateBlockComment)
	if state != StateNormal {
		t.Errorf("state = %v, want normal after close", state)
	}
	if got := typesAt(tokens, 0); got != TokenComment {
		t.Errorf("carried comment should cover line start")
	}
	if got := typesAt(tokens, 9); got != TokenFunction {
		t.Errorf("type at 9 = %v, want function after comment close", got)
	}
}

func TestLexRawStringAcrossLines(t *testing.T) {
	_, state := lex(t, "s := `raw", StateNormal)
	if state != StateRawString {
		t.Fatalf("state = %v, want raw string", state)
	}

	tokens, state := lex(t, "middle", StateRawString)
	if state != StateRawString {
		t.Errorf("unclosed raw string should keep state")
	}
	if got := typesAt(tokens, 3); got != TokenString {
		t.Errorf("whole line should be string, got %v", got)
	}

	_, state = lex(t, "end` x", StateRawString)
	if state != StateNormal {
		t.Errorf("state = %v, want normal after backquote", state)
	}
}

func TestLexNumber(t *testing.T) {
	tokens, _ := lex(t, "n := 0x1f + 3.14", StateNormal)
	if got := typesAt(tokens, 5); got != TokenNumber {
		t.Errorf("type at 5 = %v, want number", got)
	}
	if got := typesAt(tokens, 12); got != TokenNumber {
		t.Errorf("type at 12 = %v, want number", got)
	}
}

func TestLexTypeNames(t *testing.T) {
	tokens, _ := lex(t, "var b MyStruct", StateNormal)
	if got := typesAt(tokens, 0); got != TokenKeyword {
		t.Errorf("var should be keyword, got %v", got)
	}
	if got := typesAt(tokens, 6); got != TokenTypeName {
		t.Errorf("exported name should be type, got %v", got)
	}

	tokens, _ = lex(t, "var n int", StateNormal)
	if got := typesAt(tokens, 6); got != TokenTypeName {
		t.Errorf("builtin should be type, got %v", got)
	}
}

func TestLexUnicodeOffsets(t *testing.T) {
	// Offsets are rune offsets: the wide cluster before the comment
	// counts as one character.
	tokens, _ := lex(t, `世 // c`, StateNormal)
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %+v", tokens)
	}
	if tokens[0].Start != 2 {
		t.Errorf("comment starts at %d, want rune offset 2", tokens[0].Start)
	}
}

func TestLexEmptyLine(t *testing.T) {
	tokens, state := lex(t, "", StateNormal)
	if len(tokens) != 0 || state != StateNormal {
		t.Errorf("empty line: tokens=%v state=%v", tokens, state)
	}

	// Empty line inside a block comment keeps the state.
	tokens, state = lex(t, "", StateBlockComment)
	if len(tokens) != 0 || state != StateBlockComment {
		t.Errorf("empty comment line: tokens=%v state=%v", tokens, state)
	}
}
