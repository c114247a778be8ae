// Package highlight defines the syntax-highlighting contract the
// render pipeline consumes: a per-line tokenizer threading lexer
// state across lines, a caching engine that turns tokens into style
// spans, and themes mapping token types to styles.
package highlight

// TokenType classifies a highlighted token.
type TokenType uint8

const (
	// TokenNone is unstyled text.
	TokenNone TokenType = iota

	// TokenKeyword is a language keyword.
	TokenKeyword

	// TokenString is a string or character literal.
	TokenString

	// TokenComment is a line or block comment.
	TokenComment

	// TokenNumber is a numeric literal.
	TokenNumber

	// TokenTypeName is a type name.
	TokenTypeName

	// TokenFunction is a function name at a call or declaration site.
	TokenFunction
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenNone:
		return "none"
	case TokenKeyword:
		return "keyword"
	case TokenString:
		return "string"
	case TokenComment:
		return "comment"
	case TokenNumber:
		return "number"
	case TokenTypeName:
		return "type"
	case TokenFunction:
		return "function"
	default:
		return "unknown"
	}
}

// TokenTypeFromString parses a token type name, as used in theme
// files. Unknown names map to TokenNone.
func TokenTypeFromString(s string) TokenType {
	switch s {
	case "keyword":
		return TokenKeyword
	case "string":
		return TokenString
	case "comment":
		return TokenComment
	case "number":
		return TokenNumber
	case "type":
		return TokenTypeName
	case "function":
		return TokenFunction
	default:
		return TokenNone
	}
}

// Token is one highlighted run within a line. Start and End are
// line-local character offsets, End exclusive.
type Token struct {
	Type  TokenType
	Start int
	End   int
}

// LexerState carries multi-line lexer context from one line into the
// next.
type LexerState uint8

const (
	// StateNormal is the default state between constructs.
	StateNormal LexerState = iota

	// StateBlockComment is inside a /* */ comment.
	StateBlockComment

	// StateRawString is inside a backquoted raw string.
	StateRawString
)

// Highlighter tokenizes single lines, threading state across them.
// Implementations must be safe for concurrent use: the render layer
// may run highlighting off the caller's goroutine.
type Highlighter interface {
	// HighlightLine tokenizes one line. prevState is the state left
	// by the previous line; the returned state feeds the next line.
	HighlightLine(text string, prevState LexerState) ([]Token, LexerState)

	// Language returns the language name this highlighter handles.
	Language() string
}
