package highlight

import (
	"unicode"
)

// goKeywords is the Go keyword set plus predeclared constants.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true, "true": true, "false": true, "nil": true, "iota": true,
}

// goBuiltinTypes are predeclared type names.
var goBuiltinTypes = map[string]bool{
	"bool": true, "byte": true, "complex64": true, "complex128": true,
	"error": true, "float32": true, "float64": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true, "uint": true, "uint8": true,
	"uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"any": true,
}

// GoHighlighter is a line-oriented lexer for Go-like source. It is a
// deliberately small single-pass scanner: strings, comments (line,
// block and raw string state carried across lines), numbers, keywords,
// type and function names.
type GoHighlighter struct{}

// NewGo creates the built-in Go highlighter.
func NewGo() *GoHighlighter {
	return &GoHighlighter{}
}

// Language implements Highlighter.
func (h *GoHighlighter) Language() string {
	return "go"
}

// HighlightLine implements Highlighter. Offsets in the returned
// tokens are character (rune) offsets within the line.
func (h *GoHighlighter) HighlightLine(text string, prevState LexerState) ([]Token, LexerState) {
	runes := []rune(text)
	var tokens []Token
	i := 0

	// Finish any construct carried over from the previous line.
	switch prevState {
	case StateBlockComment:
		end, closed := findSeq(runes, 0, '*', '/')
		if !closed {
			return appendTok(tokens, TokenComment, 0, len(runes)), StateBlockComment
		}
		tokens = appendTok(tokens, TokenComment, 0, end)
		i = end
	case StateRawString:
		end, closed := findRune(runes, 0, '`')
		if !closed {
			return appendTok(tokens, TokenString, 0, len(runes)), StateRawString
		}
		tokens = appendTok(tokens, TokenString, 0, end)
		i = end
	}

	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '/' && i+1 < len(runes) && runes[i+1] == '/':
			return appendTok(tokens, TokenComment, i, len(runes)), StateNormal

		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			end, closed := findSeq(runes, i+2, '*', '/')
			if !closed {
				return appendTok(tokens, TokenComment, i, len(runes)), StateBlockComment
			}
			tokens = appendTok(tokens, TokenComment, i, end)
			i = end

		case r == '`':
			end, closed := findRune(runes, i+1, '`')
			if !closed {
				return appendTok(tokens, TokenString, i, len(runes)), StateRawString
			}
			tokens = appendTok(tokens, TokenString, i, end)
			i = end

		case r == '"' || r == '\'':
			end := scanQuoted(runes, i, r)
			tokens = appendTok(tokens, TokenString, i, end)
			i = end

		case unicode.IsDigit(r):
			end := scanNumber(runes, i)
			tokens = appendTok(tokens, TokenNumber, i, end)
			i = end

		case r == '_' || unicode.IsLetter(r):
			end := scanIdent(runes, i)
			tokens = appendTok(tokens, classifyIdent(runes, i, end), i, end)
			i = end

		default:
			i++
		}
	}

	return tokens, StateNormal
}

func appendTok(tokens []Token, t TokenType, start, end int) []Token {
	if end <= start || t == TokenNone {
		return tokens
	}
	return append(tokens, Token{Type: t, Start: start, End: end})
}

// findSeq returns the offset just past the first a,b pair at or after
// start, and whether it was found.
func findSeq(runes []rune, start int, a, b rune) (int, bool) {
	for i := start; i+1 < len(runes); i++ {
		if runes[i] == a && runes[i+1] == b {
			return i + 2, true
		}
	}
	return len(runes), false
}

// findRune returns the offset just past the first occurrence of r at
// or after start, and whether it was found.
func findRune(runes []rune, start int, r rune) (int, bool) {
	for i := start; i < len(runes); i++ {
		if runes[i] == r {
			return i + 1, true
		}
	}
	return len(runes), false
}

// scanQuoted scans a quoted literal with backslash escapes, starting
// at the opening quote. Unterminated literals run to end of line.
func scanQuoted(runes []rune, start int, quote rune) int {
	i := start + 1
	for i < len(runes) {
		switch runes[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		default:
			i++
		}
	}
	return len(runes)
}

func scanNumber(runes []rune, start int) int {
	i := start
	for i < len(runes) {
		r := runes[i]
		if unicode.IsDigit(r) || unicode.IsLetter(r) || r == '.' || r == '_' {
			i++
			continue
		}
		break
	}
	return i
}

func scanIdent(runes []rune, start int) int {
	i := start
	for i < len(runes) {
		r := runes[i]
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			i++
			continue
		}
		break
	}
	return i
}

// classifyIdent decides what an identifier run is: keyword, builtin
// or exported type name, function name when a call follows, plain
// identifier otherwise.
func classifyIdent(runes []rune, start, end int) TokenType {
	word := string(runes[start:end])
	if goKeywords[word] {
		return TokenKeyword
	}
	if goBuiltinTypes[word] {
		return TokenTypeName
	}

	// Peek past spaces for a call paren.
	j := end
	for j < len(runes) && runes[j] == ' ' {
		j++
	}
	if j < len(runes) && runes[j] == '(' {
		return TokenFunction
	}

	if unicode.IsUpper(runes[start]) {
		return TokenTypeName
	}
	return TokenNone
}
