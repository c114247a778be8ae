package highlight

import (
	"sync"

	"github.com/emoor/caretline/internal/core"
)

// Engine turns per-line tokens into style spans, caching both the
// tokens and the lexer state at each line boundary so multi-line
// constructs (block comments, raw strings) highlight correctly and a
// re-request of an unchanged line does no lexing.
//
// Engine is safe for concurrent use; the render layer calls it from a
// worker goroutine.
type Engine struct {
	mu sync.Mutex

	hl    Highlighter
	theme *Theme

	lineCache  map[int]*cachedLine
	stateCache map[int]LexerState
	maxCache   int

	source func(row int) (string, bool)
}

type cachedLine struct {
	text   string
	tokens []Token
}

// NewEngine creates an engine over a highlighter and theme. source
// retrieves line text by row for state recovery; it must be non-nil.
// A nil theme uses the default theme.
func NewEngine(hl Highlighter, theme *Theme, source func(row int) (string, bool)) *Engine {
	if source == nil {
		panic("highlight: engine requires a line source")
	}
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Engine{
		hl:         hl,
		theme:      theme,
		lineCache:  make(map[int]*cachedLine),
		stateCache: make(map[int]LexerState),
		maxCache:   1024,
		source:     source,
	}
}

// Theme returns the active theme.
func (e *Engine) Theme() *Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

// SetTheme replaces the theme. Token caches survive; only style
// resolution changes.
func (e *Engine) SetTheme(theme *Theme) {
	if theme == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.theme = theme
}

// SpansForLine returns the style spans for one line of text at the
// given row. A nil highlighter yields no spans.
func (e *Engine) SpansForLine(row int, text string) []core.StyleSpan {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.hl == nil {
		return nil
	}

	tokens := e.tokensForLine(row, text)
	if len(tokens) == 0 {
		return nil
	}

	spans := make([]core.StyleSpan, 0, len(tokens))
	for _, tok := range tokens {
		spans = append(spans, core.StyleSpan{
			Start: tok.Start,
			End:   tok.End,
			Style: e.theme.StyleFor(tok.Type),
		})
	}
	return spans
}

// InvalidateFrom drops cached tokens and states for row and every
// line after it. An edit can change the lexer state flowing into all
// subsequent lines, so invalidation is always suffix-wide.
func (e *Engine) InvalidateFrom(row int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for r := range e.lineCache {
		if r >= row {
			delete(e.lineCache, r)
		}
	}
	for r := range e.stateCache {
		if r >= row {
			delete(e.stateCache, r)
		}
	}
}

// InvalidateAll drops every cached token and state.
func (e *Engine) InvalidateAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lineCache = make(map[int]*cachedLine)
	e.stateCache = make(map[int]LexerState)
}

// tokensForLine returns cached tokens when text matches, lexing
// otherwise. Caller holds the lock.
func (e *Engine) tokensForLine(row int, text string) []Token {
	if c, ok := e.lineCache[row]; ok && c.text == text {
		return c.tokens
	}

	prev := e.stateBefore(row)
	tokens, endState := e.hl.HighlightLine(text, prev)

	if len(e.lineCache) >= e.maxCache {
		e.evict()
	}
	e.lineCache[row] = &cachedLine{text: text, tokens: tokens}
	e.stateCache[row] = endState

	return tokens
}

// stateBefore returns the lexer state entering row, recomputing from
// the nearest cached predecessor state when needed.
func (e *Engine) stateBefore(row int) LexerState {
	if row == 0 {
		return StateNormal
	}
	if s, ok := e.stateCache[row-1]; ok {
		return s
	}

	// Walk back to the last known state, then lex forward.
	start := 0
	state := StateNormal
	for r := row - 1; r > 0; r-- {
		if s, ok := e.stateCache[r-1]; ok {
			start = r
			state = s
			break
		}
	}
	for r := start; r < row; r++ {
		text, ok := e.source(r)
		if !ok {
			break
		}
		var tokens []Token
		tokens, state = e.hl.HighlightLine(text, state)
		if len(e.lineCache) >= e.maxCache {
			e.evict()
		}
		e.lineCache[r] = &cachedLine{text: text, tokens: tokens}
		e.stateCache[r] = state
	}
	return state
}

// evict drops about a quarter of cached lines; states are kept, they
// are tiny and expensive to recover.
func (e *Engine) evict() {
	toRemove := len(e.lineCache) / 4
	if toRemove < 8 {
		toRemove = 8
	}
	for r := range e.lineCache {
		delete(e.lineCache, r)
		toRemove--
		if toRemove == 0 {
			break
		}
	}
}
