package render

import (
	"sync"

	"github.com/google/uuid"

	"github.com/emoor/caretline/internal/core"
	"github.com/emoor/caretline/internal/document"
	"github.com/emoor/caretline/internal/highlight"
	"github.com/emoor/caretline/internal/layout"
)

// Surface receives the styled snapshot of a line whenever it changes.
// Implementations paint it; the controller never reads it back.
type Surface interface {
	ApplyStyled(line document.Line, text string, spans []core.StyleSpan)
}

// Config wires a Controller to its collaborators.
type Config struct {
	// Source supplies line text. Required; the controller must not
	// outlive its data source.
	Source layout.TextSource

	// Typesetter computes wrapped layout. Required.
	Typesetter *layout.Typesetter

	// Highlight is the syntax engine. Optional; without it the
	// syntax stage is a no-op.
	Highlight *highlight.Engine

	// Runner executes asynchronous highlighting. Defaults to
	// AsyncRunner.
	Runner Runner

	// BaseStyle is the default style applied to the whole line
	// before highlighting.
	BaseStyle core.Style
}

// Controller runs the render pipeline for one logical line. All
// methods are safe for concurrent use, but the expected discipline is
// a single owner invoking the synchronous stages; only highlight
// delivery arrives from another goroutine.
type Controller struct {
	mu   sync.Mutex
	line document.Line
	cfg  Config

	text  string
	spans []core.StyleSpan
	ll    *layout.LineLayout

	textState   StageState
	attrsState  StageState
	syntaxState StageState
	layoutState StageState

	surface Surface

	// pending identifies the one outstanding highlight request.
	// uuid.Nil means none; replacing it cancels the prior request.
	pending uuid.UUID
}

// NewController creates a controller for a line. Every stage starts
// dirty. A missing source or typesetter is a programmer error.
func NewController(line document.Line, cfg Config) *Controller {
	if cfg.Source == nil {
		panic("render: controller requires a text source")
	}
	if cfg.Typesetter == nil {
		panic("render: controller requires a typesetter")
	}
	if cfg.Runner == nil {
		cfg.Runner = AsyncRunner{}
	}
	return &Controller{
		line:        line,
		cfg:         cfg,
		textState:   StageDirty,
		attrsState:  StageDirty,
		syntaxState: StageDirty,
		layoutState: StageDirty,
	}
}

// Line returns the line snapshot the controller renders.
func (c *Controller) Line() document.Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.line
}

// SetLine replaces the line snapshot after a reindex. A changed
// snapshot invalidates the whole pipeline.
func (c *Controller) SetLine(line document.Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if line == c.line {
		return
	}
	c.line = line
	c.markTextDirty()
}

// SetSurface attaches the display surface.
func (c *Controller) SetSurface(s Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface = s
}

// ForceLayout marks the string, default-attribute and layout stages
// dirty and runs them synchronously. The syntax stage is left for the
// next display request. Used when line content or width constraints
// change and geometry must be correct on return.
func (c *Controller) ForceLayout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.markTextDirty()
	c.layoutState = StageDirty
	c.cfg.Typesetter.Invalidate(c.line.Index)

	c.ensureText()
	c.ensureAttrs()
	c.ensureLayout()
}

// ForceHighlight runs the syntax stage synchronously to completion,
// re-running any dirty upstream stage first. Used when highlighting
// must be done before returning, e.g. to measure final height.
func (c *Controller) ForceHighlight() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.markSyntaxDirty()
	c.ensureText()
	c.ensureAttrs()
	c.runSyntaxLocked()
	c.pushSurface()
}

// PrepareForDisplay brings the line up to date for painting: string,
// default attributes and layout run synchronously before returning;
// a dirty syntax stage is scheduled on the runner and completes
// later, updating the snapshot and surface in place.
func (c *Controller) PrepareForDisplay() {
	c.mu.Lock()

	textChanged := c.ensureText()
	attrsChanged := c.ensureAttrs()
	layoutChanged := c.ensureLayout()
	changed := textChanged || attrsChanged || layoutChanged

	var job func()
	if c.syntaxState == StageDirty && c.cfg.Highlight != nil {
		job = c.scheduleSyntax()
	} else if c.syntaxState == StageDirty {
		// No highlighter configured; nothing to compute.
		c.syntaxState = StageClean
	}

	if changed {
		c.pushSurface()
	}
	c.mu.Unlock()

	// Dispatch after unlocking: an inline runner delivers the result
	// reentrantly through deliverSyntax, which takes the lock itself.
	if job != nil {
		c.cfg.Runner.Go(job)
	}
}

// InvalidateLayout marks only the layout stage dirty.
func (c *Controller) InvalidateLayout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layoutState = StageDirty
	c.cfg.Typesetter.Invalidate(c.line.Index)
}

// InvalidateHighlighting marks the default-attribute and syntax
// stages dirty. Re-applying defaults before re-highlighting clears
// remnants of a highlighter that only adds attributes.
func (c *Controller) InvalidateHighlighting() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attrsState = StageDirty
	c.markSyntaxDirty()
}

// InvalidateContent marks the string stage dirty, which invalidates
// every downstream stage on next use. The edit path calls this for
// each affected row before the next display request.
func (c *Controller) InvalidateContent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markTextDirty()
}

// RemoveFromDisplay releases the surface reference and cancels any
// in-flight highlight. A result delivered after cancellation is
// dropped and the syntax stage stays dirty.
func (c *Controller) RemoveFromDisplay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.surface = nil
	if c.pending != uuid.Nil {
		c.pending = uuid.Nil
		if c.syntaxState == StageRunning {
			c.syntaxState = StageDirty
		}
	}
}

// Stages returns the current stage states.
func (c *Controller) Stages() Stages {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stages{
		Text:       c.textState,
		Attributes: c.attrsState,
		Syntax:     c.syntaxState,
		Layout:     c.layoutState,
	}
}

// Text returns the cached line text. Valid after the string stage has
// run.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Spans returns a copy of the styled snapshot's spans.
func (c *Controller) Spans() []core.StyleSpan {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.StyleSpan, len(c.spans))
	copy(out, c.spans)
	return out
}

// CaretRect returns the caret rectangle for a line-local offset.
// Valid only while layout is current.
func (c *Controller) CaretRect(local int) (core.Rect, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.layoutCurrent() {
		return core.Rect{}, false
	}
	return c.ll.CaretRect(local), true
}

// SelectionRects returns the rectangles covering a line-local range.
// Valid only while layout is current.
func (c *Controller) SelectionRects(start, end int) ([]core.Rect, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.layoutCurrent() {
		return nil, false
	}
	return c.ll.SelectionRects(start, end), true
}

// FirstRect returns the rectangle of the first fragment portion of a
// range. Valid only while layout is current.
func (c *Controller) FirstRect(start, end int) (core.Rect, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.layoutCurrent() {
		return core.Rect{}, false
	}
	return c.ll.FirstRect(start, end), true
}

// ClosestOffset returns the line-local offset nearest to a point in
// cell space. Valid only while layout is current.
func (c *Controller) ClosestOffset(pt core.Point) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.layoutCurrent() {
		return 0, false
	}
	return c.ll.ClosestOffset(pt), true
}

// PreferredSize returns the laid-out extent in cells. Before any
// layout has run it returns a single-line-height placeholder so an
// unlaid-out line still reserves sane vertical space.
func (c *Controller) PreferredSize() (w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ll != nil {
		return c.ll.Size()
	}
	m := c.cfg.Typesetter.Metrics()
	return 0, m.LineHeight
}

// markTextDirty applies the pipeline invariant: a stale string makes
// every downstream stage stale.
func (c *Controller) markTextDirty() {
	c.textState = StageDirty
	c.attrsState = StageDirty
	c.markSyntaxDirty()
	c.layoutState = StageDirty
}

// markSyntaxDirty invalidates the syntax stage and supersedes any
// outstanding request.
func (c *Controller) markSyntaxDirty() {
	c.syntaxState = StageDirty
	c.pending = uuid.Nil
}

// ensureText fetches the line text if stale. The styled snapshot is
// discarded with it. Reports whether work was done.
func (c *Controller) ensureText() bool {
	if c.textState == StageClean {
		return false
	}
	c.text = c.cfg.Source.LineText(c.line)
	c.spans = nil
	c.textState = StageClean
	return true
}

// ensureAttrs rebuilds the snapshot with the single default-style
// span. Reports whether work was done.
func (c *Controller) ensureAttrs() bool {
	if c.attrsState == StageClean {
		return false
	}
	n := len([]rune(c.text))
	c.spans = c.spans[:0]
	if n > 0 {
		c.spans = append(c.spans, core.StyleSpan{Start: 0, End: n, Style: c.cfg.BaseStyle})
	}
	c.attrsState = StageClean
	return true
}

// ensureLayout recomputes wrapped layout if stale. Reports whether
// work was done.
func (c *Controller) ensureLayout() bool {
	if c.layoutState == StageClean {
		return false
	}
	c.ll = c.cfg.Typesetter.Layout(c.line)
	c.layoutState = StageClean
	return true
}

// runSyntaxLocked runs the syntax stage synchronously, superseding
// any outstanding asynchronous request.
func (c *Controller) runSyntaxLocked() {
	if c.cfg.Highlight == nil {
		c.syntaxState = StageClean
		return
	}
	spans := c.cfg.Highlight.SpansForLine(c.line.Index, c.text)
	c.applySyntax(spans)
}

// scheduleSyntax stamps a new request token and returns the work to
// hand to the runner. Only one request per line is outstanding; a new
// one supersedes the old by replacing the token. The caller holds the
// lock and must dispatch the returned function after releasing it.
func (c *Controller) scheduleSyntax() func() {
	token := uuid.New()
	c.pending = token
	c.syntaxState = StageRunning

	row, text := c.line.Index, c.text
	engine := c.cfg.Highlight
	return func() {
		spans := engine.SpansForLine(row, text)
		c.deliverSyntax(token, spans)
	}
}

// deliverSyntax applies an asynchronous result unless it has been
// superseded or cancelled since it was requested.
func (c *Controller) deliverSyntax(token uuid.UUID, spans []core.StyleSpan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.pending {
		// Stale result: a newer request, an invalidation, or a
		// teardown won the race. Drop it.
		return
	}
	c.pending = uuid.Nil
	c.applySyntax(spans)
	c.pushSurface()
}

// applySyntax overlays highlight spans on the default-attribute
// snapshot.
func (c *Controller) applySyntax(spans []core.StyleSpan) {
	// Keep the default span, replace any previous highlight overlay.
	if len(c.spans) > 1 {
		c.spans = c.spans[:1]
	}
	c.spans = append(c.spans, spans...)
	c.syntaxState = StageClean
}

func (c *Controller) pushSurface() {
	if c.surface == nil {
		return
	}
	out := make([]core.StyleSpan, len(c.spans))
	copy(out, c.spans)
	c.surface.ApplyStyled(c.line, c.text, out)
}

func (c *Controller) layoutCurrent() bool {
	return c.layoutState == StageClean && c.ll != nil
}
