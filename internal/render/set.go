package render

import (
	"sync"

	"github.com/emoor/caretline/internal/document"
)

// Set is the arena of live controllers, keyed by row. The owning view
// acquires a controller when a line enters the visible working set
// and releases it when the line leaves or is deleted, so controller
// lifetime is explicit rather than tied to weak references.
type Set struct {
	mu          sync.Mutex
	cfg         Config
	controllers map[int]*Controller
}

// NewSet creates an empty controller set; cfg is the template for
// every controller it creates.
func NewSet(cfg Config) *Set {
	if cfg.Source == nil {
		panic("render: set requires a text source")
	}
	if cfg.Typesetter == nil {
		panic("render: set requires a typesetter")
	}
	return &Set{
		cfg:         cfg,
		controllers: make(map[int]*Controller),
	}
}

// Acquire returns the controller for a line, creating it on first
// use. An existing controller is updated with the fresh line
// snapshot.
func (s *Set) Acquire(line document.Line) *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.controllers[line.Index]; ok {
		c.SetLine(line)
		return c
	}
	c := NewController(line, s.cfg)
	s.controllers[line.Index] = c
	return c
}

// Get returns the live controller for a row, if any.
func (s *Set) Get(row int) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.controllers[row]
	return c, ok
}

// Release tears down the controller for a row: the surface reference
// is dropped and any in-flight highlight cancelled.
func (s *Set) Release(row int) {
	s.mu.Lock()
	c, ok := s.controllers[row]
	if ok {
		delete(s.controllers, row)
	}
	s.mu.Unlock()

	if ok {
		c.RemoveFromDisplay()
	}
}

// ReleaseAll tears down every controller.
func (s *Set) ReleaseAll() {
	s.mu.Lock()
	cs := make([]*Controller, 0, len(s.controllers))
	for _, c := range s.controllers {
		cs = append(cs, c)
	}
	s.controllers = make(map[int]*Controller)
	s.mu.Unlock()

	for _, c := range cs {
		c.RemoveFromDisplay()
	}
}

// ContentChangedFrom marks the string stage dirty for every
// controller at or after row. The edit path calls this after a
// buffer change, before the next display request. The highlight
// engine's caches are dropped from row onward too: an edit can change
// the lexer state flowing into lines whose own text is unchanged.
func (s *Set) ContentChangedFrom(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Highlight != nil {
		s.cfg.Highlight.InvalidateFrom(row)
	}
	s.cfg.Typesetter.InvalidateFrom(row)
	for r, c := range s.controllers {
		if r >= row {
			c.InvalidateContent()
		}
	}
}

// LayoutChangedAll marks the layout stage dirty on every controller,
// e.g. after a wrap-width change.
func (s *Set) LayoutChangedAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.controllers {
		c.InvalidateLayout()
	}
}

// Len returns the number of live controllers.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.controllers)
}
