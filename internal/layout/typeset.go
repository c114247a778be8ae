package layout

import (
	"sync"

	"github.com/rivo/uniseg"

	"github.com/emoor/caretline/internal/core"
	"github.com/emoor/caretline/internal/document"
)

// TextSource supplies the visible text of a logical line.
type TextSource interface {
	LineText(line document.Line) string
}

// Options configures a Typesetter.
type Options struct {
	// TabWidth is the tab stop interval in cells. Values below 1
	// default to 4.
	TabWidth int

	// WrapWidth is the wrap column in cells. 0 disables wrapping.
	WrapWidth int

	// WrapAtWord prefers breaking after whitespace when wrapping.
	WrapAtWord bool

	// Metrics are the active font metrics. Zero values default to
	// 1x1 cells.
	Metrics Metrics
}

// DefaultOptions returns typesetter defaults: tab width 4, no wrap,
// word wrapping preferred once a wrap width is set.
func DefaultOptions() Options {
	return Options{
		TabWidth:   4,
		WrapWidth:  0,
		WrapAtWord: true,
		Metrics:    DefaultMetrics(),
	}
}

// Typesetter computes wrapped line layouts and implements
// FragmentProvider. Computed layouts are cached per row and validated
// against line content, so repeated fragment and geometry queries for
// an unchanged line do no re-measurement.
type Typesetter struct {
	mu         sync.Mutex
	src        TextSource
	tabWidth   int
	wrapWidth  int
	wrapAtWord bool
	metrics    Metrics
	cache      *Cache
}

// NewTypesetter creates a typesetter over the given text source.
// A nil source is a programmer error and panics.
func NewTypesetter(src TextSource, opts Options) *Typesetter {
	if src == nil {
		panic("layout: typesetter requires a text source")
	}
	if opts.TabWidth < 1 {
		opts.TabWidth = 4
	}
	if opts.WrapWidth < 0 {
		opts.WrapWidth = 0
	}
	return &Typesetter{
		src:        src,
		tabWidth:   opts.TabWidth,
		wrapWidth:  opts.WrapWidth,
		wrapAtWord: opts.WrapAtWord,
		metrics:    opts.Metrics.normalized(),
		cache:      NewCache(512),
	}
}

// Metrics returns the active font metrics.
func (t *Typesetter) Metrics() Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.metrics
}

// WrapWidth returns the current wrap column (0 = no wrap).
func (t *Typesetter) WrapWidth() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wrapWidth
}

// SetWrapWidth changes the wrap column and discards all cached
// layouts.
func (t *Typesetter) SetWrapWidth(width int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width < 0 {
		width = 0
	}
	if width == t.wrapWidth {
		return
	}
	t.wrapWidth = width
	t.cache.Clear()
}

// SetTabWidth changes the tab stop interval and discards all cached
// layouts.
func (t *Typesetter) SetTabWidth(width int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width < 1 {
		width = 1
	}
	if width == t.tabWidth {
		return
	}
	t.tabWidth = width
	t.cache.Clear()
}

// Invalidate discards the cached layout for a row.
func (t *Typesetter) Invalidate(row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache.Invalidate(row)
}

// InvalidateFrom discards cached layouts for row and everything after
// it.
func (t *Typesetter) InvalidateFrom(row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache.InvalidateFrom(row)
}

// InvalidateAll discards every cached layout.
func (t *Typesetter) InvalidateAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache.Clear()
}

// Layout returns the layout for a line, computing it if the cache has
// no current entry.
func (t *Typesetter) Layout(line document.Line) *LineLayout {
	t.mu.Lock()
	defer t.mu.Unlock()

	text := t.src.LineText(line)
	hash := contentHash(text)
	if ll, ok := t.cache.Lookup(line.Index, hash); ok {
		return ll
	}
	ll := t.typeset(line, text)
	t.cache.Store(line.Index, hash, ll)
	return ll
}

// FragmentCount implements FragmentProvider.
func (t *Typesetter) FragmentCount(line document.Line) int {
	return len(t.Layout(line).Fragments)
}

// FragmentContaining implements FragmentProvider.
func (t *Typesetter) FragmentContaining(line document.Line, local int) Fragment {
	return t.Layout(line).FragmentContaining(local)
}

// FragmentAt implements FragmentProvider.
func (t *Typesetter) FragmentAt(line document.Line, index int) Fragment {
	return t.Layout(line).FragmentAt(index)
}

// cluster is one extended grapheme cluster of a line with its local
// rune offset.
type cluster struct {
	start   int // local rune offset
	runes   int
	width   int // cells; tabs resolved during fragment walk
	isTab   bool
	isSpace bool
}

func splitClusters(text string) []cluster {
	if text == "" {
		return nil
	}
	out := make([]cluster, 0, len(text))
	g := uniseg.NewGraphemes(text)
	off := 0
	for g.Next() {
		s := g.Str()
		c := cluster{
			start:   off,
			runes:   len(g.Runes()),
			isTab:   s == "\t",
			isSpace: s == " " || s == "\t",
		}
		if !c.isTab {
			c.width = core.ClusterWidth(s)
		}
		out = append(out, c)
		off += c.runes
	}
	return out
}

// typeset computes the layout for one line. Wrapping happens in two
// phases: first fragment boundaries are decided over the cluster
// stream, then each fragment is walked to build the offset-to-column
// maps. Tab stops restart at each fragment.
func (t *Typesetter) typeset(line document.Line, text string) *LineLayout {
	clusters := splitClusters(text)
	length := 0
	for _, c := range clusters {
		length += c.runes
	}

	bounds := t.wrapBounds(clusters)

	ll := &LineLayout{
		Line:    line,
		metrics: t.metrics,
		fragOf:  make([]int, length+1),
		colOf:   make([]int, length+1),
	}

	for fi := 0; fi < len(bounds)-1; fi++ {
		from, to := bounds[fi], bounds[fi+1]
		fragStart := length
		if from < len(clusters) {
			fragStart = clusters[from].start
		}
		fragEnd := length
		if to < len(clusters) {
			fragEnd = clusters[to].start
		}

		col := 0
		for ci := from; ci < to; ci++ {
			c := clusters[ci]
			w := t.clusterWidth(c, col)
			for r := 0; r < c.runes; r++ {
				ll.fragOf[c.start+r] = fi
				ll.colOf[c.start+r] = col
			}
			col += w
		}

		ll.Fragments = append(ll.Fragments, Fragment{
			Index:    fi,
			Location: fragStart,
			Length:   fragEnd - fragStart,
		})
		ll.widths = append(ll.widths, col)
	}

	// The end-of-line offset belongs to the last fragment, one cell
	// past its content.
	last := len(ll.Fragments) - 1
	ll.fragOf[length] = last
	ll.colOf[length] = ll.widths[last]

	return ll
}

// wrapBounds returns cluster indices delimiting fragments, always at
// least [0, len(clusters)].
func (t *Typesetter) wrapBounds(clusters []cluster) []int {
	bounds := []int{0}
	if t.wrapWidth <= 0 {
		return append(bounds, len(clusters))
	}

	fragStart := 0
	lastSpace := -1
	col := 0
	i := 0
	for i < len(clusters) {
		c := clusters[i]
		w := t.clusterWidth(c, col)
		if col > 0 && col+w > t.wrapWidth {
			breakAt := i
			if t.wrapAtWord && lastSpace >= fragStart {
				// Break after the last whitespace cluster.
				breakAt = lastSpace + 1
				if breakAt <= fragStart {
					breakAt = i
				}
			}
			bounds = append(bounds, breakAt)
			fragStart = breakAt
			lastSpace = -1
			col = 0
			i = breakAt
			continue
		}
		if c.isSpace {
			lastSpace = i
		}
		col += w
		i++
	}
	return append(bounds, len(clusters))
}

func (t *Typesetter) clusterWidth(c cluster, col int) int {
	if c.isTab {
		return t.tabWidth - col%t.tabWidth
	}
	return c.width
}
