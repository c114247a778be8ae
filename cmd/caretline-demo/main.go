// Package main is a terminal viewer demonstrating the caretline
// engine: it loads a file, lays it out with wrapping, highlights Go
// source asynchronously and moves the caret with the arrow keys.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/emoor/caretline/internal/config"
	"github.com/emoor/caretline/internal/core"
	"github.com/emoor/caretline/internal/document"
	"github.com/emoor/caretline/internal/highlight"
	"github.com/emoor/caretline/internal/layout"
	"github.com/emoor/caretline/internal/movement"
	"github.com/emoor/caretline/internal/render"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		wrapCol    int
		tabWidth   int
		themePath  string
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.IntVar(&wrapCol, "wrap", -1, "Wrap column (0 disables, -1 uses terminal width)")
	flag.IntVar(&tabWidth, "tab", 0, "Tab width override")
	flag.StringVar(&themePath, "theme", "", "Theme JSON file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: caretline-demo [options] [file]\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if tabWidth > 0 {
		settings.TabWidth = tabWidth
	}
	if wrapCol >= 0 {
		settings.WrapColumn = wrapCol
	}
	if themePath != "" {
		settings.Theme = themePath
	}

	text := sampleText
	if args := flag.Args(); len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		text = string(data)
	}

	theme := highlight.DefaultTheme()
	if settings.Theme != "" {
		theme, err = highlight.LoadTheme(settings.Theme)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer screen.Fini()

	v := newViewer(screen, text, settings, theme)

	if configPath != "" {
		w, err := config.NewWatcher(configPath, 0, func(s config.Settings) {
			screen.PostEvent(tcell.NewEventInterrupt(s))
		}, nil)
		if err == nil && w.Start() == nil {
			defer w.Stop()
		}
	}

	v.loop()
	return 0
}

// viewer owns the screen and the engine state for one document.
type viewer struct {
	screen tcell.Screen
	buf    *document.Buffer
	tree   *document.LineTree
	ts     *layout.Typesetter
	set    *render.Set
	res    *movement.Resolver
	theme  *highlight.Theme

	settings config.Settings
	caret    int
	topRow   int
}

// repaintSurface posts a redraw whenever asynchronous highlighting
// lands on a visible line.
type repaintSurface struct {
	screen tcell.Screen
}

func (r repaintSurface) ApplyStyled(document.Line, string, []core.StyleSpan) {
	r.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func newViewer(screen tcell.Screen, text string, settings config.Settings, theme *highlight.Theme) *viewer {
	buf := document.NewBuffer(text)
	tree := document.NewLineTree(buf)

	width, _ := screen.Size()
	wrap := settings.WrapColumn
	if wrap == 0 {
		wrap = width
	}
	ts := layout.NewTypesetter(buf, layout.Options{
		TabWidth:   settings.TabWidth,
		WrapWidth:  wrap,
		WrapAtWord: settings.WrapAtWord,
	})

	engine := highlight.NewEngine(highlight.NewGo(), theme, func(row int) (string, bool) {
		line, ok := tree.LineAt(row)
		if !ok {
			return "", false
		}
		return buf.LineText(line), true
	})

	set := render.NewSet(render.Config{
		Source:     buf,
		Typesetter: ts,
		Highlight:  engine,
		BaseStyle:  theme.BaseStyle(),
	})

	return &viewer{
		screen:   screen,
		buf:      buf,
		tree:     tree,
		ts:       ts,
		set:      set,
		res:      movement.NewResolver(buf, tree, ts),
		theme:    theme,
		settings: settings,
	}
}

func (v *viewer) loop() {
	for {
		v.draw()
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		case *tcell.EventResize:
			v.screen.Sync()
			v.applySettings(v.settings)
		case *tcell.EventInterrupt:
			if s, ok := ev.Data().(config.Settings); ok {
				v.applySettings(s)
			}
		}
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	_, height := v.screen.Size()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.move(movement.Left, 1)
	case tcell.KeyRight:
		v.move(movement.Right, 1)
	case tcell.KeyUp:
		v.move(movement.Up, 1)
	case tcell.KeyDown:
		v.move(movement.Down, 1)
	case tcell.KeyPgUp:
		v.move(movement.Up, height)
	case tcell.KeyPgDn:
		v.move(movement.Down, height)
	case tcell.KeyHome:
		if line, ok := v.tree.LineContaining(v.caret); ok {
			v.caret = line.Location
		}
	case tcell.KeyEnd:
		if line, ok := v.tree.LineContaining(v.caret); ok {
			v.caret = line.End()
		}
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return false
		}
	}
	return true
}

func (v *viewer) move(dir movement.Direction, count int) {
	if pos, ok := v.res.Resolve(v.caret, dir, count); ok {
		v.caret = pos
	}
}

// applySettings reconfigures layout after a live reload or resize and
// invalidates every visible controller.
func (v *viewer) applySettings(s config.Settings) {
	v.settings = s
	width, _ := v.screen.Size()
	wrap := s.WrapColumn
	if wrap == 0 {
		wrap = width
	}
	v.ts.SetTabWidth(s.TabWidth)
	v.ts.SetWrapWidth(wrap)
	v.set.LayoutChangedAll()
}

func (v *viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()

	v.scrollToCaret(height)

	y := 0
	for row := v.topRow; y < height; row++ {
		line, ok := v.tree.LineAt(row)
		if !ok {
			break
		}
		c := v.set.Acquire(line)
		c.SetSurface(repaintSurface{screen: v.screen})
		c.PrepareForDisplay()
		y = v.drawLine(line, c, y, width, height)
	}

	v.positionCursor(height)
	v.screen.Show()
}

// drawLine paints every fragment of a line, one screen row per
// fragment, stepping by grapheme cluster so wide and combining
// characters occupy the cells the typesetter measured for them.
// Returns the next free screen row.
func (v *viewer) drawLine(line document.Line, c *render.Controller, y, width, height int) int {
	text := []rune(c.Text())
	styles := core.ResolveSpans(v.theme.BaseStyle(), c.Spans(), len(text))

	for i := 0; i < v.ts.FragmentCount(line) && y < height; i++ {
		frag := v.ts.FragmentAt(line, i)
		x := 0
		for local := frag.Location; local < frag.End() && x < width; {
			start, end := v.buf.ClusterRange(line.Location + local)
			n := end - start
			if n < 1 {
				n = 1
			}
			if local+n > frag.End() {
				n = frag.End() - local
			}

			st := v.theme.BaseStyle()
			if local < len(styles) {
				st = styles[local]
			}

			if text[local] == '\t' {
				x += v.settings.TabWidth - x%v.settings.TabWidth
			} else {
				var comb []rune
				if n > 1 {
					comb = text[local+1 : local+n]
				}
				v.screen.SetContent(x, y, text[local], comb, toTcell(st))
				w := core.ClusterWidth(string(text[local : local+n]))
				if w < 1 {
					w = 1
				}
				x += w
			}
			local += n
		}
		y++
	}
	return y
}

// scrollToCaret keeps the caret's logical row inside the viewport.
// Scrolling is by logical line, which is close enough for a demo.
func (v *viewer) scrollToCaret(height int) {
	line, ok := v.tree.LineContaining(v.caret)
	if !ok {
		return
	}
	if line.Index < v.topRow {
		v.topRow = line.Index
	}
	if line.Index >= v.topRow+height {
		v.topRow = line.Index - height + 1
	}
}

func (v *viewer) positionCursor(height int) {
	line, ok := v.tree.LineContaining(v.caret)
	if !ok || line.Index < v.topRow {
		v.screen.HideCursor()
		return
	}

	// Screen row of the line start: sum of fragment counts above it.
	y := 0
	for row := v.topRow; row < line.Index; row++ {
		l, ok := v.tree.LineAt(row)
		if !ok {
			return
		}
		y += v.ts.FragmentCount(l)
	}

	local := v.caret - line.Location
	if c, ok := v.set.Get(line.Index); ok {
		if r, ok := c.CaretRect(local); ok {
			if y+r.Y < height {
				v.screen.ShowCursor(r.X, y+r.Y)
				return
			}
		}
	}
	v.screen.HideCursor()
}

func toTcell(st core.Style) tcell.Style {
	out := tcell.StyleDefault
	if st.Foreground.Set {
		out = out.Foreground(tcell.NewRGBColor(int32(st.Foreground.R), int32(st.Foreground.G), int32(st.Foreground.B)))
	}
	if st.Background.Set {
		out = out.Background(tcell.NewRGBColor(int32(st.Background.R), int32(st.Background.G), int32(st.Background.B)))
	}
	out = out.Bold(st.Attrs&core.AttrBold != 0)
	out = out.Italic(st.Attrs&core.AttrItalic != 0)
	out = out.Underline(st.Attrs&core.AttrUnderline != 0)
	out = out.Dim(st.Attrs&core.AttrDim != 0)
	out = out.Reverse(st.Attrs&core.AttrReverse != 0)
	out = out.StrikeThrough(st.Attrs&core.AttrStrikethrough != 0)
	return out
}

const sampleText = `package main

import "fmt"

// greet prints a friendly message.
func greet(name string) {
	fmt.Printf("hello, %s\n", name)
}

func main() {
	greet("caretline")
}
`
