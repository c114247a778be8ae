package highlight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emoor/caretline/internal/core"
)

func TestDefaultTheme(t *testing.T) {
	th := DefaultTheme()
	if !th.StyleFor(TokenKeyword).Attrs.Has(core.AttrBold) {
		t.Error("keywords should be bold in the default theme")
	}
	if th.StyleFor(TokenNone).Foreground != th.Foreground {
		t.Error("unknown tokens fall back to the theme foreground")
	}
	if !th.Selection.Set {
		t.Error("selection color should be derived")
	}
	if !th.LineHighlight.Set {
		t.Error("line highlight color should be derived")
	}
}

func TestParseTheme(t *testing.T) {
	data := []byte(`{
		"name": "test",
		"colors": {"foreground": "#ffffff", "background": "#000000"},
		"tokens": {
			"keyword": {"color": "#ff0000", "bold": true},
			"comment": {"color": "#00ff00", "italic": true},
			"bogus":   {"color": "#0000ff"}
		}
	}`)

	th, err := parseTheme(data)
	if err != nil {
		t.Fatalf("parseTheme: %v", err)
	}
	if th.Name != "test" {
		t.Errorf("name = %q", th.Name)
	}
	kw := th.StyleFor(TokenKeyword)
	if !kw.Foreground.Equal(core.RGB(255, 0, 0)) || !kw.Attrs.Has(core.AttrBold) {
		t.Errorf("keyword style = %+v", kw)
	}
	cm := th.StyleFor(TokenComment)
	if !cm.Attrs.Has(core.AttrItalic) {
		t.Errorf("comment style = %+v", cm)
	}
	// Selection derives from the new base colors.
	if !th.Selection.Set {
		t.Error("selection should be derived")
	}
}

func TestParseThemeErrors(t *testing.T) {
	if _, err := parseTheme([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
	bad := []byte(`{"tokens": {"keyword": {"color": "red"}}}`)
	if _, err := parseTheme(bad); err == nil {
		t.Error("expected error for malformed color")
	}
}

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.json")
	content := `{"name": "disk", "tokens": {"string": {"color": "#112233"}}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if th.Name != "disk" {
		t.Errorf("name = %q", th.Name)
	}
	if !th.StyleFor(TokenString).Foreground.Equal(core.RGB(0x11, 0x22, 0x33)) {
		t.Errorf("string style = %+v", th.StyleFor(TokenString))
	}

	if _, err := LoadTheme(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
