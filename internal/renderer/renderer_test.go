package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keylite/internal/engine/document"
	"github.com/dshills/keylite/internal/engine/editor"
	"github.com/dshills/keylite/internal/renderer/backend"
	"github.com/dshills/keylite/internal/syntax"
)

func newSimRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("sim.Init() error = %v", err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(80, 24)

	return New(backend.NewTerminalWithScreen(sim)), sim
}

func newSimEditor(t *testing.T, lines ...string) *editor.Editor {
	t.Helper()
	doc := document.New()
	for i, line := range lines {
		if err := doc.InsertRow(i, []byte(line)); err != nil {
			t.Fatalf("InsertRow(%d) error = %v", i, err)
		}
	}
	return editor.New(doc, nil)
}

// screenLine reads one screen row as a trimmed string.
func screenLine(sim tcell.SimulationScreen, y int) string {
	w, _ := sim.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := sim.GetContent(x, y)
		sb.WriteRune(ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestRefreshDrawsRows(t *testing.T) {
	r, sim := newSimRenderer(t)
	ed := newSimEditor(t, "hello", "world")

	r.Refresh(ed)

	if got := screenLine(sim, 0); got != "hello" {
		t.Errorf("line 0 = %q, want \"hello\"", got)
	}
	if got := screenLine(sim, 1); got != "world" {
		t.Errorf("line 1 = %q, want \"world\"", got)
	}
	if got := screenLine(sim, 2); got != "~" {
		t.Errorf("line 2 = %q, want \"~\"", got)
	}
}

func TestRefreshWelcome(t *testing.T) {
	r, sim := newSimRenderer(t)
	ed := newSimEditor(t)

	r.Refresh(ed)

	// 22 text rows on a 24-line screen, welcome centered a third down
	line := screenLine(sim, 22/3)
	if !strings.Contains(line, "keylite editor -- version") {
		t.Errorf("welcome line = %q", line)
	}
	if !strings.HasPrefix(line, "~") {
		t.Errorf("welcome line should start with a tilde, got %q", line)
	}
}

func TestRefreshControlBytes(t *testing.T) {
	r, sim := newSimRenderer(t)
	ed := newSimEditor(t, "\x01")

	r.Refresh(ed)

	ch, _, style, _ := sim.GetContent(0, 0)
	if ch != 'A' {
		t.Errorf("control byte renders %q, want 'A'", ch)
	}
	_, _, attrs := style.Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Error("control byte should render reversed")
	}
}

func TestRefreshHighlightStyles(t *testing.T) {
	r, sim := newSimRenderer(t)
	ed := newSimEditor(t, "int x;")
	ed.SetFilename("a.c")

	r.Refresh(ed)

	_, _, style, _ := sim.GetContent(0, 0)
	if style != r.theme.StyleFor(syntax.TokenKeyword2) {
		t.Error("keyword cell should carry the keyword style")
	}
	_, _, plain, _ := sim.GetContent(4, 0)
	if plain != r.theme.StyleFor(syntax.TokenNormal) {
		t.Error("plain cell should carry the normal style")
	}
}

func TestStatusLine(t *testing.T) {
	r, sim := newSimRenderer(t)
	ed := newSimEditor(t, "int x;")
	ed.SetFilename("a.c")

	r.Refresh(ed)

	line := screenLine(sim, 22)
	if !strings.Contains(line, "a.c - 1 lines") {
		t.Errorf("status line = %q, want filename and line count", line)
	}
	if !strings.Contains(line, "c | 1/1") {
		t.Errorf("status line = %q, want language and position", line)
	}
}

func TestStatusLineNoName(t *testing.T) {
	r, sim := newSimRenderer(t)
	ed := newSimEditor(t)

	r.Refresh(ed)

	line := screenLine(sim, 22)
	if !strings.Contains(line, "[No Name]") {
		t.Errorf("status line = %q, want [No Name]", line)
	}
	if !strings.Contains(line, "no ft") {
		t.Errorf("status line = %q, want \"no ft\"", line)
	}
}

func TestStatusLineModified(t *testing.T) {
	r, sim := newSimRenderer(t)
	ed := newSimEditor(t, "x")
	ed.InsertChar('y')

	r.Refresh(ed)

	if line := screenLine(sim, 22); !strings.Contains(line, "(modified)") {
		t.Errorf("status line = %q, want modified marker", line)
	}
}

func TestMessageLineExpires(t *testing.T) {
	r, sim := newSimRenderer(t)
	ed := newSimEditor(t, "x")

	current := time.Now()
	r.now = func() time.Time { return current }

	r.SetMessage("hello %s", "there")
	r.Refresh(ed)
	if got := screenLine(sim, 23); got != "hello there" {
		t.Errorf("message line = %q, want \"hello there\"", got)
	}

	current = current.Add(messageTimeout + time.Second)
	r.Refresh(ed)
	if got := screenLine(sim, 23); got != "" {
		t.Errorf("message line = %q, want empty after timeout", got)
	}
}

func TestPromptOverridesMessage(t *testing.T) {
	r, sim := newSimRenderer(t)
	ed := newSimEditor(t, "x")

	r.SetMessage("old message")
	r.SetPrompt("Search: qu")
	r.Refresh(ed)
	if got := screenLine(sim, 23); got != "Search: qu" {
		t.Errorf("message line = %q, want the prompt", got)
	}

	r.SetPrompt("")
	r.Refresh(ed)
	if got := screenLine(sim, 23); got != "old message" {
		t.Errorf("message line = %q, want the message back", got)
	}
}

func TestThemeStyles(t *testing.T) {
	theme := DefaultTheme()
	if theme.StyleFor(syntax.TokenKeyword1) == theme.StyleFor(syntax.TokenNormal) {
		t.Error("keyword style should differ from normal")
	}
	if theme.StyleFor(syntax.TokenMatch) == theme.StyleFor(syntax.TokenNormal) {
		t.Error("match style should differ from normal")
	}
	// unknown tokens fall back to the default style
	if theme.StyleFor(syntax.Token(200)) != tcell.StyleDefault {
		t.Error("unknown token should use the default style")
	}
}
