// Package renderer assembles the screen: visible row slices with their
// highlight styling, the status line, and the message line.
package renderer

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keylite/internal/engine/editor"
	"github.com/dshills/keylite/internal/renderer/backend"
)

// Version is the display version shown on the welcome line.
const Version = "0.1.0"

// messageTimeout is how long a status message stays visible.
const messageTimeout = 5 * time.Second

// Renderer draws an editor onto a backend.
type Renderer struct {
	backend backend.Backend
	theme   Theme

	message     string
	messageTime time.Time

	// prompt overrides the message line while a prompt is active
	prompt string

	now func() time.Time // test hook
}

// New creates a renderer over the given backend.
func New(b backend.Backend) *Renderer {
	return &Renderer{
		backend: b,
		theme:   DefaultTheme(),
		now:     time.Now,
	}
}

// SetMessage sets the status message shown under the status line.
func (r *Renderer) SetMessage(format string, args ...any) {
	r.message = fmt.Sprintf(format, args...)
	r.messageTime = r.now()
}

// SetPrompt sets the prompt line text; an empty string clears it.
func (r *Renderer) SetPrompt(text string) {
	r.prompt = text
}

// Refresh redraws the whole screen for the given editor state.
// The bottom two lines are the status line and the message line.
func (r *Renderer) Refresh(ed *editor.Editor) {
	width, height := r.backend.Size()
	textRows := height - 2
	if textRows < 0 {
		textRows = 0
	}
	ed.SetSize(textRows, width)
	ed.Scroll()

	r.backend.Clear()
	r.drawRows(ed, width, textRows)
	r.drawStatusLine(ed, width, textRows)
	r.drawMessageLine(width, textRows+1)

	cy, _ := ed.Cursor()
	rowOff, colOff := ed.Offsets()
	r.backend.ShowCursor(ed.RenderCol()-colOff, cy-rowOff)
	r.backend.Show()
}

// drawRows draws the visible slice of each on-screen row.
func (r *Renderer) drawRows(ed *editor.Editor, width, textRows int) {
	doc := ed.Document()
	rowOff, colOff := ed.Offsets()

	for y := 0; y < textRows; y++ {
		fileRow := y + rowOff

		row := doc.Row(fileRow)
		if row == nil {
			if doc.RowCount() == 0 && y == textRows/3 {
				r.drawWelcome(width, y)
			} else {
				r.backend.SetContent(0, y, '~', tcell.StyleDefault)
			}
			continue
		}

		rendered := row.Rendered()
		hl := row.Highlight()

		x := 0
		for j := colOff; j < len(rendered) && x < width; j++ {
			c := rendered[j]
			style := r.theme.StyleFor(hl[j])

			if c < 32 || c == 127 {
				// control bytes display reversed as @-letters
				sym := '?'
				if c < 26 {
					sym = rune('@' + c)
				}
				r.backend.SetContent(x, y, sym, tcell.StyleDefault.Reverse(true))
			} else {
				r.backend.SetContent(x, y, rune(c), style)
			}
			x++
		}
	}
}

// drawWelcome centers the welcome line on an empty document.
func (r *Renderer) drawWelcome(width, y int) {
	welcome := fmt.Sprintf("keylite editor -- version %s", Version)
	if len(welcome) > width {
		welcome = welcome[:width]
	}

	padding := (width - len(welcome)) / 2
	x := 0
	if padding > 0 {
		r.backend.SetContent(0, y, '~', tcell.StyleDefault)
		x = padding
	}
	for _, ch := range welcome {
		r.backend.SetContent(x, y, ch, tcell.StyleDefault)
		x++
	}
}

// drawMessageLine draws the message (or active prompt) on row y.
func (r *Renderer) drawMessageLine(width, y int) {
	text := r.prompt
	if text == "" {
		if r.now().Sub(r.messageTime) >= messageTimeout {
			return
		}
		text = r.message
	}
	if len(text) > width {
		text = text[:width]
	}
	for i, ch := range text {
		r.backend.SetContent(i, y, ch, tcell.StyleDefault)
	}
}
