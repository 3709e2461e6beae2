package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keylite/internal/engine/editor"
)

// drawStatusLine draws the reverse-video status line on row y: filename,
// line count and modified marker on the left, language and cursor
// position on the right.
func (r *Renderer) drawStatusLine(ed *editor.Editor, width, y int) {
	style := tcell.StyleDefault.Reverse(true)
	doc := ed.Document()

	name := ed.Filename()
	if name == "" {
		name = "[No Name]"
	}
	if len(name) > 20 {
		name = name[:20]
	}

	modified := ""
	if doc.Dirty() {
		modified = " (modified)"
	}
	left := fmt.Sprintf(" %s - %d lines%s", name, doc.RowCount(), modified)

	lang := ed.LanguageName()
	if lang == "" {
		lang = "no ft"
	}
	cy, _ := ed.Cursor()
	right := fmt.Sprintf("%s | %d/%d ", lang, cy+1, doc.RowCount())

	if len(left) > width {
		left = left[:width]
	}

	x := 0
	for _, ch := range left {
		r.backend.SetContent(x, y, ch, style)
		x++
	}
	for x < width {
		if width-x == len(right) {
			for _, ch := range right {
				r.backend.SetContent(x, y, ch, style)
				x++
			}
			break
		}
		r.backend.SetContent(x, y, ' ', style)
		x++
	}
}
