// Package editor ties the document to a cursor and viewport and exposes
// the editing operations driven by key input.
package editor

import (
	"github.com/dshills/keylite/internal/engine/document"
	"github.com/dshills/keylite/internal/syntax"
)

// Direction is a cursor movement direction.
type Direction int

// Cursor movement directions.
const (
	Left Direction = iota
	Right
	Up
	Down
)

// Editor owns the cursor, the desired render column for vertical movement,
// and the viewport offsets over one document.
type Editor struct {
	doc      *document.Document
	registry *syntax.Registry
	filename string

	cx, cy    int // cursor in raw coordinates
	desiredRx int // render column vertical movement aims for

	rowOff, colOff         int
	screenRows, screenCols int
}

// New creates an editor over the given document.
func New(doc *document.Document, registry *syntax.Registry) *Editor {
	if registry == nil {
		registry = syntax.DefaultRegistry()
	}
	return &Editor{doc: doc, registry: registry}
}

// Document returns the underlying document.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// SetSize sets the viewport dimensions in text cells.
func (e *Editor) SetSize(rows, cols int) {
	e.screenRows = rows
	e.screenCols = cols
}

// Size returns the viewport dimensions.
func (e *Editor) Size() (rows, cols int) {
	return e.screenRows, e.screenCols
}

// Cursor returns the cursor position: row and raw column.
func (e *Editor) Cursor() (cy, cx int) {
	return e.cy, e.cx
}

// SetCursor positions the cursor, clamping into the document.
func (e *Editor) SetCursor(cy, cx int) {
	if cy < 0 {
		cy = 0
	}
	if cy > e.doc.RowCount() {
		cy = e.doc.RowCount()
	}
	e.cy = cy

	rowLen := 0
	if r := e.doc.Row(e.cy); r != nil {
		rowLen = r.RawLen()
	}
	if cx < 0 {
		cx = 0
	}
	if cx > rowLen {
		cx = rowLen
	}
	e.cx = cx
	e.rememberRx()
}

// RenderCol returns the rendered column the cursor maps to.
func (e *Editor) RenderCol() int {
	return e.doc.CxToRx(e.cy, e.cx)
}

// Offsets returns the viewport row and column offsets.
func (e *Editor) Offsets() (rowOff, colOff int) {
	return e.rowOff, e.colOff
}

// SetOffsets restores saved viewport offsets (used by search cancel).
func (e *Editor) SetOffsets(rowOff, colOff int) {
	e.rowOff = rowOff
	e.colOff = colOff
}

// Filename returns the associated filename ("" for a new buffer).
func (e *Editor) Filename() string {
	return e.filename
}

// SetFilename records the filename and selects the matching language.
func (e *Editor) SetFilename(name string) {
	e.filename = name
	e.doc.SetLanguage(e.registry.Detect(name))
}

// LanguageName returns the active language name, or "" if none.
func (e *Editor) LanguageName() string {
	if lang := e.doc.Language(); lang != nil {
		return lang.Name
	}
	return ""
}

// MoveCursor moves the cursor one step, wrapping across line boundaries
// horizontally and preserving the desired render column vertically.
func (e *Editor) MoveCursor(dir Direction) {
	row := e.doc.Row(e.cy)

	switch dir {
	case Left:
		if e.cx > 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			if r := e.doc.Row(e.cy); r != nil {
				e.cx = r.RawLen()
			}
		}
	case Right:
		if row != nil && e.cx < row.RawLen() {
			e.cx++
		} else if row != nil && e.cx == row.RawLen() {
			e.cy++
			e.cx = 0
		}
	case Up:
		if e.cy > 0 {
			e.cy--
		}
	case Down:
		if e.cy < e.doc.RowCount() {
			e.cy++
		}
	}

	row = e.doc.Row(e.cy)

	if dir == Up || dir == Down {
		if row != nil {
			e.cx = e.doc.RxToCx(e.cy, e.desiredRx)
		} else {
			e.cx = 0
		}
	}

	// snap to the new row's length
	rowLen := 0
	if row != nil {
		rowLen = row.RawLen()
	}
	if e.cx > rowLen {
		e.cx = rowLen
	}

	if dir == Left || dir == Right {
		e.rememberRx()
	}
}

// InsertChar inserts a byte at the cursor, appending a row first when the
// cursor sits on the virtual line past end of document.
func (e *Editor) InsertChar(c byte) {
	if e.cy == e.doc.RowCount() {
		// insert errors are impossible at the append index
		_ = e.doc.InsertRow(e.doc.RowCount(), nil)
	}
	_ = e.doc.InsertChar(e.cy, e.cx, c)
	e.cx++
	e.rememberRx()
}

// InsertNewline splits the current row at the cursor, carrying the leading
// indent into the new row.
func (e *Editor) InsertNewline() {
	newCx := 0
	if e.cx == 0 {
		_ = e.doc.InsertRow(e.cy, nil)
	} else {
		newCx, _ = e.doc.SplitRow(e.cy, e.cx)
	}
	e.cy++
	e.cx = newCx
	e.rememberRx()
}

// DeleteChar deletes the byte left of the cursor. At column 0 it joins the
// current row into the previous one and places the cursor at the previous
// row's old end.
func (e *Editor) DeleteChar() {
	if e.cy == e.doc.RowCount() {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}

	if e.cx > 0 {
		_ = e.doc.DeleteChar(e.cy, e.cx-1)
		e.cx--
	} else {
		prevEnd, _ := e.doc.JoinRow(e.cy)
		e.cy--
		e.cx = prevEnd
	}
	e.rememberRx()
}

// DeleteForward deletes the byte under the cursor.
func (e *Editor) DeleteForward() {
	e.MoveCursor(Right)
	e.DeleteChar()
}

// DeleteRow deletes the row under the cursor.
func (e *Editor) DeleteRow() {
	if err := e.doc.DeleteRow(e.cy); err != nil {
		return
	}
	if e.cy > e.doc.RowCount() {
		e.cy = e.doc.RowCount()
	}
	rowLen := 0
	if r := e.doc.Row(e.cy); r != nil {
		rowLen = r.RawLen()
	}
	if e.cx > rowLen {
		e.cx = rowLen
	}
	e.rememberRx()
}

// Home moves the cursor to column 0.
func (e *Editor) Home() {
	e.cx = 0
	e.rememberRx()
}

// End moves the cursor to the end of the current row.
func (e *Editor) End() {
	if r := e.doc.Row(e.cy); r != nil {
		e.cx = r.RawLen()
	}
	e.rememberRx()
}

// PageUp moves the cursor one screen up.
func (e *Editor) PageUp() {
	e.cy = e.rowOff
	for i := 0; i < e.screenRows; i++ {
		e.MoveCursor(Up)
	}
}

// PageDown moves the cursor one screen down.
func (e *Editor) PageDown() {
	e.cy = e.rowOff + e.screenRows - 1
	if e.cy > e.doc.RowCount() {
		e.cy = e.doc.RowCount()
	}
	for i := 0; i < e.screenRows; i++ {
		e.MoveCursor(Down)
	}
}

// Scroll clamps the viewport offsets so the cursor is visible. Called
// before every screen refresh.
func (e *Editor) Scroll() {
	rx := 0
	if e.cy < e.doc.RowCount() {
		rx = e.doc.CxToRx(e.cy, e.cx)
	}

	if e.cy < e.rowOff {
		e.rowOff = e.cy
	}
	if e.screenRows > 0 && e.cy >= e.rowOff+e.screenRows {
		e.rowOff = e.cy - e.screenRows + 1
	}
	if rx < e.colOff {
		e.colOff = rx
	}
	if e.screenCols > 0 && rx >= e.colOff+e.screenCols {
		e.colOff = rx - e.screenCols + 1
	}
}

// ScrollMatchToTop pushes the row offset past the last row so the next
// Scroll lands the cursor row at the top of the viewport.
func (e *Editor) ScrollMatchToTop() {
	e.rowOff = e.doc.RowCount()
}

// rememberRx records the cursor's render column as the target for
// subsequent vertical movement.
func (e *Editor) rememberRx() {
	if e.cy < e.doc.RowCount() {
		e.desiredRx = e.doc.CxToRx(e.cy, e.cx)
	} else {
		e.desiredRx = 0
	}
}
