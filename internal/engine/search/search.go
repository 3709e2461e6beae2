// Package search implements incremental substring search over rendered
// rows with directional wraparound and a reversible match overlay.
package search

import (
	"bytes"

	"github.com/dshills/keylite/internal/engine/editor"
	"github.com/dshills/keylite/internal/syntax"
)

// Signal tells a search step how the query prompt changed.
type Signal int

// Signals produced by the search prompt.
const (
	// SignalEdit means the query text changed; search restarts from the
	// top of the document, forward.
	SignalEdit Signal = iota
	// SignalForward continues forward from the last match.
	SignalForward
	// SignalBackward continues backward from the last match.
	SignalBackward
	// SignalAccept ends the session keeping the match overlay restored.
	SignalAccept
	// SignalCancel ends the session, restoring highlight tokens exactly.
	SignalCancel
)

// Session holds the state of one interactive search prompt. It lives from
// the prompt opening until accept or cancel.
type Session struct {
	ed *editor.Editor

	startRx  int
	startRow int
	forward  bool

	savedRow int
	savedHL  []syntax.Token

	// saved cursor and viewport for cancel
	origCy, origCx         int
	origRowOff, origColOff int
}

// NewSession begins a search over the editor's document.
func NewSession(ed *editor.Editor) *Session {
	s := &Session{ed: ed, forward: true}
	s.origCy, s.origCx = ed.Cursor()
	s.origRowOff, s.origColOff = ed.Offsets()
	return s
}

// Step processes one prompt keystroke: it first restores any previously
// saved highlight, then interprets the signal and scans for the next
// match. On a match it overlays Match tokens, moves the cursor to the
// match's raw column, and requests a scroll that places the match row at
// the top of the viewport. When no match is found after a full wraparound
// the state is left unchanged.
func (s *Session) Step(query []byte, sig Signal) {
	s.restoreSaved()

	switch sig {
	case SignalForward:
		s.forward = true
	case SignalBackward:
		s.forward = false
	case SignalAccept:
		s.reset()
		return
	case SignalCancel:
		s.reset()
		s.ed.SetCursor(s.origCy, s.origCx)
		s.ed.SetOffsets(s.origRowOff, s.origColOff)
		return
	default:
		s.reset()
	}

	if len(query) == 0 {
		return
	}

	doc := s.ed.Document()
	currentRx := s.startRx
	currentRow := s.startRow

	for i := 0; i < doc.RowCount(); i++ {
		row := doc.Row(currentRow)
		rendered := row.Rendered()

		off := -1
		if currentRx <= len(rendered) {
			off = bytes.Index(rendered[currentRx:], query)
		}
		if off >= 0 {
			matchRx := currentRx + off

			s.startRx = matchRx + len(query)
			s.startRow = currentRow

			s.ed.SetCursor(currentRow, doc.RxToCx(currentRow, matchRx))
			s.ed.ScrollMatchToTop()

			s.savedRow = currentRow
			s.savedHL = row.SnapshotHighlight()
			row.OverlayMatch(matchRx, len(query))
			return
		}

		currentRx = 0
		if s.forward {
			currentRow++
			if currentRow == doc.RowCount() {
				currentRow = 0
			}
		} else {
			currentRow--
			if currentRow < 0 {
				currentRow = doc.RowCount() - 1
			}
		}
	}
}

// Cancel restores the saved highlight and the original cursor/viewport.
func (s *Session) Cancel() {
	s.Step(nil, SignalCancel)
}

// restoreSaved undoes the previous match's overlay, if any.
func (s *Session) restoreSaved() {
	if s.savedHL == nil {
		return
	}
	if row := s.ed.Document().Row(s.savedRow); row != nil {
		row.RestoreHighlight(s.savedHL)
	}
	s.savedHL = nil
}

// reset returns the scan position to document start, direction forward.
func (s *Session) reset() {
	s.startRx = 0
	s.startRow = 0
	s.forward = true
}
