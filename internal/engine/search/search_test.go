package search

import (
	"testing"

	"github.com/dshills/keylite/internal/engine/document"
	"github.com/dshills/keylite/internal/engine/editor"
	"github.com/dshills/keylite/internal/syntax"
)

func newEditor(t *testing.T, lines ...string) *editor.Editor {
	t.Helper()
	doc := document.New()
	for i, line := range lines {
		if err := doc.InsertRow(i, []byte(line)); err != nil {
			t.Fatalf("InsertRow(%d) error = %v", i, err)
		}
	}
	ed := editor.New(doc, nil)
	ed.SetSize(24, 80)
	return ed
}

func cursorRow(t *testing.T, ed *editor.Editor) int {
	t.Helper()
	cy, _ := ed.Cursor()
	return cy
}

func TestStepFindsFirstMatch(t *testing.T) {
	ed := newEditor(t, "no match", "a middle row", "another middle")
	s := NewSession(ed)

	s.Step([]byte("middle"), SignalEdit)

	cy, cx := ed.Cursor()
	if cy != 1 || cx != 2 {
		t.Errorf("cursor = (%d, %d), want (1, 2)", cy, cx)
	}

	hl := ed.Document().Row(1).Highlight()
	for i := 2; i < 8; i++ {
		if hl[i] != syntax.TokenMatch {
			t.Errorf("row 1 hl[%d] = %v, want TokenMatch", i, hl[i])
		}
	}
	if hl[0] == syntax.TokenMatch {
		t.Error("overlay must not extend before the match")
	}
}

func TestStepForwardAndWraparound(t *testing.T) {
	ed := newEditor(t, "no match", "a middle row", "another middle")
	s := NewSession(ed)

	s.Step([]byte("middle"), SignalEdit)
	if got := cursorRow(t, ed); got != 1 {
		t.Fatalf("first match row = %d, want 1", got)
	}

	s.Step([]byte("middle"), SignalForward)
	if got := cursorRow(t, ed); got != 2 {
		t.Fatalf("second match row = %d, want 2", got)
	}

	// the previous match's overlay is gone once the search moves on
	for _, tok := range ed.Document().Row(1).Highlight() {
		if tok == syntax.TokenMatch {
			t.Error("row 1 overlay should be restored after moving on")
			break
		}
	}

	s.Step([]byte("middle"), SignalForward)
	if got := cursorRow(t, ed); got != 1 {
		t.Fatalf("wraparound match row = %d, want 1", got)
	}
}

func TestStepBackward(t *testing.T) {
	ed := newEditor(t, "no match", "a middle row", "another middle")
	s := NewSession(ed)

	s.Step([]byte("middle"), SignalEdit) // row 1
	s.Step([]byte("middle"), SignalBackward)
	if got := cursorRow(t, ed); got != 2 {
		t.Errorf("backward from row 1 wraps to row %d, want 2", got)
	}
}

func TestStepMatchScrollsToTop(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[40] = "the needle here"
	ed := newEditor(t, lines...)
	s := NewSession(ed)

	s.Step([]byte("needle"), SignalEdit)
	ed.Scroll()
	rowOff, _ := ed.Offsets()
	if rowOff != 40 {
		t.Errorf("rowOff = %d, want 40 (match row at top)", rowOff)
	}
}

func TestStepNoMatchLeavesStateUnchanged(t *testing.T) {
	ed := newEditor(t, "aaa", "bbb")
	ed.SetCursor(1, 1)
	s := NewSession(ed)

	s.Step([]byte("zzz"), SignalEdit)
	cy, cx := ed.Cursor()
	if cy != 1 || cx != 1 {
		t.Errorf("cursor = (%d, %d), want unchanged (1, 1)", cy, cx)
	}
}

func TestStepEditRestartsFromTop(t *testing.T) {
	ed := newEditor(t, "abc one", "abc two")
	s := NewSession(ed)

	s.Step([]byte("abc"), SignalEdit)
	s.Step([]byte("abc"), SignalForward)
	if got := cursorRow(t, ed); got != 1 {
		t.Fatalf("forward match row = %d, want 1", got)
	}

	// a query edit restarts the scan at the top of the document
	s.Step([]byte("abc o"), SignalEdit)
	if got := cursorRow(t, ed); got != 0 {
		t.Errorf("match row after edit = %d, want 0", got)
	}
}

func TestCancelRestoresEverything(t *testing.T) {
	ed := newEditor(t, "int x;", "int match;")
	ed.SetFilename("a.c")
	ed.SetCursor(0, 3)
	ed.SetOffsets(0, 0)
	s := NewSession(ed)

	s.Step([]byte("match"), SignalEdit)
	if got := cursorRow(t, ed); got != 1 {
		t.Fatalf("match row = %d, want 1", got)
	}

	s.Cancel()

	cy, cx := ed.Cursor()
	if cy != 0 || cx != 3 {
		t.Errorf("cursor = (%d, %d), want restored (0, 3)", cy, cx)
	}
	rowOff, colOff := ed.Offsets()
	if rowOff != 0 || colOff != 0 {
		t.Errorf("offsets = (%d, %d), want restored (0, 0)", rowOff, colOff)
	}
	for _, tok := range ed.Document().Row(1).Highlight() {
		if tok == syntax.TokenMatch {
			t.Error("cancel should remove the match overlay")
			break
		}
	}
	// language tokens survive the overlay round trip
	hl := ed.Document().Row(1).Highlight()
	for i := 0; i < 3; i++ {
		if hl[i] != syntax.TokenKeyword2 {
			t.Errorf("row 1 hl[%d] = %v, want TokenKeyword2", i, hl[i])
		}
	}
}

func TestAcceptKeepsCursorAtMatch(t *testing.T) {
	ed := newEditor(t, "aaa", "needle")
	s := NewSession(ed)

	s.Step([]byte("needle"), SignalEdit)
	s.Step([]byte("needle"), SignalAccept)

	if got := cursorRow(t, ed); got != 1 {
		t.Errorf("cursor row after accept = %d, want 1", got)
	}
	for _, tok := range ed.Document().Row(1).Highlight() {
		if tok == syntax.TokenMatch {
			t.Error("accept should remove the match overlay")
			break
		}
	}
}

func TestEmptyQueryIsNoop(t *testing.T) {
	ed := newEditor(t, "abc")
	s := NewSession(ed)

	s.Step(nil, SignalEdit)
	cy, cx := ed.Cursor()
	if cy != 0 || cx != 0 {
		t.Errorf("cursor = (%d, %d), want (0, 0)", cy, cx)
	}
}
