package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T) *Terminal {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("sim.Init() error = %v", err)
	}
	t.Cleanup(sim.Fini)
	return NewTerminalWithScreen(sim)
}

// pollNonResize skips the initial resize events a fresh screen delivers.
func pollNonResize(t *testing.T, term *Terminal) Event {
	t.Helper()
	for i := 0; i < 10; i++ {
		ev := term.PollEvent()
		if ev.Type != EventResize {
			return ev
		}
	}
	t.Fatal("no non-resize event after 10 polls")
	return Event{}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyRune, KeyRune},
		{tcell.KeyEscape, KeyEscape},
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyBackspace, KeyBackspace},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyDelete, KeyDelete},
		{tcell.KeyPgUp, KeyPageUp},
		{tcell.KeyPgDn, KeyPageDown},
		{tcell.KeyCtrlQ, KeyCtrlQ},
		{tcell.KeyCtrlS, KeyCtrlS},
		{tcell.KeyCtrlF, KeyCtrlF},
		{tcell.KeyF1, KeyNone},
	}

	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConvertKeyRoundTrip(t *testing.T) {
	keys := []Key{
		KeyEscape, KeyEnter, KeyTab, KeyBackspace, KeyDelete,
		KeyHome, KeyEnd, KeyPageUp, KeyPageDown,
		KeyUp, KeyDown, KeyLeft, KeyRight,
		KeyCtrlC, KeyCtrlF, KeyCtrlK, KeyCtrlL, KeyCtrlQ, KeyCtrlS,
	}
	for _, k := range keys {
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("round trip %v -> %v", k, got)
		}
	}
}

func TestPostWakeEvent(t *testing.T) {
	term := newSimTerminal(t)

	term.PostEvent(Event{Type: EventWake, Tag: "config"})

	ev := pollNonResize(t, term)
	if ev.Type != EventWake {
		t.Fatalf("event type = %v, want EventWake", ev.Type)
	}
	if ev.Tag != "config" {
		t.Errorf("tag = %q, want \"config\"", ev.Tag)
	}
}

func TestPostKeyEvent(t *testing.T) {
	term := newSimTerminal(t)

	term.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'x'})

	ev := pollNonResize(t, term)
	if ev.Type != EventKey {
		t.Fatalf("event type = %v, want EventKey", ev.Type)
	}
	if ev.Key != KeyRune || ev.Rune != 'x' {
		t.Errorf("event = (%v, %q), want (KeyRune, 'x')", ev.Key, ev.Rune)
	}
}
