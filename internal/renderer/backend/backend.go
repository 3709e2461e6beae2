// Package backend provides the terminal backend abstraction: raw screen
// access and decoding of terminal input into abstract key events.
package backend

import "github.com/gdamore/tcell/v2"

// EventType identifies the type of terminal event.
type EventType int

// Event types.
const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventWake is posted from outside the terminal (e.g. a config
	// reload) to wake the event loop on its own thread.
	EventWake
)

// Key represents an abstract keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlF
	KeyCtrlK
	KeyCtrlL
	KeyCtrlQ
	KeyCtrlS
)

// Event represents a decoded terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int

	// Wake event payload tag (free-form, e.g. "config")
	Tag string
}

// Backend is the terminal surface the renderer draws on and the source of
// input events. Implemented by Terminal over tcell.
type Backend interface {
	Init() error
	Shutdown()
	Size() (width, height int)
	SetContent(x, y int, ch rune, style tcell.Style)
	Clear()
	Show()
	ShowCursor(x, y int)
	HideCursor()
	PollEvent() Event
	PostEvent(Event)
	Beep()
}
