package app

import (
	"fmt"

	"github.com/dshills/keylite/internal/renderer/backend"
)

// promptCallback observes every prompt keystroke with the input so far.
// Incremental search hangs its per-keystroke stepping off this.
type promptCallback func(input []byte, ev backend.Event)

// prompt runs a single-line input prompt on the message line. The format
// must contain one %s which is replaced with the input as it is typed.
// Returns nil if the user cancelled with Escape or Ctrl-C.
func (app *Application) prompt(format string, cb promptCallback) []byte {
	input := make([]byte, 0, 128)
	defer app.render.SetPrompt("")

	for {
		app.render.SetPrompt(fmt.Sprintf(format, input))
		app.render.Refresh(app.ed)

		ev := app.term.PollEvent()
		if ev.Type != backend.EventKey {
			continue
		}

		switch ev.Key {
		case backend.KeyEscape, backend.KeyCtrlC:
			if cb != nil {
				cb(input, ev)
			}
			return nil

		case backend.KeyEnter:
			if len(input) > 0 {
				if cb != nil {
					cb(input, ev)
				}
				return input
			}

		case backend.KeyBackspace:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
			if cb != nil {
				cb(input, ev)
			}

		case backend.KeyRune:
			if ev.Rune >= 32 && ev.Rune < 256 {
				input = append(input, byte(ev.Rune))
			}
			if cb != nil {
				cb(input, ev)
			}

		default:
			if cb != nil {
				cb(input, ev)
			}
		}
	}
}
