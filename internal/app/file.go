package app

import (
	"fmt"
	"os"

	"github.com/dshills/keylite/internal/engine/document"
)

// openFile reads filename into a new document, one row per line. A file
// that does not exist yet yields an empty document.
func openFile(filename string, opts ...document.Option) (*document.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return document.New(opts...), nil
		}
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()

	doc, err := document.NewFromReader(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return doc, nil
}

// save writes the document to its filename, prompting for one first if
// the buffer is unnamed.
func (app *Application) save() {
	if app.ed.Filename() == "" {
		name := app.prompt("Save as: %s (ESC to cancel)", nil)
		if name == nil {
			app.render.SetMessage("Save aborted")
			return
		}
		app.ed.SetFilename(string(name))
	}

	doc := app.ed.Document()
	data := doc.Contents()

	if err := os.WriteFile(app.ed.Filename(), data, 0o644); err != nil {
		app.logger.WithComponent("file").Error("save %s: %v", app.ed.Filename(), err)
		app.render.SetMessage("Can't save! I/O error: %v", err)
		return
	}

	doc.MarkClean()
	app.logger.WithComponent("file").Info("saved %s (%d bytes)", app.ed.Filename(), len(data))
	app.render.SetMessage("%d bytes written to disk", len(data))
}
