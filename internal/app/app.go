package app

import (
	"errors"
	"fmt"

	"github.com/dshills/keylite/internal/config"
	"github.com/dshills/keylite/internal/engine/document"
	"github.com/dshills/keylite/internal/engine/editor"
	"github.com/dshills/keylite/internal/engine/search"
	"github.com/dshills/keylite/internal/renderer"
	"github.com/dshills/keylite/internal/renderer/backend"
	"github.com/dshills/keylite/internal/syntax"
)

// Options configures the application at startup.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// LogLevel overrides the configured log level (debug/info/warn/error).
	LogLevel string

	// LogFile overrides the configured log output path.
	LogFile string

	// Filename is the file to open; "" starts an empty buffer.
	Filename string
}

// Application wires the document engine, renderer, and terminal backend
// together and runs the synchronous event loop. One event is processed to
// completion before the next is accepted; the document is never touched
// off this loop.
type Application struct {
	opts   Options
	cfg    config.Config
	logger *Logger

	term   backend.Backend
	render *renderer.Renderer
	ed     *editor.Editor

	configPath string
	watcher    *config.Watcher
	quitTimes  int
}

// New creates an application from options, loading configuration and the
// requested file.
func New(opts Options) (*Application, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Logging, opts)
	if err != nil {
		return nil, err
	}

	app := &Application{
		opts:       opts,
		cfg:        cfg,
		logger:     logger,
		configPath: configPath,
		quitTimes:  cfg.Editor.QuitTimes,
	}

	doc, err := app.openDocument(opts.Filename)
	if err != nil {
		return nil, err
	}

	app.ed = editor.New(doc, syntax.DefaultRegistry())
	if opts.Filename != "" {
		app.ed.SetFilename(opts.Filename)
	}

	return app, nil
}

// newLogger builds the logger from config plus flag overrides.
func newLogger(cfg config.LoggingConfig, opts Options) (*Logger, error) {
	path := cfg.File
	if opts.LogFile != "" {
		path = opts.LogFile
	}
	if path == "" {
		return NullLogger, nil
	}

	level := cfg.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	return NewFileLogger(path, ParseLogLevel(level))
}

// SetBackend attaches the terminal backend and builds the renderer.
func (app *Application) SetBackend(b backend.Backend) {
	app.term = b
	app.render = renderer.New(b)
}

// Editor returns the application's editor, for tests and collaborators.
func (app *Application) Editor() *editor.Editor {
	return app.ed
}

// Run initializes the terminal and processes events until quit.
func (app *Application) Run() error {
	if app.term == nil {
		return errors.New("no terminal backend set")
	}
	if err := app.term.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer app.term.Shutdown()

	app.startConfigWatcher()
	defer app.stopConfigWatcher()

	app.logger.WithComponent("app").Info("editor started, file=%q", app.opts.Filename)
	app.render.SetMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")

	for {
		app.render.Refresh(app.ed)

		ev := app.term.PollEvent()
		if err := app.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				app.logger.WithComponent("app").Info("editor exiting")
				return nil
			}
			return err
		}
	}
}

// handleEvent dispatches one terminal event.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		// the next refresh picks up the new size
		return nil
	case backend.EventWake:
		if ev.Tag == "config" {
			app.reloadConfig()
		}
		return nil
	case backend.EventKey:
		return app.handleKey(ev)
	default:
		return nil
	}
}

// handleKey applies one abstract key event to the editor.
func (app *Application) handleKey(ev backend.Event) error {
	// any key other than quit re-arms the quit confirmation
	if ev.Key != backend.KeyCtrlQ {
		app.quitTimes = app.cfg.Editor.QuitTimes
	}

	switch ev.Key {
	case backend.KeyCtrlQ:
		if app.ed.Document().Dirty() && app.quitTimes > 0 {
			plural := "s"
			if app.quitTimes == 1 {
				plural = ""
			}
			app.render.SetMessage(
				"File has unsaved changes. Press Ctrl-Q %d more time%s to quit.",
				app.quitTimes, plural)
			app.quitTimes--
			return nil
		}
		return ErrQuit

	case backend.KeyCtrlS:
		app.save()

	case backend.KeyCtrlF:
		app.find()

	case backend.KeyCtrlK:
		app.ed.DeleteRow()

	case backend.KeyEnter:
		app.ed.InsertNewline()

	case backend.KeyBackspace:
		app.ed.DeleteChar()

	case backend.KeyDelete:
		app.ed.DeleteForward()

	case backend.KeyEscape, backend.KeyCtrlL, backend.KeyCtrlC:
		// ignored

	case backend.KeyHome:
		app.ed.Home()
	case backend.KeyEnd:
		app.ed.End()
	case backend.KeyPageUp:
		app.ed.PageUp()
	case backend.KeyPageDown:
		app.ed.PageDown()

	case backend.KeyUp:
		app.ed.MoveCursor(editor.Up)
	case backend.KeyDown:
		app.ed.MoveCursor(editor.Down)
	case backend.KeyLeft:
		app.ed.MoveCursor(editor.Left)
	case backend.KeyRight:
		app.ed.MoveCursor(editor.Right)

	case backend.KeyTab:
		app.ed.InsertChar('\t')

	case backend.KeyRune:
		// the buffer model is byte-oriented
		if ev.Rune > 0 && ev.Rune < 256 {
			app.ed.InsertChar(byte(ev.Rune))
		}
	}

	return nil
}

// find runs an interactive incremental search prompt.
func (app *Application) find() {
	session := search.NewSession(app.ed)

	query := app.prompt("Search: %s (ESC/Ctrl-C cancels, Arrows continue)",
		func(input []byte, ev backend.Event) {
			session.Step(input, searchSignal(ev))
		})

	if query == nil {
		app.logger.WithComponent("search").Debug("search cancelled")
	}
}

// searchSignal maps a prompt keystroke to a search signal.
func searchSignal(ev backend.Event) search.Signal {
	switch ev.Key {
	case backend.KeyRight, backend.KeyDown:
		return search.SignalForward
	case backend.KeyLeft, backend.KeyUp:
		return search.SignalBackward
	case backend.KeyEscape, backend.KeyCtrlC:
		return search.SignalCancel
	case backend.KeyRune, backend.KeyBackspace:
		return search.SignalEdit
	default:
		return search.SignalAccept
	}
}

// reloadConfig re-reads the config file and applies live-updatable
// settings.
func (app *Application) reloadConfig() {
	cfg, err := config.Load(app.configPath)
	if err != nil {
		app.logger.WithComponent("config").Error("reload failed: %v", err)
		app.render.SetMessage("config reload failed")
		return
	}

	app.cfg = cfg
	app.quitTimes = cfg.Editor.QuitTimes
	app.ed.Document().SetTabStop(cfg.Editor.TabStop)

	app.logger.WithComponent("config").Info("config reloaded from %s", app.configPath)
	app.render.SetMessage("configuration reloaded")
}

// startConfigWatcher watches the config file and posts a wake event so
// the reload happens on the event loop thread.
func (app *Application) startConfigWatcher() {
	if app.configPath == "" {
		return
	}

	w, err := config.Watch(app.configPath, func() {
		app.term.PostEvent(backend.Event{Type: backend.EventWake, Tag: "config"})
	})
	if err != nil {
		app.logger.WithComponent("config").Warn("config watch unavailable: %v", err)
		return
	}
	app.watcher = w
}

func (app *Application) stopConfigWatcher() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
}

// openDocument loads the named file, or returns an empty document for ""
// or a file that does not exist yet.
func (app *Application) openDocument(filename string) (*document.Document, error) {
	tab := document.WithTabStop(app.cfg.Editor.TabStop)
	if filename == "" {
		return document.New(tab), nil
	}
	return openFile(filename, tab)
}
