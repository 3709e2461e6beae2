package document

import (
	"github.com/dshills/keylite/internal/engine/layout"
	"github.com/dshills/keylite/internal/syntax"
)

// Option configures a Document at construction.
type Option func(*Document)

// WithTabStop sets the tab stop width.
func WithTabStop(width int) Option {
	return func(d *Document) {
		d.tabs = layout.NewTabExpander(width)
	}
}

// WithLanguage sets the active language rule set.
func WithLanguage(lang *syntax.Language) Option {
	return func(d *Document) {
		d.lang = lang
	}
}
