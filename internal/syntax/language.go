package syntax

import (
	"fmt"
	"strings"
	"sync"
)

// Flags control which optional highlight passes run for a language.
type Flags uint8

const (
	// HighlightNumbers enables numeric literal highlighting.
	HighlightNumbers Flags = 1 << iota
	// HighlightStrings enables quoted string highlighting.
	HighlightStrings
)

// Has returns true if all given flags are set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Language is an immutable highlighting rule set for one file type.
type Language struct {
	// Name is the display name shown in the status line.
	Name string

	// FileMatch holds filename patterns. A pattern starting with '.'
	// matches as a file-extension suffix; any other pattern matches as
	// a substring anywhere in the filename.
	FileMatch []string

	// CommentPrefix starts a comment running to end of row ("" to disable).
	CommentPrefix string

	// BlockCommentStart and BlockCommentEnd delimit multi-line comments
	// ("" to disable). Both must be set together.
	BlockCommentStart string
	BlockCommentEnd   string

	// Keywords is the primary keyword group, scanned in declaration order.
	Keywords []string

	// Types is the secondary keyword group, scanned after Keywords.
	Types []string

	// Flags select the optional number/string passes.
	Flags Flags
}

// Validate reports static configuration errors in the rule set.
func (l *Language) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("language has no name")
	}
	if (l.BlockCommentStart == "") != (l.BlockCommentEnd == "") {
		return fmt.Errorf("language %s: block comment markers must be set together", l.Name)
	}
	for _, kw := range l.Keywords {
		if kw == "" {
			return fmt.Errorf("language %s: empty keyword", l.Name)
		}
	}
	for _, kw := range l.Types {
		if kw == "" {
			return fmt.Errorf("language %s: empty type keyword", l.Name)
		}
	}
	return nil
}

// matches returns true if the filename matches one of the language's patterns.
func (l *Language) matches(filename string) bool {
	for _, pat := range l.FileMatch {
		if pat == "" {
			continue
		}
		if pat[0] == '.' {
			if strings.HasSuffix(filename, pat) {
				return true
			}
		} else if strings.Contains(filename, pat) {
			return true
		}
	}
	return false
}

// Registry maps filenames and identifiers to language rule sets.
// Languages are consulted in registration order.
type Registry struct {
	mu    sync.RWMutex
	langs []*Language
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a language after validating it.
func (r *Registry) Register(l *Language) error {
	if err := l.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.langs = append(r.langs, l)
	return nil
}

// Detect returns the first registered language matching the filename,
// or nil if none matches.
func (r *Registry) Detect(filename string) *Language {
	if filename == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.langs {
		if l.matches(filename) {
			return l
		}
	}
	return nil
}

// ByName returns the language with the given name.
func (r *Registry) ByName(name string) (*Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.langs {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Names returns all registered language names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.langs))
	for _, l := range r.langs {
		names = append(names, l.Name)
	}
	return names
}

// CLanguage returns the built-in C rule set.
func CLanguage() *Language {
	return &Language{
		Name:              "c",
		FileMatch:         []string{".c", ".h", ".cpp", ".hpp"},
		CommentPrefix:     "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Keywords: []string{
			"switch", "if", "while", "for", "break", "continue", "return",
			"else", "struct", "union", "typedef", "static", "enum", "class",
			"case",
		},
		Types: []string{
			"int", "long", "double", "float", "char", "unsigned", "signed",
			"void",
		},
		Flags: HighlightNumbers | HighlightStrings,
	}
}

// GoLanguage returns the built-in Go rule set.
func GoLanguage() *Language {
	return &Language{
		Name:              "go",
		FileMatch:         []string{".go"},
		CommentPrefix:     "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select",
			"struct", "switch", "type", "var",
		},
		Types: []string{
			"bool", "byte", "complex64", "complex128", "error", "float32",
			"float64", "int", "int8", "int16", "int32", "int64", "rune",
			"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
			"true", "false", "nil", "iota", "any",
		},
		Flags: HighlightNumbers | HighlightStrings,
	}
}

// DefaultRegistry returns a registry with the built-in languages.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Built-in rule sets are known valid.
	_ = r.Register(CLanguage())
	_ = r.Register(GoLanguage())
	return r
}
