package document

import "github.com/dshills/keylite/internal/syntax"

// Row holds one line of the document: the raw bytes, their tab-expanded
// rendered form, and one highlight token per rendered byte.
type Row struct {
	index       int
	raw         []byte
	rendered    []byte
	hl          []syntax.Token
	openComment bool // row ends inside an unterminated block comment
}

// Index returns the row's position in the document.
func (r *Row) Index() int {
	return r.index
}

// Raw returns the row's raw bytes. The slice is owned by the document and
// must not be mutated by callers.
func (r *Row) Raw() []byte {
	return r.raw
}

// Rendered returns the row's tab-expanded bytes.
func (r *Row) Rendered() []byte {
	return r.rendered
}

// Highlight returns the row's per-rendered-byte tokens.
func (r *Row) Highlight() []syntax.Token {
	return r.hl
}

// RawLen returns the raw byte length.
func (r *Row) RawLen() int {
	return len(r.raw)
}

// RenderLen returns the rendered byte length.
func (r *Row) RenderLen() int {
	return len(r.rendered)
}

// EndsInOpenComment reports whether the row ends inside an unterminated
// block comment.
func (r *Row) EndsInOpenComment() bool {
	return r.openComment
}

// SnapshotHighlight returns a copy of the row's current highlight tokens.
// Used by search to restore tokens after a match overlay.
func (r *Row) SnapshotHighlight() []syntax.Token {
	saved := make([]syntax.Token, len(r.hl))
	copy(saved, r.hl)
	return saved
}

// RestoreHighlight replaces the row's tokens with a previous snapshot.
// A snapshot of a different length is ignored; the row was re-rendered
// in between and already carries fresh tokens.
func (r *Row) RestoreHighlight(saved []syntax.Token) {
	if len(saved) != len(r.hl) {
		return
	}
	copy(r.hl, saved)
}

// OverlayMatch tags n rendered bytes starting at rx as a search match.
func (r *Row) OverlayMatch(rx, n int) {
	for i := rx; i < rx+n && i < len(r.hl); i++ {
		r.hl[i] = syntax.TokenMatch
	}
}
