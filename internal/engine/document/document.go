// Package document implements the row-oriented text buffer: structural
// mutation, tab-expanded rendering, and highlight recomputation with
// cross-row cascade.
package document

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/keylite/internal/engine/layout"
	"github.com/dshills/keylite/internal/syntax"
)

// ErrOutOfRange is returned by structural operations given a row index
// outside the valid bounds. The document is left unmodified.
var ErrOutOfRange = errors.New("row index out of range")

// Document is an ordered sequence of rows. It owns all structural edits
// and keeps rendered bytes and highlight tokens consistent with the raw
// bytes before any mutation returns.
//
// A Document is exclusively owned by one editing session; methods are not
// safe for concurrent use.
type Document struct {
	rows     []*Row
	lang     *syntax.Language
	tabs     *layout.TabExpander
	dirty    bool
	revision string
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		tabs:     layout.NewTabExpander(layout.DefaultTabStop),
		revision: uuid.New().String(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewFromReader creates a document from plain-text content, one row per
// line with trailing newline (and carriage return) stripped.
func NewFromReader(r io.Reader, opts ...Option) (*Document, error) {
	d := New(opts...)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if err := d.InsertRow(d.RowCount(), []byte(line)); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	d.MarkClean()
	return d, nil
}

// RowCount returns the number of rows.
func (d *Document) RowCount() int {
	return len(d.rows)
}

// Row returns the row at index i, or nil if out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// Dirty reports whether the document has unsaved changes.
func (d *Document) Dirty() bool {
	return d.dirty
}

// MarkClean clears the dirty flag, e.g. after a successful save.
func (d *Document) MarkClean() {
	d.dirty = false
}

// RevisionID returns an opaque id that changes on every mutation.
func (d *Document) RevisionID() string {
	return d.revision
}

// TabStop returns the active tab stop width.
func (d *Document) TabStop() int {
	return d.tabs.TabStop()
}

// SetTabStop changes the tab stop width and re-renders every row.
func (d *Document) SetTabStop(width int) {
	if width == d.tabs.TabStop() {
		return
	}
	d.tabs = layout.NewTabExpander(width)
	for _, r := range d.rows {
		r.rendered = d.tabs.Expand(r.raw)
	}
	d.rehighlightAll()
}

// Language returns the active language rule set, or nil.
func (d *Document) Language() *syntax.Language {
	return d.lang
}

// SetLanguage selects a language rule set (nil for none) and re-highlights
// every row from scratch.
func (d *Document) SetLanguage(lang *syntax.Language) {
	d.lang = lang
	d.rehighlightAll()
}

// CxToRx converts a raw column in row i to its rendered column.
func (d *Document) CxToRx(i, cx int) int {
	r := d.Row(i)
	if r == nil {
		return 0
	}
	return d.tabs.CxToRx(r.raw, cx)
}

// RxToCx converts a rendered column in row i back to a raw column.
func (d *Document) RxToCx(i, rx int) int {
	r := d.Row(i)
	if r == nil {
		return 0
	}
	return d.tabs.RxToCx(r.raw, rx)
}

// InsertRow inserts a new row at index at holding a copy of raw.
func (d *Document) InsertRow(at int, raw []byte) error {
	if at < 0 || at > len(d.rows) {
		return ErrOutOfRange
	}

	row := &Row{
		index: at,
		raw:   append([]byte(nil), raw...),
	}

	d.rows = append(d.rows, nil)
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = row
	d.reindex(at + 1)

	row.rendered = d.tabs.Expand(row.raw)
	d.rehighlight(at)
	d.touch()
	return nil
}

// DeleteRow removes the row at index at, releasing its derived buffers.
func (d *Document) DeleteRow(at int) error {
	if at < 0 || at >= len(d.rows) {
		return ErrOutOfRange
	}

	copy(d.rows[at:], d.rows[at+1:])
	d.rows[len(d.rows)-1] = nil
	d.rows = d.rows[:len(d.rows)-1]
	d.reindex(at)

	// The row now at the deleted index may inherit different comment
	// state from its new predecessor.
	d.rehighlight(at)
	d.touch()
	return nil
}

// InsertChar inserts byte c into row i at column col. The column is
// clamped into [0, rowLen].
func (d *Document) InsertChar(i, col int, c byte) error {
	r := d.Row(i)
	if r == nil {
		return ErrOutOfRange
	}

	if col < 0 || col > len(r.raw) {
		col = len(r.raw)
	}

	r.raw = append(r.raw, 0)
	copy(r.raw[col+1:], r.raw[col:])
	r.raw[col] = c

	d.updateRow(r)
	d.touch()
	return nil
}

// DeleteChar removes the byte at column col of row i. Columns outside
// [0, rowLen) are a no-op.
func (d *Document) DeleteChar(i, col int) error {
	r := d.Row(i)
	if r == nil {
		return ErrOutOfRange
	}

	if col < 0 || col >= len(r.raw) {
		return nil
	}

	r.raw = append(r.raw[:col], r.raw[col+1:]...)

	d.updateRow(r)
	d.touch()
	return nil
}

// AppendString concatenates s to the end of row i.
func (d *Document) AppendString(i int, s []byte) error {
	r := d.Row(i)
	if r == nil {
		return ErrOutOfRange
	}

	r.raw = append(r.raw, s...)

	d.updateRow(r)
	d.touch()
	return nil
}

// SplitRow truncates row i at column col and inserts a new row directly
// below holding the suffix. The leading run of blanks (spaces and tabs) is
// propagated into the new row, capped at col; when col sits inside that
// run the original row is emptied rather than keeping a duplicate indent.
// Returns the column the cursor should take in the new row.
func (d *Document) SplitRow(i, col int) (int, error) {
	r := d.Row(i)
	if r == nil {
		return 0, ErrOutOfRange
	}

	if col < 0 {
		col = 0
	}
	if col > len(r.raw) {
		col = len(r.raw)
	}

	nblank := 0
	for _, c := range r.raw {
		if c != ' ' && c != '\t' {
			break
		}
		nblank++
	}
	if nblank > col {
		nblank = col
	}

	suffix := make([]byte, 0, nblank+len(r.raw)-col)
	suffix = append(suffix, r.raw[:nblank]...)
	suffix = append(suffix, r.raw[col:]...)

	if err := d.InsertRow(i+1, suffix); err != nil {
		return 0, err
	}

	if col == nblank {
		r.raw = r.raw[:0]
	} else {
		r.raw = r.raw[:col]
	}

	d.updateRow(r)
	d.touch()
	return nblank, nil
}

// JoinRow appends row i's bytes to row i-1 and deletes row i. Joining the
// first row is a no-op. Returns the previous row's length before the join,
// which is where the logical cursor lands.
func (d *Document) JoinRow(i int) (int, error) {
	if i <= 0 {
		return 0, nil
	}
	r := d.Row(i)
	if r == nil {
		return 0, ErrOutOfRange
	}

	prevEnd := len(d.rows[i-1].raw)
	if err := d.AppendString(i-1, r.raw); err != nil {
		return 0, err
	}
	if err := d.DeleteRow(i); err != nil {
		return 0, err
	}
	return prevEnd, nil
}

// Contents returns the document as a single blob: rows joined by '\n'
// with a trailing newline.
func (d *Document) Contents() []byte {
	total := 0
	for _, r := range d.rows {
		total += len(r.raw) + 1
	}

	buf := make([]byte, 0, total)
	for _, r := range d.rows {
		buf = append(buf, r.raw...)
		buf = append(buf, '\n')
	}
	return buf
}

// updateRow recomputes a row's rendered bytes and re-highlights it,
// cascading forward as needed. Called after every raw mutation.
func (d *Document) updateRow(r *Row) {
	r.rendered = d.tabs.Expand(r.raw)
	d.rehighlight(r.index)
}

// rehighlight recomputes highlight tokens from row index at forward.
// The first row is always recomputed; the cascade continues while a row's
// end-of-row comment flag changes and stops at the first stable row or at
// end of document. Iterative on purpose: one giant unclosed comment must
// not recurse per row.
func (d *Document) rehighlight(at int) {
	for i := at; i >= 0 && i < len(d.rows); i++ {
		r := d.rows[i]
		prevOpen := i > 0 && d.rows[i-1].openComment

		hl, open := syntax.HighlightRow(r.rendered, d.lang, prevOpen)
		changed := open != r.openComment
		r.hl = hl
		r.openComment = open

		if !changed {
			break
		}
	}
}

// rehighlightAll recomputes every row from scratch.
func (d *Document) rehighlightAll() {
	open := false
	for _, r := range d.rows {
		r.hl, r.openComment = syntax.HighlightRow(r.rendered, d.lang, open)
		open = r.openComment
	}
}

// reindex restores the index invariant for rows at and after from.
func (d *Document) reindex(from int) {
	for i := from; i < len(d.rows); i++ {
		d.rows[i].index = i
	}
}

// touch marks the document dirty and advances the revision id.
func (d *Document) touch() {
	d.dirty = true
	d.revision = uuid.New().String()
}
