// Package layout provides tab expansion and raw/render column mapping.
package layout

// DefaultTabStop is the default tab stop width.
const DefaultTabStop = 8

// TabExpander expands tabs and maps between raw and rendered columns.
// The model is byte-oriented: every non-tab byte renders one column wide.
type TabExpander struct {
	tabStop int
}

// NewTabExpander creates a tab expander with the given tab stop width.
func NewTabExpander(tabStop int) *TabExpander {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	return &TabExpander{tabStop: tabStop}
}

// TabStop returns the current tab stop width.
func (t *TabExpander) TabStop() int {
	return t.tabStop
}

// Expand returns the rendered form of raw: non-tab bytes copy through, a tab
// emits spaces up to the next tab stop, always at least one.
func (t *TabExpander) Expand(raw []byte) []byte {
	tabs := 0
	for _, c := range raw {
		if c == '\t' {
			tabs++
		}
	}

	rendered := make([]byte, 0, len(raw)+tabs*(t.tabStop-1))
	for _, c := range raw {
		if c == '\t' {
			rendered = append(rendered, ' ')
			for len(rendered)%t.tabStop != 0 {
				rendered = append(rendered, ' ')
			}
		} else {
			rendered = append(rendered, c)
		}
	}
	return rendered
}

// CxToRx converts a raw column to the rendered column it maps to.
func (t *TabExpander) CxToRx(raw []byte, cx int) int {
	rx := 0
	for j := 0; j < cx && j < len(raw); j++ {
		if raw[j] == '\t' {
			rx += (t.tabStop - 1) - (rx % t.tabStop)
		}
		rx++
	}
	return rx
}

// RxToCx converts a rendered column back to a raw column: the first raw index
// whose cumulative rendered width exceeds rxTarget, or the row length if none.
func (t *TabExpander) RxToCx(raw []byte, rxTarget int) int {
	rx := 0
	for cx := 0; cx < len(raw); cx++ {
		if raw[cx] == '\t' {
			rx += (t.tabStop - 1) - (rx % t.tabStop)
		}
		rx++

		if rx > rxTarget {
			return cx
		}
	}
	return len(raw)
}
