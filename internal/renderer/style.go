package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keylite/internal/syntax"
)

// Theme maps highlight tokens to terminal styles.
type Theme struct {
	styles map[syntax.Token]tcell.Style
}

// DefaultTheme returns the built-in color theme.
func DefaultTheme() Theme {
	return Theme{styles: map[syntax.Token]tcell.Style{
		syntax.TokenNormal:    tcell.StyleDefault,
		syntax.TokenComment:   tcell.StyleDefault.Foreground(tcell.ColorTeal),
		syntax.TokenMLComment: tcell.StyleDefault.Foreground(tcell.ColorTeal),
		syntax.TokenKeyword1:  tcell.StyleDefault.Foreground(tcell.ColorOlive),
		syntax.TokenKeyword2:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		syntax.TokenString:    tcell.StyleDefault.Foreground(tcell.ColorPurple),
		syntax.TokenNumber:    tcell.StyleDefault.Foreground(tcell.ColorMaroon),
		syntax.TokenMatch:     tcell.StyleDefault.Foreground(tcell.ColorNavy).Reverse(true),
	}}
}

// StyleFor returns the style for a token.
func (t Theme) StyleFor(tok syntax.Token) tcell.Style {
	if s, ok := t.styles[tok]; ok {
		return s
	}
	return tcell.StyleDefault
}
