// Package syntax provides per-row syntax highlighting with cross-row state.
package syntax

// Token classifies a single rendered byte for styling.
// A row's highlight buffer holds exactly one Token per rendered byte.
type Token uint8

// Token values.
const (
	TokenNormal Token = iota
	TokenComment
	TokenMLComment
	TokenKeyword1
	TokenKeyword2
	TokenString
	TokenNumber
	TokenMatch // search match overlay
)

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case TokenNormal:
		return "normal"
	case TokenComment:
		return "comment"
	case TokenMLComment:
		return "comment.block"
	case TokenKeyword1:
		return "keyword"
	case TokenKeyword2:
		return "type"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenMatch:
		return "match"
	default:
		return "unknown"
	}
}

// IsComment returns true for single-line and block comment tokens.
func (t Token) IsComment() bool {
	return t == TokenComment || t == TokenMLComment
}
