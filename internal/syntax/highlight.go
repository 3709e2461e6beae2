package syntax

import "bytes"

// separators is the fixed punctuation set that delimits keywords and numbers.
const separators = ",.()+-/*=~%<>[];"

// IsSeparator returns true for whitespace, NUL, and the fixed punctuation set.
func IsSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0:
		return true
	}
	return bytes.IndexByte([]byte(separators), c) >= 0
}

// HighlightRow computes one token per rendered byte of a row.
//
// openComment is whether the previous row ended inside an unterminated
// block comment (false for the first row). The returned bool is whether
// this row itself ends inside one; callers propagate it to the next row.
//
// With a nil language every byte is TokenNormal and the comment state is
// cleared.
func HighlightRow(rendered []byte, lang *Language, openComment bool) ([]Token, bool) {
	hl := make([]Token, len(rendered))
	if lang == nil {
		return hl, false
	}

	scs := []byte(lang.CommentPrefix)
	mcs := []byte(lang.BlockCommentStart)
	mce := []byte(lang.BlockCommentEnd)

	prevSep := true
	var inString byte // the active quote byte, or 0
	inComment := openComment

	i := 0
	for i < len(rendered) {
		c := rendered[i]
		prevHL := TokenNormal
		if i > 0 {
			prevHL = hl[i-1]
		}

		if len(scs) > 0 && inString == 0 && !inComment {
			if bytes.HasPrefix(rendered[i:], scs) {
				// rest of row is a comment
				for j := i; j < len(rendered); j++ {
					hl[j] = TokenComment
				}
				break
			}
		}

		if len(mcs) > 0 && len(mce) > 0 && inString == 0 {
			if inComment {
				hl[i] = TokenMLComment
				if bytes.HasPrefix(rendered[i:], mce) {
					for j := i; j < i+len(mce); j++ {
						hl[j] = TokenMLComment
					}
					i += len(mce)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			} else if bytes.HasPrefix(rendered[i:], mcs) {
				for j := i; j < i+len(mcs); j++ {
					hl[j] = TokenMLComment
				}
				i += len(mcs)
				inComment = true
				continue
			}
		}

		if lang.Flags.Has(HighlightStrings) {
			if inString != 0 {
				hl[i] = TokenString

				// escaped byte: tag it without a termination check
				if c == '\\' && i+1 < len(rendered) {
					hl[i+1] = TokenString
					i += 2
					continue
				}

				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				hl[i] = TokenString
				i++
				continue
			}
		}

		if lang.Flags.Has(HighlightNumbers) {
			if (isDigit(c) && (prevSep || prevHL == TokenNumber)) ||
				(c == '.' && prevHL == TokenNumber) {
				hl[i] = TokenNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, tok := matchKeyword(rendered[i:], lang); n > 0 {
				for j := i; j < i+n; j++ {
					hl[j] = tok
				}
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = IsSeparator(c)
		i++
	}

	return hl, inComment
}

// matchKeyword matches a keyword anchored at the start of rest, requiring a
// separator (or end of row) immediately after. The primary group is scanned
// before the secondary group, each in declaration order; the first match
// wins, with no longest-match pass.
func matchKeyword(rest []byte, lang *Language) (int, Token) {
	if n := matchKeywordGroup(rest, lang.Keywords); n > 0 {
		return n, TokenKeyword1
	}
	if n := matchKeywordGroup(rest, lang.Types); n > 0 {
		return n, TokenKeyword2
	}
	return 0, TokenNormal
}

func matchKeywordGroup(rest []byte, group []string) int {
	for _, kw := range group {
		klen := len(kw)
		if klen > len(rest) {
			continue
		}
		if string(rest[:klen]) != kw {
			continue
		}
		if klen == len(rest) || IsSeparator(rest[klen]) {
			return klen
		}
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
