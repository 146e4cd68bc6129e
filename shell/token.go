package shell

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote is returned when a command line ends inside a quoted
// string.
var ErrUnterminatedQuote = errors.New("shell: unterminated quote")

// Token is one word of a command line. Literal marks single-quoted text,
// which is exempt from every later expansion stage.
type Token struct {
	Val     string
	Literal bool
}

// Tokenize splits a command line into words. Single quotes preserve their
// contents verbatim, double quotes group words but still allow variable
// expansion later, and a backslash escapes the next character outside single
// quotes.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token
	var cur strings.Builder
	started := false // distinguishes "" (empty quoted word) from no word
	literal := false

	flush := func() {
		if started {
			tokens = append(tokens, Token{Val: cur.String(), Literal: literal})
			cur.Reset()
			started = false
			literal = false
		}
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case ' ', '\t':
			flush()
		case '\'':
			started = true
			literal = true
			i++
			for {
				if i >= len(runes) {
					return nil, ErrUnterminatedQuote
				}
				if runes[i] == '\'' {
					break
				}
				cur.WriteRune(runes[i])
				i++
			}
		case '"':
			started = true
			i++
			for {
				if i >= len(runes) {
					return nil, ErrUnterminatedQuote
				}
				if runes[i] == '"' {
					break
				}
				if runes[i] == '\\' && i+1 < len(runes) {
					next := runes[i+1]
					if next == '"' || next == '\\' || next == '$' {
						cur.WriteRune(next)
						i += 2
						continue
					}
				}
				cur.WriteRune(runes[i])
				i++
			}
		case '\\':
			started = true
			if i+1 < len(runes) {
				cur.WriteRune(runes[i+1])
				i++
			}
		default:
			started = true
			cur.WriteRune(c)
		}
	}
	flush()
	return tokens, nil
}
