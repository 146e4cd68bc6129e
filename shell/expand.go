package shell

import (
	"os"
	"strings"
)

// ExpandTokens runs the expansion pipeline over tokenized words and returns
// the final argument list: brace expansion, then tilde, then variables.
// Single-quoted tokens pass through untouched.
func ExpandTokens(tokens []Token) []string {
	var out []string
	for _, tok := range tokens {
		if tok.Literal {
			out = append(out, tok.Val)
			continue
		}
		for _, word := range BraceExpand(tok.Val) {
			word = expandTilde(word)
			word = os.Expand(word, func(name string) string {
				return os.Getenv(name)
			})
			out = append(out, word)
		}
	}
	return out
}

// BraceExpand expands the first {a,b,...} group in word against its prefix
// and suffix, then recurses, so nested and repeated groups multiply out:
// "a{b,c}d" becomes ["abd", "acd"]. A word with no complete group, or a
// group with no top-level comma, is returned as-is.
func BraceExpand(word string) []string {
	open, close, ok := findBraceGroup(word)
	if !ok {
		return []string{word}
	}

	alts := splitAlternatives(word[open+1 : close])
	if len(alts) < 2 {
		// "{single}" is not an expansion in shells.
		return []string{word}
	}

	prefix, suffix := word[:open], word[close+1:]
	var out []string
	for _, alt := range alts {
		for _, expanded := range BraceExpand(prefix + alt + suffix) {
			out = append(out, expanded)
		}
	}
	return out
}

// findBraceGroup locates the first balanced {...} containing a top-level
// comma.
func findBraceGroup(word string) (open, close int, ok bool) {
	for i := 0; i < len(word); i++ {
		if word[i] != '{' {
			continue
		}
		depth := 0
		comma := false
		for j := i; j < len(word); j++ {
			switch word[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					if comma {
						return i, j, true
					}
					j = len(word) // no comma at this level, try a later open
				}
			case ',':
				if depth == 1 {
					comma = true
				}
			}
		}
	}
	return 0, 0, false
}

// splitAlternatives splits a brace body on top-level commas only.
func splitAlternatives(body string) []string {
	var alts []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				alts = append(alts, body[start:i])
				start = i + 1
			}
		}
	}
	alts = append(alts, body[start:])
	return alts
}

func expandTilde(word string) string {
	if word == "~" || strings.HasPrefix(word, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return word
		}
		return home + word[1:]
	}
	return word
}
