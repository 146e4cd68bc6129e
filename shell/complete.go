package shell

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Complete returns every command matching prefix: builtins first-class
// alongside all indexed PATH executables, deduplicated and sorted.
func (s *Shell) Complete(prefix string) []string {
	seen := map[string]bool{}
	var matches []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			matches = append(matches, name)
		}
	}
	for _, name := range s.builtins.Names() {
		add(name)
	}
	for _, name := range s.ensureIndex().Names() {
		add(name)
	}
	sort.Strings(matches)
	return matches
}

// RenderColumns lays words out in even columns sized by display width, the
// way ls does. runewidth keeps wide runes from misaligning the grid.
func RenderColumns(words []string, width int) string {
	if len(words) == 0 {
		return ""
	}

	colWidth := 0
	for _, w := range words {
		if dw := runewidth.StringWidth(w); dw > colWidth {
			colWidth = dw
		}
	}
	colWidth += 2 // gutter

	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}
	rows := (len(words) + cols - 1) / cols

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := col*rows + row
			if i >= len(words) {
				continue
			}
			w := words[i]
			b.WriteString(w)
			if col < cols-1 && i+rows < len(words) {
				b.WriteString(strings.Repeat(" ", colWidth-runewidth.StringWidth(w)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
