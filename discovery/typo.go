package discovery

import (
	"sort"

	"github.com/home-lang/den/concurrency"
)

// maxSuggestDistance is the largest edit distance still considered a
// plausible typo.
const maxSuggestDistance = 2

// Suggest ranks candidates by edit distance to the mistyped word and returns
// the closest max of them. Distances across the candidate set are computed
// in parallel on the pool; each task writes only its own result slot.
func Suggest(pool *concurrency.Pool, word string, candidates []string, max int) []string {
	if max <= 0 || word == "" || len(candidates) == 0 {
		return nil
	}

	distances := make([]int, len(candidates))
	indices := make([]int, len(candidates))
	for i := range indices {
		indices[i] = i
	}
	_ = concurrency.ParallelForEach(pool, indices, func(i int) {
		distances[i] = editDistance(word, candidates[i])
	})

	type scored struct {
		name string
		dist int
	}
	var close []scored
	for i, c := range candidates {
		if c == word {
			continue
		}
		if distances[i] <= maxSuggestDistance {
			close = append(close, scored{name: c, dist: distances[i]})
		}
	}
	sort.Slice(close, func(a, b int) bool {
		if close[a].dist != close[b].dist {
			return close[a].dist < close[b].dist
		}
		return close[a].name < close[b].name
	})

	if len(close) > max {
		close = close[:max]
	}
	out := make([]string, len(close))
	for i, s := range close {
		out[i] = s.name
	}
	return out
}

// editDistance computes the Damerau-Levenshtein distance (optimal string
// alignment variant: insert, delete, substitute, transpose adjacent).
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < cur[j] {
					cur[j] = t
				}
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
