package labels

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Wrap splits text into at most rows lines, breaking only between words.
// Words are distributed to minimise the sum of squared deviations of each
// line's character width from the ideal even split. With fewer words than
// rows every word gets its own line.
func Wrap(text string, rows int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	n := len(words)
	k := min(max(rows, 1), n)
	if k == 1 {
		return []string{strings.Join(words, " ")}
	}

	// prefix[i] is the rune count of words[:i].
	prefix := make([]int, n+1)
	for i, w := range words {
		prefix[i+1] = prefix[i] + utf8.RuneCountInString(w)
	}
	width := func(from, to int) int {
		return prefix[to] - prefix[from] + (to - from - 1)
	}
	// k lines keep n-k inner spaces.
	ideal := float64(prefix[n]+n-k) / float64(k)
	deviation := func(from, to int) float64 {
		d := float64(width(from, to)) - ideal
		return d * d
	}

	// cost[l][j]: best cost of putting words[:j] on l+1 lines.
	// split[l][j]: where line l starts in that best solution.
	cost := make([][]float64, k)
	split := make([][]int, k)
	for l := range k {
		cost[l] = make([]float64, n+1)
		split[l] = make([]int, n+1)
		for j := range cost[l] {
			cost[l][j] = math.Inf(1)
		}
	}
	for j := 1; j <= n; j++ {
		cost[0][j] = deviation(0, j)
	}
	for l := 1; l < k; l++ {
		for j := l + 1; j <= n; j++ {
			for m := l; m < j; m++ {
				c := cost[l-1][m] + deviation(m, j)
				if c < cost[l][j] {
					cost[l][j] = c
					split[l][j] = m
				}
			}
		}
	}

	lines := make([]string, k)
	end := n
	for l := k - 1; l >= 0; l-- {
		start := 0
		if l > 0 {
			start = split[l][end]
		}
		lines[l] = strings.Join(words[start:end], " ")
		end = start
	}
	return lines
}
