// Package levenshtein computes edit distances for domain typo detection.
package levenshtein

// Distance computes the Levenshtein edit distance between two strings.
// The implementation uses O(min(m,n)) memory.
func Distance(s, t string) int {
	return distance(s, t, -1)
}

// DistanceWithin computes the edit distance between s and t, giving up as
// soon as the distance is known to exceed max. It returns (distance, true)
// when distance <= max, and (0, false) otherwise. Useful when scanning a
// whitelist of candidate domains where only close matches matter.
func DistanceWithin(s, t string, max int) (int, bool) {
	if max < 0 {
		return 0, false
	}
	// Length difference alone is a lower bound on the distance.
	diff := len([]rune(s)) - len([]rune(t))
	if diff < 0 {
		diff = -diff
	}
	if diff > max {
		return 0, false
	}
	d := distance(s, t, max)
	if d > max {
		return 0, false
	}
	return d, true
}

// distance is the shared two-row dynamic program. When bound >= 0 it may
// stop early once every cell of the current row exceeds bound.
func distance(s, t string, bound int) int {
	sr := []rune(s)
	tr := []rune(t)

	if len(sr) == 0 {
		return len(tr)
	}
	if len(tr) == 0 {
		return len(sr)
	}

	// Shorter string should be the "column"
	if len(sr) > len(tr) {
		sr, tr = tr, sr
	}

	prev := make([]int, len(sr)+1)
	curr := make([]int, len(sr)+1)

	for i := range prev {
		prev[i] = i
	}

	for j, tc := range tr {
		curr[0] = j + 1
		rowMin := curr[0]
		for i, sc := range sr {
			cost := 1
			if sc == tc {
				cost = 0
			}
			curr[i+1] = min3(
				curr[i]+1,    // deletion
				prev[i+1]+1,  // insertion
				prev[i]+cost, // substitution
			)
			if curr[i+1] < rowMin {
				rowMin = curr[i+1]
			}
		}
		if bound >= 0 && rowMin > bound {
			return rowMin
		}
		prev, curr = curr, prev
	}

	return prev[len(sr)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
