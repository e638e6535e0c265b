package usecase

// SimilarityRatio returns the Ratcliff/Obershelp similarity of two strings in [0, 1].
//
// The ratio is 2*M/T where T is the total rune count of both strings and M is
// the number of runes covered by matching blocks. Blocks are found by taking
// the longest common substring, then recursing on the unmatched text to its
// left and right. Ties go to the block that starts earliest in a, then in b.
// Callers lowercase their inputs; the comparison itself is case-sensitive.
func SimilarityRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	return 2.0 * float64(matchingRunes(ra, rb)) / float64(total)
}

// span is a pair of half-open ranges still to be searched for matching blocks
type span struct {
	alo, ahi, blo, bhi int
}

// matchingRunes sums the sizes of all matching blocks between a and b
func matchingRunes(a, b []rune) int {
	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b, s)
		if k == 0 {
			continue
		}
		matched += k

		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}

	return matched
}

// longestMatch finds the longest common block of a[alo:ahi] and b[blo:bhi].
// Returns its start in a, its start in b and its length.
func longestMatch(a, b []rune, s span) (int, int, int) {
	bestI, bestJ, bestSize := s.alo, s.blo, 0

	// Two rows of the classic longest-common-substring table, indexed by j-blo+1
	width := s.bhi - s.blo + 1
	prev := make([]int, width)
	curr := make([]int, width)

	for i := s.alo; i < s.ahi; i++ {
		for j := s.blo; j < s.bhi; j++ {
			col := j - s.blo + 1
			if a[i] != b[j] {
				curr[col] = 0
				continue
			}
			k := prev[col-1] + 1
			curr[col] = k
			if k > bestSize {
				bestI = i - k + 1
				bestJ = j - k + 1
				bestSize = k
			}
		}
		prev, curr = curr, prev
	}

	return bestI, bestJ, bestSize
}
