package tokenizer

// countPairs tallies every adjacent symbol pair within each chunk.
// Pairs never span two chunks. Runs in a single linear scan over all
// symbols.
func countPairs(chunks [][]int32) map[Pair]int {
	stats := make(map[Pair]int)
	for _, ids := range chunks {
		for i := 0; i+1 < len(ids); i++ {
			stats[Pair{ids[i], ids[i+1]}]++
		}
	}
	return stats
}

// maxPair returns the pair with the highest count. Ties are broken by
// the lexicographically smallest (Left, Right) pair so that training is
// deterministic and reproducible across runs.
func maxPair(stats map[Pair]int) (Pair, int) {
	var best Pair
	bestCount := 0
	for p, c := range stats {
		if c > bestCount || (c == bestCount && pairLess(p, best)) {
			best = p
			bestCount = c
		}
	}
	return best, bestCount
}

func pairLess(a, b Pair) bool {
	if a.Left != b.Left {
		return a.Left < b.Left
	}
	return a.Right < b.Right
}
