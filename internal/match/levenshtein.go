package match

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for _, cb := range rb {
		diag := row[0]
		row[0]++

		for i, ca := range ra {
			up := row[i+1]

			sub := diag
			if ca != cb {
				sub++
			}

			row[i+1] = min(up+1, row[i]+1, sub)
			diag = up
		}
	}

	return row[len(ra)]
}

// Similarity returns 1 - distance/maxLen over the normalized identifiers,
// so 1.0 means the names are equal after normalization.
func Similarity(a, b string) float64 {
	normA := NormalizeIdent(a)
	normB := NormalizeIdent(b)

	if len(normA) == 0 && len(normB) == 0 {
		return 1.0
	}

	maxLen := max(len(normA), len(normB))

	return 1.0 - float64(Levenshtein(normA, normB))/float64(maxLen)
}
