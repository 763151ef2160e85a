// Package vectormath provides the numeric routines used to rank documents
// by embedding similarity.
package vectormath

import "math"

// CosineSimilarity computes dot(a,b) / (|a|*|b|) and returns a value in [-1, 1].
//
// Degenerate inputs are defined to score 0 rather than error: if either vector
// is empty or has zero norm, or if the lengths differ, the result is 0. This
// keeps documents without embeddings rankable (they sort last) instead of
// poisoning the result set with NaNs.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
