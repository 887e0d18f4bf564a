package contact

import "math"

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// Mismatched dimensions or zero-magnitude inputs return 0.
//
// The production ranking path matches aspect text lists lexically and never
// calls this; it exists for the stored per-aspect embeddings, which other
// consumers of the record collection read.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
