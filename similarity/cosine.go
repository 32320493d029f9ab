package similarity

import "math"

// Cosine computes the cosine similarity between two vectors over their shared
// prefix length. Each vector's norm is computed over that same prefix; a zero
// norm is substituted with 1 so an all-zero vector scores 0 instead of
// dividing by zero. Returns 0 if either vector is empty.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0.0
	}

	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	na = math.Sqrt(na)
	if na == 0 {
		na = 1
	}
	nb = math.Sqrt(nb)
	if nb == 0 {
		nb = 1
	}
	return dot / (na * nb)
}
