// Package similarity ranks embeddings by cosine distance
//
// Rankers are interchangeable strategies over one ordering: nearest first,
// ties broken by creation time then id. The database path and the in memory
// path both sort with Compare so they agree on the same inputs.
package similarity

import "math"

// Cosine returns dot(a,b) / (|a| |b|), or 0 when either vector has zero magnitude
// vectors of different length are treated as unrelated
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Distance is 1 - Cosine, smaller is nearer
func Distance(a, b []float32) float64 { return 1 - Cosine(a, b) }

// Magnitude returns the L2 norm of v
func Magnitude(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}

// Normalize scales v to unit length in place, zero vectors are left alone
func Normalize(v []float32) []float32 {
	m := Magnitude(v)
	if m == 0 {
		return v
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / m)
	}
	return v
}
