// Package embedding implements a deterministic feature-hashing text
// embedder. It stands in for a learned model: tokens are hashed into a
// fixed number of buckets and the resulting bag-of-hashed-words vector is
// L2-normalized. No weights, no randomness, no I/O.
package embedding

import (
	"math"

	"github.com/skillforge/skillrec/internal/domain/text"
)

// DefaultDims is the catalog-wide embedding dimensionality.
const DefaultDims = 96

// FNV-1a 32-bit parameters. Integer hashing with defined wraparound keeps
// vectors reproducible across platforms.
const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
)

// HashToken returns the FNV-1a 32-bit hash of a token.
func HashToken(token string) uint32 {
	h := fnvOffset32
	for i := 0; i < len(token); i++ {
		h ^= uint32(token[i])
		h *= fnvPrime32
	}
	return h
}

// Embed tokenizes s and returns its unit-L2 feature-hashed vector of the
// given dimensionality. A text with no usable tokens yields the all-zero
// vector, which signals "no embedding content" to callers.
func Embed(s string, dims int) []float32 {
	if dims <= 0 {
		dims = DefaultDims
	}
	vec := make([]float32, dims)
	for _, token := range text.Tokenize(s) {
		vec[int(HashToken(token)%uint32(dims))]++
	}
	return Normalize(vec)
}

// Normalize scales v to unit L2 norm in place and returns it.
// The zero vector is left untouched.
func Normalize(v []float32) []float32 {
	norm := Magnitude(v)
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// Magnitude returns the L2 norm of v.
func Magnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b clamped to [0, 1].
// Mismatched lengths or a zero-magnitude operand score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return Clamp01(sim)
}

// Clamp01 clamps x to [0, 1].
func Clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
