package vectormath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity_Identical(t *testing.T) {
	a := []float32{0.3, -1.2, 4.5, 0.01}
	assert.InDelta(t, 1.0, CosineSimilarity(a, a), 1e-9, "vector against itself should score ~1")
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-4, 5, 0.5}
	assert.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a))
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}
	assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-9)
}

func TestCosineSimilarity_Opposite(t *testing.T) {
	a := []float32{1, 1}
	b := []float32{-1, -1}
	assert.InDelta(t, -1.0, CosineSimilarity(a, b), 1e-9)
}

func TestCosineSimilarity_KnownValue(t *testing.T) {
	// dot = 0.9, |a| = 1, |b| = sqrt(0.82)
	a := []float32{1, 0, 0}
	b := []float32{0.9, 0.1, 0}
	assert.InDelta(t, 0.9938837, CosineSimilarity(a, b), 1e-6)
}

func TestCosineSimilarity_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
	}{
		{"both empty", nil, nil},
		{"a empty", nil, []float32{1, 2}},
		{"b empty", []float32{1, 2}, nil},
		{"a zero norm", []float32{0, 0, 0}, []float32{1, 2, 3}},
		{"b zero norm", []float32{1, 2, 3}, []float32{0, 0, 0}},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, CosineSimilarity(tt.a, tt.b))
		})
	}
}

func TestCosineSimilarity_DoesNotMutateInputs(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{4, 5, 6}
	CosineSimilarity(a, b)
	assert.Equal(t, []float32{1, 2, 3}, a)
	assert.Equal(t, []float32{4, 5, 6}, b)
}
