package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.5, 0.3, 0.8}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		a := []float32{1, 0, 0}
		b := []float32{0, 1, 0}
		assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-9)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{-1, 0}
		assert.InDelta(t, -1.0, CosineSimilarity(a, b), 1e-9)
	})

	t.Run("empty vectors degrade to zero", func(t *testing.T) {
		assert.Zero(t, CosineSimilarity(nil, []float32{1, 2}))
		assert.Zero(t, CosineSimilarity([]float32{1, 2}, nil))
	})

	t.Run("dimension mismatch degrades to zero", func(t *testing.T) {
		assert.Zero(t, CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	})

	t.Run("zero magnitude degrades to zero", func(t *testing.T) {
		assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	})
}

func TestNormalizeVector(t *testing.T) {
	t.Run("produces unit length", func(t *testing.T) {
		normalized := NormalizeVector([]float32{3, 4})
		var magnitude float64
		for _, v := range normalized {
			magnitude += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		normalized := NormalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, normalized)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		input := []float32{3, 4}
		NormalizeVector(input)
		assert.Equal(t, []float32{3, 4}, input)
	})
}
