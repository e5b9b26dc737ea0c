package reembed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("unit vector unchanged", func(t *testing.T) {
		got := NormalizeVector([]float32{1, 0, 0})
		assert.Equal(t, []float32{1, 0, 0}, got)
	})

	t.Run("scales to unit length", func(t *testing.T) {
		got := NormalizeVector([]float32{3, 4})
		require.Len(t, got, 2)
		assert.InDelta(t, 0.6, got[0], 0.0001)
		assert.InDelta(t, 0.8, got[1], 0.0001)

		var magnitude float64
		for _, v := range got {
			magnitude += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(magnitude), 0.0001)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		got := NormalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, got)
	})

	t.Run("empty vector", func(t *testing.T) {
		got := NormalizeVector([]float32{})
		assert.Empty(t, got)
	})

	t.Run("does not modify input", func(t *testing.T) {
		in := []float32{3, 4}
		NormalizeVector(in)
		assert.Equal(t, []float32{3, 4}, in)
	})
}
