package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotProduct(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 32},
		{"Zero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Mixed", []float32{1, -1, 2}, []float32{1, 1, -2}, -4},
		{"Empty", []float32{}, []float32{}, 0},
		{"Single", []float32{2}, []float32{3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DotProduct(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"Scaled", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"Orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"Opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"ZeroNorm", []float32{0, 0}, []float32{1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 5.196152},
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Mixed", []float32{1, -1}, []float32{-1, 1}, 2.828427},
		{"Empty", []float32{}, []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EuclideanDistance(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 9},
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Negative", []float32{1, -1}, []float32{-1, 1}, 4},
		{"Empty", []float32{}, []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ManhattanDistance(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		expected Metric
	}{
		{"cosine", Cosine},
		{"euclidean", Euclidean},
		{"manhattan", Manhattan},
		{"dot", Dot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
			assert.Equal(t, tt.name, m.String())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := Parse("chebyshev")
		require.ErrorIs(t, err, ErrUnknownMetric)
	})
}

func TestProvider(t *testing.T) {
	for _, m := range []Metric{Cosine, Euclidean, Manhattan, Dot} {
		t.Run(m.String(), func(t *testing.T) {
			fn, err := Provider(m)
			require.NoError(t, err)
			require.NotNil(t, fn)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := Provider(Metric(99))
		require.ErrorIs(t, err, ErrUnknownMetric)
	})
}
