// Package metric provides pure vector comparison functions under named
// similarity metrics.
//
// All functions assume both vectors have the same length (caller's
// responsibility). Cosine and Dot follow the higher-is-more-similar
// convention; Euclidean and Manhattan are distances, lower is more similar.
package metric

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownMetric is returned when a metric name cannot be resolved.
var ErrUnknownMetric = errors.New("unknown similarity metric")

// Metric identifies a vector comparison metric.
type Metric int

const (
	// Cosine is cosine similarity: dot(x,y) / (||x||*||y||).
	Cosine Metric = iota
	// Euclidean is the L2 distance: sqrt(sum((x_i-y_i)^2)).
	Euclidean
	// Manhattan is the L1 distance: sum(|x_i-y_i|).
	Manhattan
	// Dot is the unnormalized dot product.
	Dot
)

func (m Metric) String() string {
	switch m {
	case Cosine:
		return "cosine"
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Dot:
		return "dot"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// Parse resolves a metric by its stable name.
func Parse(name string) (Metric, error) {
	switch name {
	case "cosine":
		return Cosine, nil
	case "euclidean":
		return Euclidean, nil
	case "manhattan":
		return Manhattan, nil
	case "dot":
		return Dot, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// Func is a function type for vector comparison.
type Func func(a, b []float32) float32

// Provider returns the comparison function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case Cosine:
		return CosineSimilarity, nil
	case Euclidean:
		return EuclideanDistance, nil
	case Manhattan:
		return ManhattanDistance, nil
	case Dot:
		return DotProduct, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, m)
	}
}

// DotProduct calculates the dot product of two vectors.
func DotProduct(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Magnitude calculates the L2 norm of a vector.
func Magnitude(v []float32) float32 {
	return sqrt(DotProduct(v, v))
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Returns 0 if either vector has zero norm.
func CosineSimilarity(a, b []float32) float32 {
	magA := Magnitude(a)
	magB := Magnitude(b)

	// Avoid division by zero
	if magA == 0 || magB == 0 {
		return 0
	}

	return DotProduct(a, b) / (magA * magB)
}

// EuclideanDistance calculates the L2 distance between two vectors.
func EuclideanDistance(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sqrt(sum)
}

// ManhattanDistance calculates the L1 distance between two vectors.
func ManhattanDistance(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

func sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
