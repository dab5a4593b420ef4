package similarity

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// DefaultDimension is the embedding width the schema is created with
const DefaultDimension = 768

// ErrInvalidEmbeddingDimension marks a stored or produced vector of the wrong shape
var ErrInvalidEmbeddingDimension = errors.New("similarity: invalid embedding dimension")

// CheckDimension verifies len(v) == dim and that every component is finite
func CheckDimension(v []float32, dim int) error {
	if len(v) != dim {
		return fmt.Errorf("%w: got %d want %d", ErrInvalidEmbeddingDimension, len(v), dim)
	}
	for i, x := range v {
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return fmt.Errorf("%w: component %d is not finite", ErrInvalidEmbeddingDimension, i)
		}
	}
	return nil
}

// ParseVector decodes the pgvector text form "[1,2,3]" and checks it against dim
// dim <= 0 skips the length check
func ParseVector(s string, dim int) ([]float32, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("%w: not a vector literal", ErrInvalidEmbeddingDimension)
	}
	var v pgvector.Vector
	if err := v.Parse(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEmbeddingDimension, err)
	}
	out := v.Slice()
	if dim > 0 {
		if err := CheckDimension(out, dim); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Encode wraps v for a $n::vector bind parameter
func Encode(v []float32) pgvector.Vector { return pgvector.NewVector(v) }
