package llm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"inkwell/internal/core/similarity"
)

// hashedEmbedder is the offline embedder: a deterministic unit vector seeded by
// sha256 of the text, expanded block by block with a counter
// equal texts embed equally, anything else is noise
type hashedEmbedder struct{ dim int }

func (h hashedEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return hashVector(text, h.dim), nil
}

func hashVector(text string, dim int) []float32 {
	seed := sha256.Sum256([]byte(text))
	out := make([]float32, 0, dim)
	var block [sha256.Size + 4]byte
	copy(block[:], seed[:])
	for counter := uint32(0); len(out) < dim; counter++ {
		binary.BigEndian.PutUint32(block[sha256.Size:], counter)
		sum := sha256.Sum256(block[:])
		for i := 0; i+4 <= len(sum) && len(out) < dim; i += 4 {
			u := binary.BigEndian.Uint32(sum[i:])
			out = append(out, float32(float64(u)/math.MaxUint32*2-1))
		}
	}
	return similarity.Normalize(out)
}
