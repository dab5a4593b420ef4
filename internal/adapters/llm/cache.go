package llm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"time"

	"inkwell/internal/platform/logger"
	"inkwell/internal/platform/store"
)

// embedCache keeps embeddings in redis as little endian float32s
// a nil cache is a valid, disabled cache
type embedCache struct {
	kv  store.KV
	ttl time.Duration
}

// cacheKey is emb:<model>:<sha256 hex of text>
func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "emb:" + model + ":" + hex.EncodeToString(sum[:])
}

func (c *embedCache) get(ctx context.Context, key string, dim int) ([]float32, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrCacheMiss) {
			logger.C(ctx).Debug().Err(err).Msg("embedding cache read failed")
		}
		return nil, false
	}
	v, ok := decodeVector(raw)
	if !ok || len(v) != dim {
		return nil, false
	}
	return v, true
}

func (c *embedCache) set(ctx context.Context, key string, v []float32) {
	if c == nil {
		return
	}
	if err := c.kv.Set(ctx, key, encodeVector(v), c.ttl); err != nil {
		logger.C(ctx).Debug().Err(err).Msg("embedding cache write failed")
	}
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

func decodeVector(b []byte) ([]float32, bool) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, false
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, true
}
