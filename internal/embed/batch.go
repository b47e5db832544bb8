package embed

import (
	"context"
	"time"
)

const (
	batchSize    = 100
	batchTimeout = 30 * time.Second
	maxRetries   = 2
	backoffBase  = 500 * time.Millisecond
	backoffFactor = 2.0
)

// Batch embeds texts in fixed-size batches, retrying each batch up to
// maxRetries times with exponential backoff. A batch that still fails
// after retries is replaced with zero vectors of p's dimension so the
// caller always gets one vector per input text.
func Batch(ctx context.Context, p Provider, texts []string) [][]float32 {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		out = append(out, embedBatchWithRetry(ctx, p, texts[start:end])...)
	}
	return out
}

func embedBatchWithRetry(ctx context.Context, p Provider, texts []string) [][]float32 {
	backoff := backoffBase
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		bctx, cancel := context.WithTimeout(ctx, batchTimeout)
		vecs, err := p.Embed(bctx, texts)
		cancel()
		if err == nil {
			return vecs
		}
		lastErr = err
		if attempt < maxRetries {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				lastErr = ctx.Err()
				break
			}
			backoff = time.Duration(float64(backoff) * backoffFactor)
		}
	}
	_ = lastErr
	zeros := make([][]float32, len(texts))
	for i := range zeros {
		zeros[i] = make([]float32, p.Dimension())
	}
	return zeros
}
