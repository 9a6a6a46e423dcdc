package notify

import (
	"context"
	"io"
	"time"
)

// batchConfig bounds a single receiveBatch call.
type batchConfig struct {
	// maxSize is the maximum number of values to receive, must be > 0.
	maxSize int

	// linger is how long to wait for more values, after the first. Values
	// that are already buffered are always received (up to maxSize).
	linger time.Duration
}

// receiveBatch blocks until at least one value is received from ch, then
// keeps receiving until maxSize values were received or linger expires,
// passing each value to handler. It returns io.EOF once ch is closed and
// drained, or the ctx error.
func receiveBatch[T any](ctx context.Context, cfg batchConfig, ch <-chan T, handler func(value T)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		size    int
		lingerC <-chan time.Time
	)

	// first value, then wait out the linger period
Linger:
	for size < cfg.maxSize {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-lingerC:
			break Linger

		case value, ok := <-ch:
			if !ok {
				return io.EOF
			}
			size++
			if size == 1 && cfg.linger > 0 {
				timer := time.NewTimer(cfg.linger)
				//goland:noinspection GoDeferInLoop
				defer timer.Stop()
				lingerC = timer.C
			}
			handler(value)
			if lingerC == nil {
				break Linger
			}
		}
	}

	// take what is already buffered
	for size < cfg.maxSize {
		select {
		case value, ok := <-ch:
			if !ok {
				return io.EOF
			}
			size++
			handler(value)
		default:
			return ctx.Err()
		}
	}

	return ctx.Err()
}
