package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/huangsam/commitlog/internal/logger"
)

// defaultRetryInterval is the first wait between attempts; later waits grow exponentially.
const defaultRetryInterval = 500 * time.Millisecond

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GitHub API error (status %d)", e.Code)
	}
	return fmt.Sprintf("GitHub API error (status %d): %s", e.Code, e.Body)
}

// isTransient reports whether a failed attempt is worth retrying:
// 5xx and 429 responses, timeouts and connection errors.
func isTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError || se.Code == http.StatusTooManyRequests
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// withRetry runs op once, then up to maxRetries more times while it fails transiently.
func (c *Client) withRetry(ctx context.Context, target string, op func() error) error {
	interval := c.retryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = interval
	eb.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(max(c.maxRetries, 0))), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		err := op()
		if err == nil || ctx.Err() != nil || !isTransient(err) {
			if err != nil {
				return backoff.Permanent(err)
			}
			return nil
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		logger.Warn(fmt.Sprintf("attempt %d for %s failed, retrying in %s", attempt, target, wait), err)
	})
}
