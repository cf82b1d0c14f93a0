package tracker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// keepaliveInterval is how often the process pings itself to stay warm on
// hosts that idle out inactive services.
const keepaliveInterval = 5 * time.Minute

// Keepalive periodically requests the tracker's own /ping endpoint.
type Keepalive struct {
	pingURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewKeepalive creates a keepalive pinger for the given base URL.
func NewKeepalive(baseURL string, logger *zap.Logger) *Keepalive {
	return &Keepalive{
		pingURL: strings.TrimRight(baseURL, "/") + "/ping",
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.Named("keepalive"),
	}
}

// Run pings the tracker every five minutes until the context is canceled.
// Failures are logged and never stop the loop.
func (k *Keepalive) Run(ctx context.Context) {
	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := k.ping(ctx); err != nil {
				k.logger.Debug("Self-ping failed", zap.Error(err))
			} else {
				k.logger.Debug("Pinged self", zap.String("url", k.pingURL))
			}
		}
	}
}

// ping issues one self request, retrying briefly on transient failures.
func (k *Keepalive) ping(ctx context.Context) error {
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(time.Second),
		backoff.WithMaxElapsedTime(time.Minute),
	), 3)

	return backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.pingURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := k.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		return nil
	}, backoff.WithContext(b, ctx))
}
