// Package beacon reports the lamp's liveness to an ntfy-style endpoint.
package beacon

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"helix-lamp/types"
)

const connectTimeout = 10 * time.Second

// Beacon posts a startup notification and periodic heartbeats. A Beacon
// with no endpoint is disabled and every method is a no-op.
type Beacon struct {
	endpoint string
	interval time.Duration
	client   *http.Client
	log      *types.Logger
}

func New(endpoint string, interval time.Duration, logger *types.Logger) *Beacon {
	return &Beacon{
		endpoint: endpoint,
		interval: interval,
		client:   &http.Client{Timeout: connectTimeout},
		log:      logger,
	}
}

// Enabled reports whether an endpoint is configured.
func (b *Beacon) Enabled() bool {
	return b.endpoint != ""
}

// CheckConnectivity verifies the endpoint is reachable.
func (b *Beacon) CheckConnectivity() error {
	if !b.Enabled() {
		return nil
	}
	resp, err := b.client.Head(b.endpoint)
	if err != nil {
		return fmt.Errorf("connectivity check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("connectivity check failed with status code: %d", resp.StatusCode)
	}
	return nil
}

// Notify sends a notification message to the configured endpoint.
func (b *Beacon) Notify(message string) error {
	if !b.Enabled() {
		return nil
	}
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	payload := strings.NewReader(message)
	resp, err := b.client.Post(b.endpoint, "text/plain", payload)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// Run sends heartbeats at the configured interval until ctx is
// cancelled. Failures are logged and the next beat tried anyway.
func (b *Beacon) Run(ctx context.Context) {
	if !b.Enabled() || b.interval <= 0 {
		return
	}
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		if err := b.Notify("still glowing"); err != nil {
			b.log.WarnLog.Printf("Heartbeat error: %s", err.Error())
		} else {
			b.log.DebugLog.Printf("Heartbeat sent")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
