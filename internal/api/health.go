package api

import (
	"context"

	fhttp "github.com/bogdanfinn/fhttp"

	"github.com/dost-cli/dost/internal/logging"
	"github.com/dost-cli/dost/internal/models"
)

// Status is the companion backend liveness state shown in the UI
// header. It annotates presentation only and never gates sends.
type Status string

// Liveness states
const (
	StatusConnecting Status = "Connecting..."
	StatusOnline     Status = "Online"
	StatusOffline    Status = "Offline"
)

// CheckHealth probes the companion backend health endpoint. Any
// failure - transport or status - maps to Offline.
func (c *Client) CheckHealth(ctx context.Context) Status {
	req, err := fhttp.NewRequestWithContext(
		ctx,
		fhttp.MethodGet,
		c.serverURL+models.PathServerAlive,
		nil,
	)
	if err != nil {
		return StatusOffline
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debugf("health probe failed: %v", err)
		return StatusOffline
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return StatusOffline
	}
	return StatusOnline
}
