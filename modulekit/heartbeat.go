package modulekit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Heartbeat re-registers the module with the hub on every tick until ctx is
// cancelled. Each registration replaces the previous lease wholesale, so a
// failed beat only matters if failures outlast the hub's TTL; individual
// failures are logged and retried on the next tick.
func (m *Module) Heartbeat(ctx context.Context) {
	client := &http.Client{Timeout: m.heartbeatDelay}

	ticker := time.NewTicker(m.heartbeatDelay)
	defer ticker.Stop()

	for {
		if err := m.register(ctx, client); err != nil {
			log.Error().Err(err).Str("module", m.name).Msg("heartbeat to hub failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Module) register(ctx context.Context, client *http.Client) error {
	payloadBuf := new(bytes.Buffer)
	err := json.NewEncoder(payloadBuf).Encode(m.Payload())
	if err != nil {
		return fmt.Errorf("error encoding registration payload: %w", err)
	}

	endpoint := strings.TrimSuffix(m.hubURL, "/") + "/api/modules"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, payloadBuf)
	if err != nil {
		return fmt.Errorf("error building registration request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("registration request failed: %w", err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hub rejected registration with status %d", resp.StatusCode)
	}

	return nil
}
