package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"metahub/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// ModuleClient delivers command and action payloads to module endpoints.
// Every request is bounded by the client timeout so a hung module cannot
// stall a dispatch fan-out. At most one attempt per delivery, no retries.
type ModuleClient struct {
	client *http.Client
}

func NewModuleClient(timeout time.Duration) *ModuleClient {
	return &ModuleClient{client: &http.Client{Timeout: timeout}}
}

func (c *ModuleClient) SendCommand(ctx context.Context, module *domain.Module,
	commandName string, delivery *domain.CommandDelivery) error {
	return c.post(ctx, moduleEndpoint(module, "commands", commandName), delivery)
}

func (c *ModuleClient) SendAction(ctx context.Context, module *domain.Module,
	actionID string, delivery *domain.ActionDelivery) error {
	return c.post(ctx, moduleEndpoint(module, "actions", actionID), delivery)
}

func (c *ModuleClient) post(ctx context.Context, endpoint string, body any) error {
	payloadBuf := new(bytes.Buffer)
	err := json.NewEncoder(payloadBuf).Encode(body)
	if err != nil {
		return fmt.Errorf("error encoding module request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, payloadBuf)
	if err != nil {
		return fmt.Errorf("error building module request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("module request failed: %w", err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("module response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &domain.ModuleResponseError{StatusCode: resp.StatusCode}
	}

	return nil
}

func moduleEndpoint(module *domain.Module, kind, name string) string {
	return strings.TrimSuffix(module.URL, "/") + "/" + kind + "/" + url.PathEscape(name)
}
