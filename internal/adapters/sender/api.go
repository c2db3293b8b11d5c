package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"metahub/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const slackAPIBaseURL = "https://slack.com/api"

// Methods modules may invoke through the passthrough endpoint. Anything
// outside this list is rejected before a request leaves the hub.
var allowedMethods = map[string]struct{}{
	"chat.postMessage":      {},
	"chat.postEphemeral":    {},
	"chat.update":           {},
	"chat.delete":           {},
	"chat.scheduleMessage":  {},
	"views.open":            {},
	"views.update":          {},
	"views.push":            {},
	"views.publish":         {},
	"conversations.info":    {},
	"conversations.members": {},
	"conversations.open":    {},
	"users.info":            {},
	"users.lookupByEmail":   {},
}

// SlackAPI is the generic passthrough: it invokes an allow-listed Web API
// method with an arbitrary payload and hands back the raw response data.
type SlackAPI struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewSlackAPI(token string, timeout time.Duration) *SlackAPI {
	return &SlackAPI{
		token:   token,
		baseURL: slackAPIBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *SlackAPI) Call(ctx context.Context, method string,
	payload map[string]any) (map[string]any, error) {
	if _, ok := allowedMethods[method]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrMethodNotAllowed, method)
	}

	payloadBuf := new(bytes.Buffer)
	err := json.NewEncoder(payloadBuf).Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding platform request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/"+method, payloadBuf)
	if err != nil {
		return nil, fmt.Errorf("error building platform request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &domain.PlatformError{StatusCode: http.StatusBadGateway, Reason: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &domain.PlatformError{StatusCode: http.StatusBadGateway,
			Reason: fmt.Sprintf("undecodable platform response: %s", err)}
	}

	log.Debug().Str("method", method).Int("status", resp.StatusCode).Msg("platform response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.PlatformError{StatusCode: resp.StatusCode,
			Reason: platformReason(data)}
	}

	if ok, _ := data["ok"].(bool); !ok {
		return nil, &domain.PlatformError{StatusCode: http.StatusBadGateway,
			Reason: platformReason(data)}
	}

	return data, nil
}

func platformReason(data map[string]any) string {
	if reason, ok := data["error"].(string); ok {
		return reason
	}

	return "unknown platform error"
}
