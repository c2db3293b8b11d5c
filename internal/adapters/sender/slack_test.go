package sender

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"metahub/internal/core/domain"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlackTest(t *testing.T, handler http.HandlerFunc) *SlackSender {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := slack.New("xoxb-test", slack.OptionAPIURL(srv.URL+"/"))

	return NewSlackSender(client)
}

func TestSlackSenderSendEphemeral(t *testing.T) {
	var gotPath string

	s := newSlackTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "C1", r.Form.Get("channel"))
		assert.Equal(t, "U1", r.Form.Get("user"))
		assert.Equal(t, "oops", r.Form.Get("text"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "message_ts": "1"}`))
	})

	err := s.SendEphemeral(t.Context(), "C1", "U1", "oops")

	require.NoError(t, err)
	assert.Equal(t, "/chat.postEphemeral", gotPath)
}

func TestSlackSenderSendMessage(t *testing.T) {
	var gotPath string

	s := newSlackTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "channel": "C1", "ts": "1"}`))
	})

	err := s.SendMessage(t.Context(), &domain.ChatMessage{ChannelID: "C1", Text: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "/chat.postMessage", gotPath)
}

func TestSlackSenderSendMessageValidation(t *testing.T) {
	s := newSlackTest(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected for an invalid message")
	})

	err := s.SendMessage(t.Context(), &domain.ChatMessage{
		ChannelID:     "C1",
		Text:          "hi",
		SendEphemeral: true,
	})

	assert.ErrorIs(t, err, domain.ErrEphemeralNeedsUser)
}

func TestSlackSenderTranslatesAPIError(t *testing.T) {
	s := newSlackTest(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": false, "error": "channel_not_found"}`))
	})

	err := s.SendMessage(t.Context(), &domain.ChatMessage{ChannelID: "C9", Text: "hi"})

	var platformErr *domain.PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Contains(t, platformErr.Reason, "channel_not_found")
}

func TestTranslateSlackError(t *testing.T) {
	err := translateSlackError(slack.StatusCodeError{Code: 429, Status: "429 Too Many Requests"})

	var platformErr *domain.PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, 429, platformErr.StatusCode)

	err = translateSlackError(errors.New("dial tcp: connection refused"))
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, http.StatusBadGateway, platformErr.StatusCode)
}
