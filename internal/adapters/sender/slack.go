package sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"metahub/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
)

// SlackSender posts messages through the Slack Web API on behalf of the hub
// and its modules.
type SlackSender struct {
	client *slack.Client
}

func NewSlackSender(client *slack.Client) *SlackSender {
	return &SlackSender{client: client}
}

func (s *SlackSender) SendEphemeral(ctx context.Context, channelID, userID, text string) error {
	_, err := s.client.PostEphemeralContext(ctx, channelID, userID, slack.MsgOptionText(text, false))
	if err != nil {
		return translateSlackError(err)
	}

	return nil
}

func (s *SlackSender) SendMessage(ctx context.Context, message *domain.ChatMessage) error {
	if err := message.Validate(); err != nil {
		return err
	}

	opts := []slack.MsgOption{slack.MsgOptionText(message.Text, false)}

	if len(message.Blocks) > 0 {
		var blocks slack.Blocks
		if err := json.Unmarshal(message.Blocks, &blocks); err != nil {
			return fmt.Errorf("failed to decode message blocks: %w", err)
		}
		opts = append(opts, slack.MsgOptionBlocks(blocks.BlockSet...))
	}

	var err error
	if message.SendEphemeral {
		_, err = s.client.PostEphemeralContext(ctx, message.ChannelID, message.UserID, opts...)
	} else {
		_, _, err = s.client.PostMessageContext(ctx, message.ChannelID, opts...)
	}

	if err != nil {
		log.Error().Err(err).Str("channelId", message.ChannelID).Msg("failed to post message")
		return translateSlackError(err)
	}

	return nil
}

func translateSlackError(err error) error {
	var statusErr slack.StatusCodeError
	if errors.As(err, &statusErr) {
		return &domain.PlatformError{StatusCode: statusErr.Code, Reason: statusErr.Status}
	}

	var apiErr slack.SlackErrorResponse
	if errors.As(err, &apiErr) {
		return &domain.PlatformError{StatusCode: http.StatusBadGateway, Reason: apiErr.Err}
	}

	return &domain.PlatformError{StatusCode: http.StatusBadGateway, Reason: err.Error()}
}
