package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"metahub/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
)

type CommandDispatcher interface {
	Dispatch(ctx context.Context, meta *domain.CommandMetadata)
}

type ActionDispatcher interface {
	Dispatch(ctx context.Context, meta *domain.ActionMetadata)
}

// Webhook receives slash-command and interactive callbacks from the chat
// platform. Dispatch runs detached from the request so the platform gets its
// acknowledgment immediately; each dispatch is bounded by its own timeout.
type Webhook struct {
	commands CommandDispatcher
	actions  ActionDispatcher
	timeout  time.Duration
}

func NewWebhook(commands CommandDispatcher, actions ActionDispatcher,
	timeout time.Duration) *Webhook {
	return &Webhook{commands: commands, actions: actions, timeout: timeout}
}

func (h *Webhook) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/commands", h.handleCommand)
	r.Post("/interactive", h.handleInteractive)

	return r
}

func (h *Webhook) handleCommand(w http.ResponseWriter, r *http.Request) {
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		log.Error().Err(err).Msg("undecodable slash command payload")
		respondError(w, http.StatusBadRequest, "invalid command payload")
		return
	}

	meta := &domain.CommandMetadata{
		Token:       cmd.Token,
		Command:     cmd.Command,
		Text:        cmd.Text,
		ResponseURL: cmd.ResponseURL,
		TriggerID:   cmd.TriggerID,
		UserID:      cmd.UserID,
		UserName:    cmd.UserName,
		ChannelID:   cmd.ChannelID,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.commands.Dispatch(ctx, meta)
	}()

	w.WriteHeader(http.StatusOK)
}

func (h *Webhook) handleInteractive(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("payload")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "missing payload field")
		return
	}

	var meta domain.ActionMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		log.Error().Err(err).Msg("undecodable interactive payload")
		respondError(w, http.StatusBadRequest, "invalid interactive payload")
		return
	}
	meta.Raw = json.RawMessage(raw)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.actions.Dispatch(ctx, &meta)
	}()

	w.WriteHeader(http.StatusOK)
}
