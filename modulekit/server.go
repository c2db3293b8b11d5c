package modulekit

import (
	"context"
	"encoding/json"
	"net/http"

	"metahub/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CommandFunc handles one command delivery. Arguments are already converted
// per their declared types; metadata is the invocation context the hub
// forwarded.
type CommandFunc func(ctx context.Context, args map[string]any, meta *domain.CommandMetadata) error

// ActionFunc handles one interactive callback delivery.
type ActionFunc func(ctx context.Context, meta *domain.ActionMetadata) error

// Router returns the HTTP surface the hub dispatches to. Mount it at the
// path the module's registered URL points at.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/commands/{name}", m.handleCommand)
	r.Post("/actions/{actionID}", m.handleAction)

	return r
}

func (m *Module) handleCommand(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	def, ok := m.commands[name]
	if !ok {
		http.Error(w, "unknown command", http.StatusNotFound)
		return
	}

	var delivery domain.CommandDelivery
	if err := json.NewDecoder(r.Body).Decode(&delivery); err != nil {
		http.Error(w, "invalid delivery payload", http.StatusBadRequest)
		return
	}

	args, err := m.convertArguments(def.args, delivery.Arguments)
	if err != nil {
		log.Error().Err(err).Str("command", name).Msg("argument conversion failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := def.fn(r.Context(), args, delivery.Metadata); err != nil {
		log.Error().Err(err).Str("command", name).Msg("command handler failed")
		http.Error(w, "command failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (m *Module) handleAction(w http.ResponseWriter, r *http.Request) {
	actionID := chi.URLParam(r, "actionID")

	payloadType, name, ok := domain.SplitActionID(actionID)
	if !ok {
		http.Error(w, "malformed action id", http.StatusBadRequest)
		return
	}

	var fn ActionFunc
	switch payloadType {
	case actionTypeBlock:
		fn = m.actions[name]
	case actionTypeView:
		fn = m.views[name]
	default:
		// ids of other payload types never appear in our registration, so
		// receiving one means the hub routed on a stale key
		log.Error().Str("actionId", actionID).Msg("unknown action triggered")
		w.WriteHeader(http.StatusOK)
		return
	}

	if fn == nil {
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}

	var delivery domain.ActionDelivery
	if err := json.NewDecoder(r.Body).Decode(&delivery); err != nil {
		http.Error(w, "invalid delivery payload", http.StatusBadRequest)
		return
	}

	var meta domain.ActionMetadata
	if err := json.Unmarshal(delivery.Metadata, &meta); err != nil {
		http.Error(w, "invalid callback metadata", http.StatusBadRequest)
		return
	}
	meta.Raw = delivery.Metadata

	if err := fn(r.Context(), &meta); err != nil {
		log.Error().Err(err).Str("actionId", actionID).Msg("action handler failed")
		http.Error(w, "action failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
