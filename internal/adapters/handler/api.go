package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"metahub/internal/core/domain"
	"metahub/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// API serves the hub's management surface: module registration and listing,
// plus the message relay and platform passthrough used by modules.
type API struct {
	store     port.ModuleStore
	messenger port.Messenger
	platform  port.PlatformCaller
}

func NewAPI(store port.ModuleStore, messenger port.Messenger, platform port.PlatformCaller) *API {
	return &API{store: store, messenger: messenger, platform: platform}
}

func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/modules", a.listModules)
	r.Post("/modules", a.registerModule)
	r.Get("/modules/{name}", a.getModule)
	r.Post("/chat", a.sendMessage)
	r.Post("/slack", a.platformRequest)

	return r
}

type modulesResponse struct {
	Modules map[string]*domain.Module `json:"modules"`
}

func (a *API) listModules(w http.ResponseWriter, r *http.Request) {
	modules, err := a.store.AllModules(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to enumerate modules")
		respondError(w, http.StatusInternalServerError, "registry unavailable")
		return
	}

	respond(w, http.StatusOK, modulesResponse{Modules: modules})
}

func (a *API) getModule(w http.ResponseWriter, r *http.Request) {
	module, err := a.store.GetModule(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, domain.ErrModuleNotFound) {
		respondError(w, http.StatusNotFound, "Module not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch module")
		respondError(w, http.StatusInternalServerError, "registry unavailable")
		return
	}

	respond(w, http.StatusOK, module)
}

func (a *API) registerModule(w http.ResponseWriter, r *http.Request) {
	var module domain.Module
	if err := json.NewDecoder(r.Body).Decode(&module); err != nil {
		respondError(w, http.StatusBadRequest, "invalid module payload")
		return
	}

	err := a.store.Register(r.Context(), &module)
	if errors.Is(err, domain.ErrInvalidModule) {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", module.Name).Msg("failed to register module")
		respondError(w, http.StatusInternalServerError, "registry unavailable")
		return
	}

	log.Debug().Str("module", module.Name).Msg("module registered")
	respond(w, http.StatusOK, &module)
}

type sendMessageResponse struct {
	OK bool `json:"ok"`
}

func (a *API) sendMessage(w http.ResponseWriter, r *http.Request) {
	var message domain.ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		respondError(w, http.StatusBadRequest, "invalid message payload")
		return
	}

	err := a.messenger.SendMessage(r.Context(), &message)
	if errors.Is(err, domain.ErrMissingChannel) || errors.Is(err, domain.ErrEphemeralNeedsUser) {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		respondPlatformError(w, err)
		return
	}

	respond(w, http.StatusOK, sendMessageResponse{OK: true})
}

type platformRequest struct {
	Method  string         `json:"method"`
	Payload map[string]any `json:"payload"`
}

type platformResponse struct {
	Data map[string]any `json:"data"`
}

func (a *API) platformRequest(w http.ResponseWriter, r *http.Request) {
	var req platformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	data, err := a.platform.Call(r.Context(), req.Method, req.Payload)
	if errors.Is(err, domain.ErrMethodNotAllowed) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondPlatformError(w, err)
		return
	}

	respond(w, http.StatusOK, platformResponse{Data: data})
}

func respondPlatformError(w http.ResponseWriter, err error) {
	var platformErr *domain.PlatformError
	if errors.As(err, &platformErr) {
		respondError(w, platformErr.StatusCode, platformErr.Reason)
		return
	}

	log.Error().Err(err).Msg("platform request failed")
	respondError(w, http.StatusBadGateway, "platform request failed")
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respond(w, status, errorResponse{Detail: detail})
}
