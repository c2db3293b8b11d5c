package service

import (
	"context"
	"errors"
	"sync"

	"metahub/internal/core/domain"
	"metahub/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// ActionDispatcher routes interactive callbacks to the modules owning the
// referenced action ids. One callback can fan out to several modules; the
// deliveries run concurrently and fail independently.
type ActionDispatcher struct {
	store  port.ModuleStore
	caller port.ModuleCaller
}

func NewActionDispatcher(store port.ModuleStore, caller port.ModuleCaller) *ActionDispatcher {
	return &ActionDispatcher{store: store, caller: caller}
}

func (d *ActionDispatcher) Dispatch(ctx context.Context, meta *domain.ActionMetadata) {
	dispatchID, _ := uuid.NewV4()
	l := log.With().
		Str("dispatchId", dispatchID.String()).
		Str("payloadType", meta.Type).
		Logger()

	delivery := &domain.ActionDelivery{Metadata: meta.Raw}

	var wg sync.WaitGroup
	for _, actionID := range meta.ActionIDs() {
		module, err := d.store.GetModuleByAction(ctx, actionID)
		if err != nil {
			if !errors.Is(err, domain.ErrModuleNotFound) {
				l.Error().Err(err).Str("actionId", actionID).Msg("action lookup failed")
			}
			// expired or never registered, drop silently
			continue
		}

		wg.Add(1)
		go func(module *domain.Module, actionID string) {
			defer wg.Done()

			err := d.caller.SendAction(ctx, module, actionID, delivery)
			if err != nil {
				l.Error().Err(err).
					Str("module", module.Name).
					Str("actionId", actionID).
					Msg("action delivery failed")
				return
			}

			l.Debug().Str("module", module.Name).Str("actionId", actionID).Msg("action delivered")
		}(module, actionID)
	}

	wg.Wait()
}
