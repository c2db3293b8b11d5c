package port

import (
	"context"
	"metahub/internal/core/domain"
)

type ModuleCaller interface {
	// SendCommand POSTs a command delivery to {module.url}/commands/{name}.
	// A non-2xx reply surfaces as *domain.ModuleResponseError; connection
	// failures surface as plain errors.
	SendCommand(ctx context.Context, module *domain.Module, commandName string,
		delivery *domain.CommandDelivery) error
	// SendAction POSTs an action delivery to {module.url}/actions/{id}.
	SendAction(ctx context.Context, module *domain.Module, actionID string,
		delivery *domain.ActionDelivery) error
}
