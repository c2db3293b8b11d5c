package service

import (
	"context"
	"errors"

	"metahub/internal/core/domain"
	"metahub/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const adminErrorMessage = "Command execution failed. Please consult with the administrator."

// CommandDispatcher is the single entry point per slash-command event. It
// never propagates errors: user-input problems become ephemeral messages,
// delivery problems become log entries, and every invocation terminates
// normally from the caller's point of view.
type CommandDispatcher struct {
	parser    *Parser
	messenger port.Messenger
	caller    port.ModuleCaller
}

func NewCommandDispatcher(store port.ModuleStore, messenger port.Messenger,
	caller port.ModuleCaller) *CommandDispatcher {
	return &CommandDispatcher{
		parser:    NewParser(store),
		messenger: messenger,
		caller:    caller,
	}
}

func (d *CommandDispatcher) Dispatch(ctx context.Context, meta *domain.CommandMetadata) {
	dispatchID, _ := uuid.NewV4()
	l := log.With().
		Str("dispatchId", dispatchID.String()).
		Str("userId", meta.UserID).
		Str("channelId", meta.ChannelID).
		Logger()

	l.Debug().Str("text", meta.Text).Msg("dispatching command")

	module, command, arguments, err := d.parser.Parse(ctx, meta)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			d.notify(ctx, meta, parseErr.UserMessage)
			return
		}

		l.Error().Err(err).Msg("unexpected parse failure")

		return
	}

	delivery := &domain.CommandDelivery{
		Arguments: zipArguments(command.Arguments, arguments),
		Metadata:  meta,
	}

	err = d.caller.SendCommand(ctx, module, command.Name, delivery)
	if err != nil {
		var responseErr *domain.ModuleResponseError
		if errors.As(err, &responseErr) {
			// the module answered; whatever went wrong is its to report
			l.Error().Err(err).Str("module", module.Name).Msg("module request failed")
			return
		}

		l.Error().Err(err).Str("module", module.Name).Msg("module unreachable")
		d.notify(ctx, meta, adminErrorMessage)

		return
	}

	l.Debug().Str("module", module.Name).Str("command", command.Name).Msg("command delivered")
}

func (d *CommandDispatcher) notify(ctx context.Context, meta *domain.CommandMetadata, text string) {
	log.Info().
		Str("userId", meta.UserID).
		Str("channelId", meta.ChannelID).
		Str("message", text).
		Msg("sending ephemeral error message")

	err := d.messenger.SendEphemeral(ctx, meta.ChannelID, meta.UserID, text)
	if err != nil {
		log.Error().Err(err).Msg("failed to send ephemeral error message")
	}
}

// zipArguments pairs declared argument names with supplied values by
// position. Supplied values beyond the declared names are dropped here;
// declared names beyond the supplied values are omitted from the map.
func zipArguments(declared []domain.CommandArgument, supplied []string) map[string]string {
	arguments := make(map[string]string)
	for i, arg := range declared {
		if i >= len(supplied) {
			break
		}
		arguments[arg.Name] = supplied[i]
	}

	return arguments
}
