package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"metahub/internal/core/domain"
	"metahub/internal/core/port"

	"github.com/google/shlex"
)

// Parser turns free slash-command text into a (module, command, arguments)
// tuple against the live registry. Quoted substrings count as single tokens
// so arguments may contain spaces.
type Parser struct {
	store port.ModuleStore
}

func NewParser(store port.ModuleStore) *Parser {
	return &Parser{store: store}
}

func (p *Parser) Parse(ctx context.Context, meta *domain.CommandMetadata) (*domain.Module,
	*domain.Command, []string, error) {
	tokens, err := shlex.Split(meta.Text)
	if err != nil || len(tokens) == 0 {
		return nil, nil, nil, &domain.ParseError{
			Kind: domain.ErrUsage,
			UserMessage: fmt.Sprintf("Usage: `%s [module] [command]`. Available modules: %s",
				meta.Command, p.formatModuleNames(ctx)),
		}
	}

	if len(tokens) == 1 {
		// single token selects the module's default command
		tokens = append(tokens, "")
	}

	moduleName, commandName, arguments := tokens[0], tokens[1], tokens[2:]

	module, err := p.store.GetModule(ctx, moduleName)
	if err != nil {
		return nil, nil, nil, &domain.ParseError{
			Kind: domain.ErrUnknownModule,
			UserMessage: fmt.Sprintf("Module `%s` does not exist. Available modules: %s",
				moduleName, p.formatModuleNames(ctx)),
		}
	}

	command, ok := module.Commands[commandName]
	if !ok {
		available := module.CommandNames()
		sort.Strings(available)

		return nil, nil, nil, &domain.ParseError{
			Kind: domain.ErrUnknownCommand,
			UserMessage: fmt.Sprintf("Command `%s` in module `%s` does not exist. "+
				"Available commands: %s",
				commandName, moduleName, formatStrings(available)),
		}
	}

	required := command.RequiredArguments()
	if len(arguments) < len(required) {
		names := make([]string, len(required))
		for i, arg := range required {
			names[i] = arg.Name
		}

		return nil, nil, nil, &domain.ParseError{
			Kind: domain.ErrMissingArguments,
			UserMessage: fmt.Sprintf("Missing one or more required arguments for %s. "+
				"Required arguments: %s", commandName, formatStrings(names)),
		}
	}

	// excess arguments beyond the declared count pass through untouched
	return module, &command, arguments, nil
}

func (p *Parser) formatModuleNames(ctx context.Context) string {
	names, err := p.store.ModuleNames(ctx)
	if err != nil {
		return ""
	}

	sort.Strings(names)

	return formatStrings(names)
}

func formatStrings(strs []string) string {
	quoted := make([]string, len(strs))
	for i, s := range strs {
		quoted[i] = "`" + s + "`"
	}

	return strings.Join(quoted, " ")
}
