// Package modulekit implements the module side of the hub's registration
// contract: declare commands, actions and views, serve the delivery
// endpoints the hub dispatches to, and keep the registry lease alive with
// periodic heartbeats.
package modulekit

import (
	"fmt"
	"time"

	"metahub/internal/core/domain"
)

const (
	actionTypeBlock = "block_actions"
	actionTypeView  = "view_submission"

	defaultHeartbeatDelay = 10 * time.Second
)

// Module is a declarative builder for one hub module. Register handlers,
// mount Router on the module's HTTP server and run Heartbeat in the
// background.
type Module struct {
	name           string
	description    string
	moduleURL      string
	hubURL         string
	heartbeatDelay time.Duration

	commands   map[string]commandDef
	actions    map[string]ActionFunc
	views      map[string]ActionFunc
	converters map[string]ConverterFunc
}

type commandDef struct {
	fn          CommandFunc
	description string
	args        []Arg
}

// Arg declares one positional command argument. Type selects the converter
// applied to the raw string value; an unregistered type passes the string
// through unchanged.
type Arg struct {
	Name        string
	Description string
	Type        string
	Optional    bool
}

type Option func(*Module)

func WithDescription(description string) Option {
	return func(m *Module) { m.description = description }
}

func WithHeartbeatDelay(delay time.Duration) Option {
	return func(m *Module) { m.heartbeatDelay = delay }
}

func New(name, moduleURL, hubURL string, opts ...Option) *Module {
	m := &Module{
		name:           name,
		moduleURL:      moduleURL,
		hubURL:         hubURL,
		heartbeatDelay: defaultHeartbeatDelay,
		commands:       make(map[string]commandDef),
		actions:        make(map[string]ActionFunc),
		views:          make(map[string]ActionFunc),
		converters:     defaultConverters(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Command registers a handler under the given name. The empty name is the
// module's default command.
func (m *Module) Command(name, description string, fn CommandFunc, args ...Arg) error {
	if _, ok := m.commands[name]; ok {
		return fmt.Errorf("duplicate command name %q", name)
	}

	m.commands[name] = commandDef{fn: fn, description: description, args: args}

	return nil
}

// Action registers a handler for a block_actions callback.
func (m *Module) Action(name string, fn ActionFunc) error {
	if _, ok := m.actions[name]; ok {
		return fmt.Errorf("duplicate action name %q", name)
	}

	m.actions[name] = fn

	return nil
}

// View registers a handler for a view_submission callback.
func (m *Module) View(name string, fn ActionFunc) error {
	if _, ok := m.views[name]; ok {
		return fmt.Errorf("duplicate view name %q", name)
	}

	m.views[name] = fn

	return nil
}

// Converter binds a type tag to a parsing function, replacing any previous
// binding for that tag.
func (m *Module) Converter(typeTag string, fn ConverterFunc) {
	m.converters[typeTag] = fn
}

// Payload builds the registry record the heartbeat sends to the hub.
func (m *Module) Payload() *domain.Module {
	commands := make(map[string]domain.Command, len(m.commands))
	for name, def := range m.commands {
		arguments := make([]domain.CommandArgument, len(def.args))
		for i, arg := range def.args {
			arguments[i] = domain.CommandArgument{
				Name:        arg.Name,
				IsOptional:  arg.Optional,
				Description: arg.Description,
			}
		}

		commands[name] = domain.Command{
			Name:        name,
			Description: def.description,
			Arguments:   arguments,
		}
	}

	actions := make([]string, 0, len(m.actions)+len(m.views))
	for name := range m.actions {
		actions = append(actions, domain.ActionID(actionTypeBlock, name))
	}
	for name := range m.views {
		actions = append(actions, domain.ActionID(actionTypeView, name))
	}

	return &domain.Module{
		Name:        m.name,
		Description: m.description,
		URL:         m.moduleURL,
		Commands:    commands,
		Actions:     actions,
	}
}
