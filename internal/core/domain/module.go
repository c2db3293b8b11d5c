package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var moduleNamePattern = regexp.MustCompile(`^\w{1,255}$`)

// CommandArgument describes one positional argument of a command.
type CommandArgument struct {
	Name        string `json:"name"`
	IsOptional  bool   `json:"is_optional"`
	Description string `json:"description,omitempty"`
}

// Command is a named operation a module exposes. An empty name marks the
// module's default command, triggered when the user supplies no command token.
type Command struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Arguments   []CommandArgument `json:"arguments"`
}

// RequiredArguments returns the non-optional arguments in declaration order.
func (c *Command) RequiredArguments() []CommandArgument {
	var required []CommandArgument
	for _, arg := range c.Arguments {
		if !arg.IsOptional {
			required = append(required, arg)
		}
	}

	return required
}

func (c *Command) validate() error {
	hasOptional := false
	for _, arg := range c.Arguments {
		if arg.Name == "" {
			return fmt.Errorf("%w: empty argument name in command %q", ErrInvalidModule, c.Name)
		}

		if hasOptional && !arg.IsOptional {
			return fmt.Errorf("%w: required argument %q follows an optional one in command %q",
				ErrInvalidModule, arg.Name, c.Name)
		}

		hasOptional = hasOptional || arg.IsOptional
	}

	return nil
}

// Module is the registry record a remote service sends with each heartbeat.
// Each heartbeat replaces the previous record wholesale.
type Module struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	URL         string             `json:"url"`
	Commands    map[string]Command `json:"commands"`
	Actions     []string           `json:"actions,omitempty"`
}

// Validate checks the record invariants: a word-character name, an absolute
// http(s) URL, and command map keys matching their command names.
func (m *Module) Validate() error {
	if !moduleNamePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: name must be 1-255 word characters, got %q", ErrInvalidModule, m.Name)
	}

	u, err := url.Parse(m.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: url must be an absolute http(s) URL, got %q", ErrInvalidModule, m.URL)
	}

	for key, command := range m.Commands {
		if key != command.Name {
			return fmt.Errorf("%w: command map key %q does not match command name %q",
				ErrInvalidModule, key, command.Name)
		}

		if err := command.validate(); err != nil {
			return err
		}
	}

	return nil
}

// CommandNames returns all command names of the module in registration order
// as far as Go maps allow, i.e. unspecified. Callers sort for display.
func (m *Module) CommandNames() []string {
	names := make([]string, 0, len(m.Commands))
	for name := range m.Commands {
		names = append(names, name)
	}

	return names
}

// ActionID builds the composite routing key for an interactive callback.
func ActionID(payloadType, name string) string {
	return payloadType + ":" + name
}

// SplitActionID breaks an action id into its payload type and name parts.
func SplitActionID(actionID string) (payloadType, name string, ok bool) {
	payloadType, name, ok = strings.Cut(actionID, ":")
	return payloadType, name, ok
}
