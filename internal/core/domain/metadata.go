package domain

import "encoding/json"

// CommandMetadata carries the slash-command invocation context. It is scoped
// to a single dispatch and forwarded verbatim to the module as the metadata
// half of the delivery payload.
type CommandMetadata struct {
	Token       string `json:"token,omitempty"`
	Command     string `json:"command"`
	Text        string `json:"text"`
	ResponseURL string `json:"response_url,omitempty"`
	TriggerID   string `json:"trigger_id,omitempty"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	ChannelID   string `json:"channel_id"`
}

// ActionRef is one interactive element referenced by a callback.
type ActionRef struct {
	ActionID string `json:"action_id"`
	BlockID  string `json:"block_id,omitempty"`
	Value    string `json:"value,omitempty"`
}

// ViewRef is the modal view attached to a view_submission callback.
type ViewRef struct {
	ID         string `json:"id,omitempty"`
	CallbackID string `json:"callback_id,omitempty"`
}

// ActionUser identifies who triggered an interactive callback.
type ActionUser struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ActionChannel identifies where an interactive callback was triggered.
type ActionChannel struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ActionMetadata is the parsed interactive callback. Raw holds the original
// payload bytes so the fan-out forwards exactly what the platform sent,
// including fields this struct does not model.
type ActionMetadata struct {
	Type        string         `json:"type"`
	CallbackID  string         `json:"callback_id,omitempty"`
	TriggerID   string         `json:"trigger_id,omitempty"`
	ResponseURL string         `json:"response_url,omitempty"`
	User        *ActionUser    `json:"user,omitempty"`
	Channel     *ActionChannel `json:"channel,omitempty"`
	Actions     []ActionRef    `json:"actions,omitempty"`
	View        *ViewRef       `json:"view,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// ActionIDs derives the deduplicated set of action ids this callback refers
// to. A single callback can legitimately name several: each interactive
// element, the legacy top-level callback id, and the enclosing view's
// callback id all count.
func (m *ActionMetadata) ActionIDs() []string {
	seen := make(map[string]struct{})
	var ids []string

	add := func(name string) {
		if name == "" {
			return
		}
		id := ActionID(m.Type, name)
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, action := range m.Actions {
		add(action.ActionID)
	}
	add(m.CallbackID)
	if m.View != nil {
		add(m.View.CallbackID)
	}

	return ids
}

// CommandDelivery is the body POSTed to a module's command endpoint.
type CommandDelivery struct {
	Arguments map[string]string `json:"arguments"`
	Metadata  *CommandMetadata  `json:"metadata"`
}

// ActionDelivery is the body POSTed to a module's action endpoint. Metadata
// is the untouched callback payload.
type ActionDelivery struct {
	Metadata json.RawMessage `json:"metadata"`
}

// ChatMessage is a relay request from a module asking the hub to post into a
// channel on its behalf.
type ChatMessage struct {
	ChannelID     string          `json:"channel_id"`
	Text          string          `json:"text"`
	Blocks        json.RawMessage `json:"blocks,omitempty"`
	SendEphemeral bool            `json:"send_ephemeral"`
	UserID        string          `json:"user_id,omitempty"`
}

// Validate rejects ephemeral messages without a recipient.
func (m *ChatMessage) Validate() error {
	if m.ChannelID == "" {
		return ErrMissingChannel
	}

	if m.SendEphemeral && m.UserID == "" {
		return ErrEphemeralNeedsUser
	}

	return nil
}
