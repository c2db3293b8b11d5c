package service

import (
	"errors"
	"testing"

	"metahub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCommandDispatcherDispatch(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		mockSetup func(store *MockStore, messenger *MockMessenger, caller *MockCaller)
		wantSent  bool
	}{
		{
			name: "successful delivery",
			text: "help me 123",
			mockSetup: func(store *MockStore, _ *MockMessenger, caller *MockCaller) {
				store.On("GetModule", mock.Anything, "help").Return(helpModule(), nil)
				caller.On("SendCommand", mock.Anything, mock.Anything, "me",
					mock.MatchedBy(func(d *domain.CommandDelivery) bool {
						return d.Arguments["topic"] == "123" && d.Metadata.UserID == "U1"
					})).Return(nil)
			},
			wantSent: true,
		},
		{
			name: "parse failure reports ephemeral and stops",
			text: "nomodule x",
			mockSetup: func(store *MockStore, messenger *MockMessenger, _ *MockCaller) {
				store.On("GetModule", mock.Anything, "nomodule").
					Return(nil, domain.ErrModuleNotFound)
				store.On("ModuleNames", mock.Anything).Return([]string{"help"}, nil)
				messenger.On("SendEphemeral", mock.Anything, "C1", "U1",
					mock.MatchedBy(func(text string) bool {
						return text != adminErrorMessage && len(text) > 0
					})).Return(nil)
			},
		},
		{
			name: "module non-2xx response is logged only",
			text: "help me 123",
			mockSetup: func(store *MockStore, _ *MockMessenger, caller *MockCaller) {
				store.On("GetModule", mock.Anything, "help").Return(helpModule(), nil)
				caller.On("SendCommand", mock.Anything, mock.Anything, "me", mock.Anything).
					Return(&domain.ModuleResponseError{StatusCode: 500})
			},
			wantSent: true,
		},
		{
			name: "connection failure notifies the user",
			text: "help me 123",
			mockSetup: func(store *MockStore, messenger *MockMessenger, caller *MockCaller) {
				store.On("GetModule", mock.Anything, "help").Return(helpModule(), nil)
				caller.On("SendCommand", mock.Anything, mock.Anything, "me", mock.Anything).
					Return(errors.New("connection refused"))
				messenger.On("SendEphemeral", mock.Anything, "C1", "U1", adminErrorMessage).
					Return(nil)
			},
			wantSent: true,
		},
		{
			name: "failing error notification is swallowed",
			text: "",
			mockSetup: func(store *MockStore, messenger *MockMessenger, _ *MockCaller) {
				store.On("ModuleNames", mock.Anything).Return([]string{"help"}, nil)
				messenger.On("SendEphemeral", mock.Anything, "C1", "U1", mock.Anything).
					Return(errors.New("slack down"))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := new(MockStore)
			messenger := new(MockMessenger)
			caller := new(MockCaller)
			tc.mockSetup(store, messenger, caller)

			dispatcher := NewCommandDispatcher(store, messenger, caller)
			dispatcher.Dispatch(t.Context(), commandMeta(tc.text))

			store.AssertExpectations(t)
			messenger.AssertExpectations(t)
			caller.AssertExpectations(t)

			if !tc.wantSent {
				caller.AssertNotCalled(t, "SendCommand",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestZipArguments(t *testing.T) {
	declared := []domain.CommandArgument{
		{Name: "first"},
		{Name: "second", IsOptional: true},
		{Name: "third", IsOptional: true},
	}

	tests := []struct {
		name     string
		supplied []string
		want     map[string]string
	}{
		{
			name:     "all declared supplied",
			supplied: []string{"a", "b", "c"},
			want:     map[string]string{"first": "a", "second": "b", "third": "c"},
		},
		{
			name:     "extras beyond declared names dropped",
			supplied: []string{"a", "b", "c", "d", "e"},
			want:     map[string]string{"first": "a", "second": "b", "third": "c"},
		},
		{
			name:     "missing optionals omitted",
			supplied: []string{"a"},
			want:     map[string]string{"first": "a"},
		},
		{
			name:     "nothing supplied",
			supplied: nil,
			want:     map[string]string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, zipArguments(declared, tc.supplied))
		})
	}
}
