package service

import (
	"context"

	"metahub/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Register(ctx context.Context, module *domain.Module) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *MockStore) GetModule(ctx context.Context, name string) (*domain.Module, error) {
	args := m.Called(ctx, name)
	if module := args.Get(0); module != nil {
		return module.(*domain.Module), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockStore) GetModuleByAction(ctx context.Context, actionID string) (*domain.Module, error) {
	args := m.Called(ctx, actionID)
	if module := args.Get(0); module != nil {
		return module.(*domain.Module), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockStore) ModuleNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if names := args.Get(0); names != nil {
		return names.([]string), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockStore) AllModules(ctx context.Context) (map[string]*domain.Module, error) {
	args := m.Called(ctx)
	if modules := args.Get(0); modules != nil {
		return modules.(map[string]*domain.Module), args.Error(1)
	}

	return nil, args.Error(1)
}

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendEphemeral(ctx context.Context, channelID, userID, text string) error {
	args := m.Called(ctx, channelID, userID, text)
	return args.Error(0)
}

func (m *MockMessenger) SendMessage(ctx context.Context, message *domain.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type MockCaller struct {
	mock.Mock
}

func (m *MockCaller) SendCommand(ctx context.Context, module *domain.Module, commandName string,
	delivery *domain.CommandDelivery) error {
	args := m.Called(ctx, module, commandName, delivery)
	return args.Error(0)
}

func (m *MockCaller) SendAction(ctx context.Context, module *domain.Module, actionID string,
	delivery *domain.ActionDelivery) error {
	args := m.Called(ctx, module, actionID, delivery)
	return args.Error(0)
}
