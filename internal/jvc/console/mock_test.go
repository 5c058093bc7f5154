package console

import (
	"context"

	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/stretchr/testify/mock"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveInstance(ctx context.Context, instanceID string) (*entity.Instance, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Instance), args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GetConsole(ctx context.Context, instance *entity.Instance, consoleType string) (*entity.ConsoleDescriptor, error) {
	args := m.Called(ctx, instance, consoleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ConsoleDescriptor), args.Error(1)
}
