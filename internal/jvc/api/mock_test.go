package api

import (
	"context"

	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/stretchr/testify/mock"
)

// MockResolver 是 console.InstanceResolver 的 mock 实现
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveInstance(ctx context.Context, instanceID string) (*entity.Instance, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Instance), args.Error(1)
}

// MockProvider 是 console.AccessProvider 的 mock 实现
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetConsole(ctx context.Context, instance *entity.Instance, consoleType string) (*entity.ConsoleDescriptor, error) {
	args := m.Called(ctx, instance, consoleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ConsoleDescriptor), args.Error(1)
}

// MockTokenService 是 TokenServiceInterface 的 mock 实现
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Validate(ctx context.Context, token string) (*entity.ConsoleToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ConsoleToken), args.Error(1)
}

func (m *MockTokenService) DescribeConsoleToken(ctx context.Context, req *entity.DescribeConsoleTokenRequest) (*entity.DescribeConsoleTokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DescribeConsoleTokenResponse), args.Error(1)
}

// MockPinger 是 Pinger 的 mock 实现
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
