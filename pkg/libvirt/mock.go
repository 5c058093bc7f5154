package libvirt

import (
	"github.com/digitalocean/go-libvirt"
	"github.com/stretchr/testify/mock"
)

// MockClient 是 LibvirtClient 的 mock 实现
// 用于测试，不需要真实的 libvirt 连接
type MockClient struct {
	mock.Mock
}

var _ LibvirtClient = (*MockClient)(nil)

// NewMockClient 创建新的 MockClient
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) ListDomains() ([]libvirt.Domain, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]libvirt.Domain), args.Error(1)
}

func (m *MockClient) GetDomainByName(name string) (libvirt.Domain, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return libvirt.Domain{}, args.Error(1)
	}
	return args.Get(0).(libvirt.Domain), args.Error(1)
}

func (m *MockClient) GetDomainState(domain libvirt.Domain) (libvirt.DomainState, error) {
	args := m.Called(domain)
	return args.Get(0).(libvirt.DomainState), args.Error(1)
}

func (m *MockClient) GetDomainConsoleInfo(domain libvirt.Domain) (*ConsoleInfo, error) {
	args := m.Called(domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ConsoleInfo), args.Error(1)
}

func (m *MockClient) QueryGraphics(domain libvirt.Domain, graphicsType string) (*GraphicsStatus, error) {
	args := m.Called(domain, graphicsType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GraphicsStatus), args.Error(1)
}

func (m *MockClient) Close() error {
	return m.Called().Error(0)
}
