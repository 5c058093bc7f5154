package libvirt

import (
	"github.com/digitalocean/go-libvirt"
)

// LibvirtClient 定义控制台服务使用的 libvirt 操作
// 用于抽象 libvirt 连接，便于测试和 mock
type LibvirtClient interface {
	// Domain 查询
	ListDomains() ([]libvirt.Domain, error)
	GetDomainByName(name string) (libvirt.Domain, error)
	GetDomainState(domain libvirt.Domain) (libvirt.DomainState, error)

	// Console 操作
	GetDomainConsoleInfo(domain libvirt.Domain) (*ConsoleInfo, error)
	QueryGraphics(domain libvirt.Domain, graphicsType string) (*GraphicsStatus, error)

	Close() error
}

var _ LibvirtClient = (*Client)(nil)
