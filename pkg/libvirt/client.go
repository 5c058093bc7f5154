package libvirt

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/digitalocean/go-libvirt"
	"github.com/google/uuid"
)

// ErrDomainNotFound domain 不存在（或在两次调用之间被删除）
var ErrDomainNotFound = errors.New("domain not found")

type Client struct {
	conn *libvirt.Libvirt
}

// New 连接到指定 URI 的 libvirt，uri 为空时使用 qemu:///system
func New(uri string) (*Client, error) {
	if uri == "" {
		uri = string(libvirt.QEMUSystem)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse libvirt uri %q: %w", uri, err)
	}
	l, err := libvirt.ConnectToURI(u)
	if err != nil {
		return nil, fmt.Errorf("connect to libvirt %s: %w", uri, err)
	}
	return &Client{conn: l}, nil
}

// Close 断开 libvirt 连接
func (c *Client) Close() error {
	return c.conn.Disconnect()
}

// ListDomains 列出所有（运行中和已定义的）domain
func (c *Client) ListDomains() ([]libvirt.Domain, error) {
	flags := libvirt.ConnectListDomainsActive | libvirt.ConnectListDomainsInactive
	domains, _, err := c.conn.ConnectListAllDomains(1, flags)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	return domains, nil
}

// GetDomainByName 按名称查找 domain
func (c *Client) GetDomainByName(name string) (libvirt.Domain, error) {
	domain, err := c.conn.DomainLookupByName(name)
	if err != nil {
		return libvirt.Domain{}, wrapDomainError(name, "lookup domain", err)
	}
	return domain, nil
}

// GetDomainState 获取 domain 当前状态
func (c *Client) GetDomainState(domain libvirt.Domain) (libvirt.DomainState, error) {
	state, _, err := c.conn.DomainGetState(domain, 0)
	if err != nil {
		return libvirt.DomainNostate, wrapDomainError(domain.Name, "get domain state", err)
	}
	return libvirt.DomainState(state), nil
}

// wrapDomainError 把 libvirt 的 ERR_NO_DOMAIN 转换为 ErrDomainNotFound
func wrapDomainError(name, op string, err error) error {
	if libvirt.IsNotFound(err) {
		return fmt.Errorf("%s %s: %w", op, name, ErrDomainNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, name, err)
}

// FormatDomainUUID 将 domain UUID 格式化为标准字符串
func FormatDomainUUID(id libvirt.UUID) string {
	return uuid.UUID(id).String()
}

// FormatDomainState 将 domain 状态转换为可读字符串
func FormatDomainState(state libvirt.DomainState) string {
	switch state {
	case libvirt.DomainNostate:
		return "nostate"
	case libvirt.DomainRunning:
		return "running"
	case libvirt.DomainBlocked:
		return "blocked"
	case libvirt.DomainPaused:
		return "paused"
	case libvirt.DomainShutdown:
		return "shutting-down"
	case libvirt.DomainShutoff:
		return "stopped"
	case libvirt.DomainCrashed:
		return "crashed"
	case libvirt.DomainPmsuspended:
		return "suspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}
