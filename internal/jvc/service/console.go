package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	libvirtlib "github.com/digitalocean/go-libvirt"
	"github.com/jimyag/jvc/internal/jvc/config"
	"github.com/jimyag/jvc/internal/jvc/console"
	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/jimyag/jvc/pkg/libvirt"
	"github.com/rs/zerolog"
)

// ConsoleService 为一个控制台 action 提供控制台地址
// action 的 backends 决定支持哪些控制台类型
type ConsoleService struct {
	action        config.ActionConfig
	libvirtClient libvirt.LibvirtClient
	tokenService  *TokenService
}

var _ console.AccessProvider = (*ConsoleService)(nil)

// NewConsoleService 创建 ConsoleService
func NewConsoleService(action config.ActionConfig, libvirtClient libvirt.LibvirtClient, tokenService *TokenService) *ConsoleService {
	return &ConsoleService{
		action:        action,
		libvirtClient: libvirtClient,
		tokenService:  tokenService,
	}
}

// Action 返回 action 名称
func (s *ConsoleService) Action() string {
	return s.action.Name
}

// GetConsole 获取实例的控制台地址
func (s *ConsoleService) GetConsole(ctx context.Context, instance *entity.Instance, consoleType string) (*entity.ConsoleDescriptor, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("instance_id", instance.ID).
		Str("console_type", consoleType).
		Logger()

	// 1. 控制台类型必须属于当前 action
	backend, ok := s.action.Backend(consoleType)
	if !ok {
		return nil, console.InvalidConsoleType(consoleType)
	}

	// 2. 获取 domain
	domainName := instance.DomainName
	if domainName == "" {
		domainName = instance.ID
	}
	domain, err := s.libvirtClient.GetDomainByName(domainName)
	if err != nil {
		return nil, s.domainError(instance.ID, err)
	}

	// 3. 只有运行中的 domain 才有可连接的控制台
	state, err := s.libvirtClient.GetDomainState(domain)
	if err != nil {
		return nil, s.domainError(instance.ID, err)
	}
	if state != libvirtlib.DomainRunning {
		logger.Info().Str("state", libvirt.FormatDomainState(state)).Msg("Instance is not running")
		return nil, console.InstanceNotReady(instance.ID,
			fmt.Errorf("domain %s is %s", domainName, libvirt.FormatDomainState(state)))
	}

	// 4. 获取控制台信息
	info, err := s.libvirtClient.GetDomainConsoleInfo(domain)
	if err != nil {
		return nil, s.domainError(instance.ID, err)
	}
	network, target, err := consoleTarget(backend.Protocol, info)
	if err != nil {
		logger.Info().Err(err).Msg("Console device not available")
		return nil, console.InstanceNotReady(instance.ID, err)
	}
	if err := s.checkGraphicsEnabled(ctx, domain, backend.Protocol); err != nil {
		logger.Info().Err(err).Msg("Graphics server not enabled")
		return nil, console.InstanceNotReady(instance.ID, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 5. 签发 token
	token, err := s.tokenService.Issue(ctx, &entity.ConsoleToken{
		InstanceID:  instance.ID,
		ConsoleType: consoleType,
		Protocol:    backend.Protocol,
		Network:     network,
		Target:      target,
	})
	if err != nil {
		return nil, err
	}

	consoleURL, err := tokenURL(backend.BaseURL, token.Token)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("network", network).
		Str("target", target).
		Msg("Console access granted")

	return &entity.ConsoleDescriptor{URL: consoleURL, Type: consoleType}, nil
}

// checkGraphicsEnabled 向 QEMU 确认图形服务已启用
// QMP 不可用时以 domain XML 为准
func (s *ConsoleService) checkGraphicsEnabled(ctx context.Context, domain libvirtlib.Domain, protocol entity.ConsoleProtocol) error {
	if protocol != entity.ConsoleProtocolVNC && protocol != entity.ConsoleProtocolSPICE {
		return nil
	}
	status, err := s.libvirtClient.QueryGraphics(domain, string(protocol))
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("domain", domain.Name).Msg("QMP graphics query failed, using domain XML")
		return nil
	}
	if !status.Enabled {
		return fmt.Errorf("%s server of domain %s is disabled", protocol, domain.Name)
	}
	return nil
}

// domainError domain 在解析之后消失时视为实例不存在
func (s *ConsoleService) domainError(instanceID string, err error) error {
	if errors.Is(err, libvirt.ErrDomainNotFound) {
		return console.InstanceNotFound(instanceID, err)
	}
	return err
}

// consoleTarget 根据协议选择连接目标
func consoleTarget(protocol entity.ConsoleProtocol, info *libvirt.ConsoleInfo) (network, target string, err error) {
	switch protocol {
	case entity.ConsoleProtocolVNC, entity.ConsoleProtocolSPICE:
		g, ok := info.FindGraphics(string(protocol))
		if !ok {
			return "", "", fmt.Errorf("no %s graphics device", protocol)
		}
		if !g.Attachable() {
			return "", "", fmt.Errorf("%s graphics device has no socket or port", protocol)
		}
		if g.Socket != "" {
			return "unix", g.Socket, nil
		}
		return "tcp", net.JoinHostPort(connectHost(g.Host), strconv.Itoa(g.Port)), nil
	case entity.ConsoleProtocolSerial:
		if info.SerialDevice == "" {
			return "", "", errors.New("no pty serial device")
		}
		return "pty", info.SerialDevice, nil
	default:
		return "", "", fmt.Errorf("unsupported console protocol %q", protocol)
	}
}

// connectHost 监听所有地址时通过回环地址连接
func connectHost(host string) string {
	switch host {
	case "", "0.0.0.0":
		return "127.0.0.1"
	case "::":
		return "::1"
	default:
		return host
	}
}

// tokenURL 在 baseURL 上追加 token 查询参数
func tokenURL(baseURL, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse console base url %q: %w", baseURL, err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
