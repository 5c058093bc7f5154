// Package config 加载 jvc 的配置
// 配置来源优先级：环境变量 > 配置文件 > 默认值
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jimyag/jvc/internal/jvc/entity"
	"gopkg.in/yaml.v3"
)

const (
	defaultAddress      = "0.0.0.0:7778"
	defaultLibvirtURI   = "qemu:///system"
	defaultLogLevel     = "info"
	defaultTokenTTL     = 10 * time.Minute
	defaultSyncInterval = time.Minute

	// DatabaseFile 实例索引和 token 所在的 SQLite 文件名
	DatabaseFile = "jvc.db"
)

type Config struct {
	// Address 是 HTTP 服务绑定地址
	// 可以通过环境变量 JVC_ADDRESS 配置
	Address string `yaml:"address"`

	// LibvirtURI 是 libvirt 连接 URI
	// 支持以下格式：
	// - qemu:///system (本地系统连接，默认)
	// - qemu+ssh://user@host/system (SSH 远程连接)
	// - qemu+tcp://host/system (TCP 远程连接)
	// 可以通过环境变量 LIBVIRT_URI 或 JVC_LIBVIRT_URI 配置
	LibvirtURI string `yaml:"libvirt_uri"`

	// DataDir 是 JVC 数据目录，存放 jvc.db
	// 可以通过环境变量 JVC_DATA_DIR 配置
	// 默认：~/.local/share/jvc
	DataDir string `yaml:"data_dir"`

	// LogLevel zerolog 日志级别，可以通过环境变量 JVC_LOG_LEVEL 配置
	LogLevel string `yaml:"log_level"`

	Console ConsoleConfig `yaml:"console"`
}

// ConsoleConfig 控制台相关配置
type ConsoleConfig struct {
	// TokenTTL 控制台 token 有效期
	TokenTTL time.Duration `yaml:"token_ttl"`
	// SyncInterval 从 libvirt 同步实例索引的间隔
	SyncInterval time.Duration `yaml:"sync_interval"`
	// Actions 支持的控制台 action，每个 action 对应一组控制台类型
	Actions []ActionConfig `yaml:"actions"`
}

// ActionConfig 一个控制台 action，例如 os-getVNCConsole
type ActionConfig struct {
	Name     string          `yaml:"name"`
	Backends []BackendConfig `yaml:"backends"`
}

// BackendConfig 一种控制台类型，例如 novnc
type BackendConfig struct {
	Type     string                 `yaml:"type"`
	Protocol entity.ConsoleProtocol `yaml:"protocol"`
	// BaseURL 返回给客户端的地址，token 会作为查询参数追加
	BaseURL string `yaml:"base_url"`
}

// Backend 按控制台类型查找
func (a *ActionConfig) Backend(consoleType string) (BackendConfig, bool) {
	for _, b := range a.Backends {
		if b.Type == consoleType {
			return b, true
		}
	}
	return BackendConfig{}, false
}

// New 使用默认值和环境变量创建配置
func New() (*Config, error) {
	return Load("")
}

// Load 从配置文件加载配置，path 为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Address:    defaultAddress,
		LibvirtURI: defaultLibvirtURI,
		DataDir:    defaultDataDir(),
		LogLevel:   defaultLogLevel,
		Console: ConsoleConfig{
			TokenTTL:     defaultTokenTTL,
			SyncInterval: defaultSyncInterval,
			Actions:      DefaultActions(),
		},
	}
}

// DefaultActions nova 兼容的默认控制台 action
func DefaultActions() []ActionConfig {
	return []ActionConfig{
		{
			Name: "os-getVNCConsole",
			Backends: []BackendConfig{
				{Type: "novnc", Protocol: entity.ConsoleProtocolVNC, BaseURL: "http://127.0.0.1:7778/vnc_auto.html"},
				{Type: "xvpvnc", Protocol: entity.ConsoleProtocolVNC, BaseURL: "http://127.0.0.1:7778/console"},
			},
		},
		{
			Name: "os-getSPICEConsole",
			Backends: []BackendConfig{
				{Type: "spice-html5", Protocol: entity.ConsoleProtocolSPICE, BaseURL: "http://127.0.0.1:7778/spice_auto.html"},
			},
		},
		{
			Name: "os-getSerialConsole",
			Backends: []BackendConfig{
				{Type: "serial", Protocol: entity.ConsoleProtocolSerial, BaseURL: "ws://127.0.0.1:7778/websockify"},
			},
		},
	}
}

// DatabasePath 返回 SQLite 数据库路径
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, errors.New("address is required"))
	}
	if c.LibvirtURI == "" {
		errs = append(errs, errors.New("libvirt_uri is required"))
	}
	if c.Console.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("console.token_ttl must be positive, got %s", c.Console.TokenTTL))
	}
	if c.Console.SyncInterval <= 0 {
		errs = append(errs, fmt.Errorf("console.sync_interval must be positive, got %s", c.Console.SyncInterval))
	}

	names := make(map[string]struct{}, len(c.Console.Actions))
	for _, action := range c.Console.Actions {
		if action.Name == "" {
			errs = append(errs, errors.New("console action name is required"))
			continue
		}
		if _, ok := names[action.Name]; ok {
			errs = append(errs, fmt.Errorf("duplicate console action %s", action.Name))
		}
		names[action.Name] = struct{}{}

		types := make(map[string]struct{}, len(action.Backends))
		for _, b := range action.Backends {
			if b.Type == "" {
				errs = append(errs, fmt.Errorf("console action %s: backend type is required", action.Name))
				continue
			}
			if _, ok := types[b.Type]; ok {
				errs = append(errs, fmt.Errorf("console action %s: duplicate backend type %s", action.Name, b.Type))
			}
			types[b.Type] = struct{}{}
			switch b.Protocol {
			case entity.ConsoleProtocolVNC, entity.ConsoleProtocolSPICE, entity.ConsoleProtocolSerial:
			default:
				errs = append(errs, fmt.Errorf("console action %s: backend %s has unknown protocol %q", action.Name, b.Type, b.Protocol))
			}
			if b.BaseURL == "" {
				errs = append(errs, fmt.Errorf("console action %s: backend %s requires base_url", action.Name, b.Type))
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Config) applyEnv() {
	if addr := os.Getenv("JVC_ADDRESS"); addr != "" {
		c.Address = addr
	}
	if uri := getLibvirtURI(); uri != "" {
		c.LibvirtURI = uri
	}
	if dir := os.Getenv("JVC_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if level := os.Getenv("JVC_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// getLibvirtURI 获取 libvirt URI 环境变量
func getLibvirtURI() string {
	// 1. 优先使用环境变量 LIBVIRT_URI
	if uri := os.Getenv("LIBVIRT_URI"); uri != "" {
		return uri
	}

	// 2. 尝试使用 JVC_LIBVIRT_URI
	return os.Getenv("JVC_LIBVIRT_URI")
}

// defaultDataDir 默认数据目录
func defaultDataDir() string {
	// 1. 使用用户主目录下的 .local/share/jvc
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "jvc")
	}

	// 2. 如果无法获取主目录，使用当前目录下的 data
	return filepath.Join(".", "data")
}
