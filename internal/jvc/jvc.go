// Package jvc 提供 JVC 服务器的主入口和初始化逻辑
package jvc

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jimmicro/grace"
	"github.com/jimyag/jvc/internal/jvc/api"
	"github.com/jimyag/jvc/internal/jvc/config"
	"github.com/jimyag/jvc/internal/jvc/console"
	"github.com/jimyag/jvc/internal/jvc/repository"
	"github.com/jimyag/jvc/internal/jvc/service"
	"github.com/jimyag/jvc/pkg/libvirt"
	"github.com/rs/zerolog"
)

// tokenReapInterval 清理过期 token 的间隔
const tokenReapInterval = time.Minute

type Server struct {
	cfg    *config.Config
	logger zerolog.Logger

	repo          *repository.Repository
	libvirtClient libvirt.LibvirtClient

	api    *api.API
	syncer *service.InstanceSyncer
	reaper *service.TokenReaper
}

// New 创建服务器，连接 libvirt 并打开实例索引数据库
func New(cfg *config.Config) (*Server, error) {
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zerolog.DefaultContextLogger = &logger

	// 1. 创建 Libvirt Client
	libvirtClient, err := libvirt.New(cfg.LibvirtURI)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("libvirt_uri", cfg.LibvirtURI).Msg("Connected to libvirt")

	// 2. 打开实例索引和 token 数据库
	repo, err := repository.New(cfg.DatabasePath())
	if err != nil {
		_ = libvirtClient.Close()
		return nil, err
	}
	logger.Info().Str("database", cfg.DatabasePath()).Msg("Database opened")

	server, err := newServer(cfg, logger, libvirtClient, repo)
	if err != nil {
		_ = repo.Close()
		_ = libvirtClient.Close()
		return nil, err
	}
	return server, nil
}

// newServer 组装服务，libvirtClient 和 repo 由调用方创建
func newServer(cfg *config.Config, logger zerolog.Logger, libvirtClient libvirt.LibvirtClient, repo *repository.Repository) (*Server, error) {
	// 3. 创建服务
	tokenService := service.NewTokenService(repo, cfg.Console.TokenTTL)
	instanceService := service.NewInstanceService(repo)

	// 4. 每个 action 一个 handler，共用实例解析
	handlers := make([]api.ConsoleActionHandler, 0, len(cfg.Console.Actions))
	for _, action := range cfg.Console.Actions {
		provider := service.NewConsoleService(action, libvirtClient, tokenService)
		handlers = append(handlers, console.NewHandler(action.Name, instanceService, provider))
		logger.Debug().Str("action", action.Name).Int("backends", len(action.Backends)).Msg("Console action registered")
	}

	// 5. 创建 API
	apiInstance, err := api.New(cfg.Address, logger, handlers, tokenService, repo)
	if err != nil {
		return nil, fmt.Errorf("create api: %w", err)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		repo:          repo,
		libvirtClient: libvirtClient,
		api:           apiInstance,
		syncer:        service.NewInstanceSyncer(libvirtClient, repo, tokenService, cfg.Console.SyncInterval),
		reaper:        service.NewTokenReaper(tokenService, tokenReapInterval),
	}, nil
}

// NewLogger 创建 zerolog logger，level 为空时使用 info
func NewLogger(level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
		}
		lvl = parsed
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger(), nil
}

// Run 启动所有服务，直到收到退出信号
func (s *Server) Run(ctx context.Context) error {
	ctx = s.logger.WithContext(ctx)

	// 使用 grace.Shepherd 管理服务生命周期
	services := []grace.Grace{
		s.api,
		s.syncer,
		s.reaper,
	}

	shepherd := grace.NewShepherd(
		services,
		grace.WithTimeout(30*time.Second),
		grace.WithLogger(&zerologLogger{logger: s.logger}),
	)

	s.logger.Info().Str("address", s.cfg.Address).Msg("Starting JVC server")
	shepherd.Start(ctx)
	return s.close()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.api.Shutdown(ctx); err != nil {
		return err
	}
	_ = s.syncer.Shutdown(ctx)
	_ = s.reaper.Shutdown(ctx)
	return nil
}

// Name 实现 grace.Grace 接口
func (s *Server) Name() string {
	return "JVC Server"
}

func (s *Server) close() error {
	if err := s.repo.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	if err := s.libvirtClient.Close(); err != nil {
		return fmt.Errorf("close libvirt connection: %w", err)
	}
	return nil
}

// zerologLogger 实现 grace.Logger 接口
type zerologLogger struct {
	logger zerolog.Logger
}

func (l *zerologLogger) Info(msg string, args ...interface{}) {
	event := l.logger.Info()
	// 如果有参数，使用 Msgf 格式化消息
	if len(args) > 0 {
		event.Msgf(msg, args...)
	} else {
		event.Msg(msg)
	}
}

func (l *zerologLogger) Error(msg string, args ...interface{}) {
	event := l.logger.Error()
	if len(args) > 0 {
		event.Msgf(msg, args...)
	} else {
		event.Msg(msg)
	}
}
