package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TokenReaper 定期清理过期的控制台 token
type TokenReaper struct {
	tokenService *TokenService
	interval     time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// NewTokenReaper 创建 TokenReaper
func NewTokenReaper(tokenService *TokenService, interval time.Duration) *TokenReaper {
	return &TokenReaper{
		tokenService: tokenService,
		interval:     interval,
		stop:         make(chan struct{}),
	}
}

// Name 实现 grace.Grace 接口
func (r *TokenReaper) Name() string {
	return "Token Reaper"
}

// Run 按间隔清理过期 token，直到 Shutdown 或 ctx 结束
func (r *TokenReaper) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.stop:
			return nil
		case <-ticker.C:
			purged, err := r.tokenService.PurgeExpired(ctx)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to purge expired console tokens")
				continue
			}
			if purged > 0 {
				logger.Info().Int64("purged", purged).Msg("Expired console tokens purged")
			}
		}
	}
}

// Shutdown 停止清理
func (r *TokenReaper) Shutdown(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.stop) })
	return nil
}
