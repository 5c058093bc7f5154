package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jimyag/jvc/internal/jvc/repository"
	"github.com/jimyag/jvc/internal/jvc/repository/model"
	"github.com/jimyag/jvc/pkg/libvirt"
	"github.com/rs/zerolog"
)

// SyncResult 一次同步的结果
type SyncResult struct {
	Synced  int
	Removed int64
}

// InstanceSyncer 定期把 libvirt domain 同步到实例索引
// 实例的生命周期由 libvirt 管理，索引只反映 libvirt 当前的状态
type InstanceSyncer struct {
	libvirtClient libvirt.LibvirtClient
	instanceRepo  repository.InstanceRepository
	tokenService  *TokenService
	interval      time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// NewInstanceSyncer 创建 InstanceSyncer
func NewInstanceSyncer(libvirtClient libvirt.LibvirtClient, repo *repository.Repository, tokenService *TokenService, interval time.Duration) *InstanceSyncer {
	return &InstanceSyncer{
		libvirtClient: libvirtClient,
		instanceRepo:  repository.NewInstanceRepository(repo.DB()),
		tokenService:  tokenService,
		interval:      interval,
		stop:          make(chan struct{}),
	}
}

// Name 实现 grace.Grace 接口
func (s *InstanceSyncer) Name() string {
	return "Instance Syncer"
}

// Run 立即同步一次，然后按间隔同步，直到 Shutdown 或 ctx 结束
func (s *InstanceSyncer) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if result, err := s.Sync(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to sync instances")
		} else {
			logger.Debug().
				Int("synced", result.Synced).
				Int64("removed", result.Removed).
				Msg("Instances synced")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case <-ticker.C:
		}
	}
}

// Shutdown 停止同步
func (s *InstanceSyncer) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

// Sync 同步一次
func (s *InstanceSyncer) Sync(ctx context.Context) (*SyncResult, error) {
	logger := zerolog.Ctx(ctx)

	domains, err := s.libvirtClient.ListDomains()
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}

	indexed, err := s.instanceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indexed instances: %w", err)
	}

	seen := make(map[string]struct{}, len(domains))
	ids := make([]string, 0, len(domains))
	for _, domain := range domains {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state, err := s.libvirtClient.GetDomainState(domain)
		if err != nil {
			// 列出之后被删除的 domain 在下一轮同步中处理
			if errors.Is(err, libvirt.ErrDomainNotFound) {
				continue
			}
			return nil, fmt.Errorf("get domain state %s: %w", domain.Name, err)
		}

		instance := &model.Instance{
			ID:         domain.Name,
			Name:       domain.Name,
			State:      libvirt.FormatDomainState(state),
			DomainUUID: libvirt.FormatDomainUUID(domain.UUID),
			DomainName: domain.Name,
		}
		if err := s.instanceRepo.Upsert(ctx, instance); err != nil {
			return nil, fmt.Errorf("upsert instance %s: %w", domain.Name, err)
		}
		seen[domain.Name] = struct{}{}
		ids = append(ids, domain.Name)
	}

	removed, err := s.instanceRepo.DeleteExcept(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("delete vanished instances: %w", err)
	}

	for _, m := range indexed {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		logger.Info().Str("instance_id", m.ID).Msg("Instance removed from index")
		if err := s.tokenService.RevokeInstance(ctx, m.ID); err != nil {
			return nil, err
		}
	}

	return &SyncResult{Synced: len(ids), Removed: removed}, nil
}
