package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jimyag/jvc/internal/jvc/console"
	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/jimyag/jvc/internal/jvc/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// InstanceService 基于实例索引解析实例
type InstanceService struct {
	instanceRepo repository.InstanceRepository
}

var _ console.InstanceResolver = (*InstanceService)(nil)

// NewInstanceService 创建 InstanceService
func NewInstanceService(repo *repository.Repository) *InstanceService {
	return &InstanceService{
		instanceRepo: repository.NewInstanceRepository(repo.DB()),
	}
}

// ResolveInstance 根据实例 ID（domain 名称）或 domain UUID 查找实例
// 索引中不存在（或已被同步删除）时返回 console.ErrInstanceNotFound
func (s *InstanceService) ResolveInstance(ctx context.Context, instanceID string) (*entity.Instance, error) {
	logger := zerolog.Ctx(ctx)

	if instanceID == "" {
		return nil, console.InstanceNotFound(instanceID, nil)
	}

	m, err := s.instanceRepo.GetByID(ctx, instanceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// nova 路径中的 server_id 是实例 UUID
		if id, parseErr := uuid.Parse(instanceID); parseErr == nil {
			m, err = s.instanceRepo.GetByDomainUUID(ctx, id.String())
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug().Str("instance_id", instanceID).Msg("Instance not found in index")
			return nil, console.InstanceNotFound(instanceID, err)
		}
		return nil, fmt.Errorf("get instance %s: %w", instanceID, err)
	}

	instance, err := instanceModelToEntity(m)
	if err != nil {
		return nil, fmt.Errorf("convert instance %s: %w", instanceID, err)
	}
	return instance, nil
}
