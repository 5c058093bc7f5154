package repository

import (
	"context"

	"github.com/jimyag/jvc/internal/jvc/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InstanceRepository 实例索引仓库接口
type InstanceRepository interface {
	GetByID(ctx context.Context, id string) (*model.Instance, error)
	GetByDomainUUID(ctx context.Context, domainUUID string) (*model.Instance, error)
	List(ctx context.Context) ([]*model.Instance, error)
	Upsert(ctx context.Context, instance *model.Instance) error
	// DeleteExcept 软删除 ids 之外的所有实例，返回删除的数量
	DeleteExcept(ctx context.Context, ids []string) (int64, error)
}

type instanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository 创建实例仓库
func NewInstanceRepository(db *gorm.DB) InstanceRepository {
	return &instanceRepository{db: db}
}

// GetByID 根据 ID 获取实例（自动过滤已删除）
func (r *instanceRepository) GetByID(ctx context.Context, id string) (*model.Instance, error) {
	var instance model.Instance
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// GetByDomainUUID 根据 libvirt domain UUID 获取实例（自动过滤已删除）
func (r *instanceRepository) GetByDomainUUID(ctx context.Context, domainUUID string) (*model.Instance, error) {
	var instance model.Instance
	if err := r.db.WithContext(ctx).Where("domain_uuid = ?", domainUUID).First(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// List 列出未删除的实例
func (r *instanceRepository) List(ctx context.Context) ([]*model.Instance, error) {
	var instances []*model.Instance
	if err := r.db.WithContext(ctx).Order("id").Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// Upsert 插入或更新实例，已软删除的记录会被恢复
func (r *instanceRepository) Upsert(ctx context.Context, instance *model.Instance) error {
	instance.DeletedAt = gorm.DeletedAt{}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "state", "domain_uuid", "domain_name", "updated_at", "deleted_at",
		}),
	}).Create(instance).Error
}

// DeleteExcept 软删除 ids 之外的所有实例
func (r *instanceRepository) DeleteExcept(ctx context.Context, ids []string) (int64, error) {
	query := r.db.WithContext(ctx)
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	} else {
		query = query.Where("1 = 1")
	}
	result := query.Delete(&model.Instance{})
	return result.RowsAffected, result.Error
}
