package repository

import (
	"context"
	"time"

	"github.com/jimyag/jvc/internal/jvc/repository/model"
	"gorm.io/gorm"
)

// ConsoleTokenRepository 控制台 token 仓库接口
type ConsoleTokenRepository interface {
	Create(ctx context.Context, token *model.ConsoleToken) error
	GetByToken(ctx context.Context, token string) (*model.ConsoleToken, error)
	// FindReusable 查找同一实例、类型、目标下在 validAfter 之后仍有效的 token，取最晚过期的一个
	FindReusable(ctx context.Context, instanceID, consoleType, target string, validAfter time.Time) (*model.ConsoleToken, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteByInstance(ctx context.Context, instanceID string) (int64, error)
}

type consoleTokenRepository struct {
	db *gorm.DB
}

// NewConsoleTokenRepository 创建 token 仓库
func NewConsoleTokenRepository(db *gorm.DB) ConsoleTokenRepository {
	return &consoleTokenRepository{db: db}
}

func (r *consoleTokenRepository) Create(ctx context.Context, token *model.ConsoleToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *consoleTokenRepository) GetByToken(ctx context.Context, token string) (*model.ConsoleToken, error) {
	var t model.ConsoleToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *consoleTokenRepository) FindReusable(ctx context.Context, instanceID, consoleType, target string, validAfter time.Time) (*model.ConsoleToken, error) {
	var t model.ConsoleToken
	err := r.db.WithContext(ctx).
		Where("instance_id = ? AND console_type = ? AND target = ? AND expires_at > ?", instanceID, consoleType, target, validAfter).
		Order("expires_at DESC").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteExpired 删除 now 之前过期的 token
func (r *consoleTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.ConsoleToken{})
	return result.RowsAffected, result.Error
}

// DeleteByInstance 删除实例的所有 token
func (r *consoleTokenRepository) DeleteByInstance(ctx context.Context, instanceID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("instance_id = ?", instanceID).Delete(&model.ConsoleToken{})
	return result.RowsAffected, result.Error
}
