package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/jimyag/jvc/internal/jvc/repository"
	"github.com/jimyag/jvc/pkg/apierror"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// TokenService 签发和校验控制台 token
type TokenService struct {
	tokenRepo repository.ConsoleTokenRepository
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService 创建 TokenService，ttl 为 token 有效期
func NewTokenService(repo *repository.Repository, ttl time.Duration) *TokenService {
	return &TokenService{
		tokenRepo: repository.NewConsoleTokenRepository(repo.DB()),
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Issue 为连接目标签发 token
// 同一实例、类型、目标下剩余有效期超过一半的 token 会被复用，重复请求得到相同的 URL
func (s *TokenService) Issue(ctx context.Context, req *entity.ConsoleToken) (*entity.ConsoleToken, error) {
	logger := zerolog.Ctx(ctx)
	now := s.now()

	existing, err := s.tokenRepo.FindReusable(ctx, req.InstanceID, req.ConsoleType, req.Target, now.Add(s.ttl/2))
	switch {
	case err == nil:
		return tokenModelToEntity(existing)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find console token: %w", err)
	}

	token := &entity.ConsoleToken{
		Token:       uuid.NewString(),
		InstanceID:  req.InstanceID,
		ConsoleType: req.ConsoleType,
		Protocol:    req.Protocol,
		Target:      req.Target,
		Network:     req.Network,
		ExpiresAt:   now.Add(s.ttl),
	}
	m, err := tokenEntityToModel(token)
	if err != nil {
		return nil, fmt.Errorf("convert console token: %w", err)
	}
	if err := s.tokenRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create console token: %w", err)
	}

	logger.Info().
		Str("instance_id", token.InstanceID).
		Str("console_type", token.ConsoleType).
		Time("expires_at", token.ExpiresAt).
		Msg("Console token issued")
	return token, nil
}

// Validate 校验 token，不存在或已过期时返回 apierror.ErrInvalidToken
func (s *TokenService) Validate(ctx context.Context, token string) (*entity.ConsoleToken, error) {
	if token == "" {
		return nil, apierror.ErrInvalidToken
	}
	m, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrInvalidToken
		}
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to look up console token", err)
	}
	t, err := tokenModelToEntity(m)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to convert console token", err)
	}
	if t.Expired(s.now()) {
		return nil, apierror.ErrInvalidToken
	}
	return t, nil
}

// DescribeConsoleToken 返回 token 对应的连接信息
func (s *TokenService) DescribeConsoleToken(ctx context.Context, req *entity.DescribeConsoleTokenRequest) (*entity.DescribeConsoleTokenResponse, error) {
	t, err := s.Validate(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	return &entity.DescribeConsoleTokenResponse{
		Console: entity.ConsoleConnectInfo{
			InstanceID:  t.InstanceID,
			ConsoleType: t.ConsoleType,
			Protocol:    string(t.Protocol),
			Network:     t.Network,
			Target:      t.Target,
			ExpiresAt:   t.ExpiresAt.Format(time.RFC3339),
		},
	}, nil
}

// PurgeExpired 删除已过期的 token
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.tokenRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired console tokens: %w", err)
	}
	return n, nil
}

// RevokeInstance 删除实例的所有 token
func (s *TokenService) RevokeInstance(ctx context.Context, instanceID string) error {
	if _, err := s.tokenRepo.DeleteByInstance(ctx, instanceID); err != nil {
		return fmt.Errorf("revoke console tokens of %s: %w", instanceID, err)
	}
	return nil
}
