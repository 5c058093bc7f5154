package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/jvc/pkg/apierror"
	"github.com/jimyag/jvc/pkg/ginx"
)

// Pinger 检查依赖是否可用
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status" xml:"status"`
}

type Health struct {
	pinger Pinger
}

func NewHealth(pinger Pinger) *Health {
	return &Health{pinger: pinger}
}

func (h *Health) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthz", ginx.Adapt3(h.Healthz))
}

// Healthz 数据库不可用时返回 503
func (h *Health) Healthz(ctx *gin.Context) (*HealthResponse, error) {
	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			return nil, apierror.WrapError(apierror.ErrServiceUnavailable, apierror.ErrServiceUnavailable.Message, err)
		}
	}
	return &HealthResponse{Status: "ok"}, nil
}
