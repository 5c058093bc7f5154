package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/jvc/internal/jvc/console"
	"github.com/jimyag/jvc/pkg/apierror"
	"github.com/jimyag/jvc/pkg/ginx"
	"github.com/rs/zerolog"
)

// maxActionBodySize action 请求体的上限
const maxActionBodySize = 64 << 10

// ConsoleActionHandler 处理一个 action 的请求体
type ConsoleActionHandler interface {
	Action() string
	Handle(ctx context.Context, instanceID string, payload []byte) (*console.Response, error)
}

// Action 服务器 action 接口，按请求体中唯一的 key 分发到对应的 handler
type Action struct {
	handlers map[string]ConsoleActionHandler
}

// NewAction 创建 Action，action 名称不能重复
func NewAction(handlers ...ConsoleActionHandler) (*Action, error) {
	a := &Action{handlers: make(map[string]ConsoleActionHandler, len(handlers))}
	for _, h := range handlers {
		if _, ok := a.handlers[h.Action()]; ok {
			return nil, fmt.Errorf("duplicate console action %s", h.Action())
		}
		a.handlers[h.Action()] = h
	}
	return a, nil
}

func (a *Action) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/servers/:server_id/action", a.ServerAction)
}

// ServerAction 处理 POST /v2/:project_id/servers/:server_id/action
func (a *Action) ServerAction(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	serverID := ctx.Param("server_id")
	logger := zerolog.Ctx(reqCtx).With().Str("instance_id", serverID).Logger()

	payload, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxActionBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			ginx.RenderError(ctx, apierror.WrapError(apierror.ErrRequestTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit), err))
			return
		}
		ginx.RenderError(ctx, apierror.WrapError(apierror.ErrMalformedRequest, "Failed to read request body", err))
		return
	}

	handler, apiErr := a.dispatch(payload)
	if apiErr != nil {
		ginx.RenderError(ctx, apiErr)
		return
	}

	resp, err := handler.Handle(reqCtx, serverID, payload)
	if err != nil {
		// 请求已被取消或超时，不写响应，由 net/http 断开连接
		logger.Warn().Err(err).Str("action", handler.Action()).Msg("Action abandoned")
		ctx.Abort()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			panic(http.ErrAbortHandler)
		}
		ginx.RenderError(ctx, err)
		return
	}

	ginx.Render(ctx, resp.Status, resp.Body)
}

// dispatch 请求体必须是只有一个 key 的对象，key 为已注册的 action
func (a *Action) dispatch(payload []byte) (ConsoleActionHandler, *apierror.Error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(payload, &body); err != nil || body == nil {
		return nil, apierror.WrapError(apierror.ErrMalformedRequest, "Malformed request body", err)
	}
	if len(body) != 1 {
		return nil, apierror.WrapError(apierror.ErrUnknownAction,
			fmt.Sprintf("Request body must contain exactly one action, got %d", len(body)), nil)
	}
	for name := range body {
		handler, ok := a.handlers[name]
		if !ok {
			return nil, apierror.WrapError(apierror.ErrUnknownAction, fmt.Sprintf("Unknown action %s", name), nil)
		}
		return handler, nil
	}
	return nil, nil
}
