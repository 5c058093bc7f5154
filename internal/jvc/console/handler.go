package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/jimyag/jvc/pkg/apierror"
	"github.com/rs/zerolog"
)

// DefaultAction nova 兼容的 VNC 控制台 action 名称
const DefaultAction = "os-getVNCConsole"

// errNoConsole provider 既没有返回控制台也没有返回错误
var errNoConsole = errors.New("console provider returned no console")

// InstanceResolver 根据实例 ID 查找实例
// 实例不存在时返回 KindInstanceNotFound 的 *Error
type InstanceResolver interface {
	ResolveInstance(ctx context.Context, instanceID string) (*entity.Instance, error)
}

// AccessProvider 为已解析的实例获取控制台连接信息
// 失败时返回 KindInvalidConsoleType、KindInstanceNotReady 或 KindInstanceNotFound 的 *Error
type AccessProvider interface {
	GetConsole(ctx context.Context, instance *entity.Instance, consoleType string) (*entity.ConsoleDescriptor, error)
}

// Handler 处理单个控制台 action
// Handler 不保存请求间状态，可以被并发调用
type Handler struct {
	action   string
	resolver InstanceResolver
	provider AccessProvider
}

// NewHandler 创建 action 处理器，action 为空时使用 DefaultAction
func NewHandler(action string, resolver InstanceResolver, provider AccessProvider) *Handler {
	if action == "" {
		action = DefaultAction
	}
	return &Handler{
		action:   action,
		resolver: resolver,
		provider: provider,
	}
}

// Action 返回处理的 action 名称
func (h *Handler) Action() string {
	return h.action
}

// Handle 处理 action 请求体，返回状态码和响应体
// 只有 ctx 被取消或超时时才返回 error，此时没有响应
func (h *Handler) Handle(ctx context.Context, instanceID string, payload []byte) (*Response, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("action", h.action).
		Str("instance_id", instanceID).
		Logger()
	requestID := apierror.RequestIDFrom(ctx)

	body, apiErr := h.parse(payload)
	if apiErr != nil {
		logger.Warn().Str("code", apiErr.Code).Msg("Rejected malformed console action")
		return errorResponse(requestID, apiErr), nil
	}

	console, err := h.getConsole(ctx, instanceID, body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn().Err(ctxErr).Msg("Console action cancelled")
			return nil, ctxErr
		}
		apiErr := collaboratorError(err)
		event := logger.Warn()
		if apiErr.Status() >= 500 {
			event = logger.Error()
		}
		event.Err(err).Str("code", apiErr.Code).Int("status", apiErr.Status()).Msg("Failed to get console")
		return errorResponse(requestID, apiErr), nil
	}

	logger.Info().Str("console_type", console.Type).Msg("Console retrieved")
	return successResponse(console), nil
}

// parse 取出 action 的内层对象
func (h *Handler) parse(payload []byte) (map[string]any, *apierror.Error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, apierror.WrapError(apierror.ErrMalformedRequest, "Malformed request body", err)
	}
	raw, ok := envelope[h.action]
	if !ok {
		return nil, apierror.WrapError(apierror.ErrUnknownAction,
			fmt.Sprintf("Request body does not contain action %s", h.action), nil)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return nil, apierror.WrapError(apierror.ErrMalformedRequest,
			fmt.Sprintf("Action %s must be an object", h.action), err)
	}
	return body, nil
}

// getConsole 校验类型、解析实例、获取控制台，依次执行
func (h *Handler) getConsole(ctx context.Context, instanceID string, body map[string]any) (*entity.ConsoleDescriptor, error) {
	consoleType, err := ConsoleType(body)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	instance, err := h.resolver.ResolveInstance(ctx, instanceID)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	console, err := h.provider.GetConsole(ctx, instance, consoleType)
	if err != nil {
		return nil, err
	}
	if console == nil {
		return nil, errNoConsole
	}

	// 返回的类型总是请求的类型，provider 只负责 URL
	return &entity.ConsoleDescriptor{URL: console.URL, Type: consoleType}, nil
}
