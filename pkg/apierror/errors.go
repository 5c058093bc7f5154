package apierror

import "net/http"

// 控制台服务的预定义错误
// 只使用 Code 比较，Message 可以通过 WrapError 替换为带上下文的描述
var (
	// ErrInvalidConsoleType 控制台类型缺失或不被支持
	ErrInvalidConsoleType = &Error{
		Code:       "InvalidConsoleType",
		Message:    "The requested console type is missing or not supported.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrInstanceNotFound 实例不存在
	ErrInstanceNotFound = &Error{
		Code:       "InstanceNotFound",
		Message:    "The specified instance does not exist.",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrInstanceNotReady 实例存在但当前状态无法连接控制台，调用方可稍后重试
	ErrInstanceNotReady = &Error{
		Code:       "InstanceNotReady",
		Message:    "The instance is not ready to provide a console. Retry the request later.",
		HTTPStatus: http.StatusConflict,
	}

	// ErrMalformedRequest 请求体无法解析
	ErrMalformedRequest = &Error{
		Code:       "MalformedRequest",
		Message:    "The request body could not be parsed.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrRequestTooLarge 请求体超过上限
	ErrRequestTooLarge = &Error{
		Code:       "RequestEntityTooLarge",
		Message:    "The request body is too large.",
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}

	// ErrUnknownAction action 请求体中没有可识别的 action
	ErrUnknownAction = &Error{
		Code:       "UnknownAction",
		Message:    "The request body does not contain exactly one recognized action.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrInvalidToken 控制台 token 无效或已过期
	ErrInvalidToken = &Error{
		Code:       "InvalidConsoleToken",
		Message:    "The console token is invalid or has expired.",
		HTTPStatus: http.StatusUnauthorized,
	}

	// ErrInternalError 内部错误
	ErrInternalError = &Error{
		Code:       "InternalError",
		Message:    "An internal error has occurred. Retry your request, but if the problem persists, contact the administrator.",
		HTTPStatus: http.StatusInternalServerError,
	}

	// ErrServiceUnavailable 依赖的服务（如 libvirt）暂时不可用
	ErrServiceUnavailable = &Error{
		Code:       "ServiceUnavailable",
		Message:    "The request has failed due to a temporary failure of the server.",
		HTTPStatus: http.StatusServiceUnavailable,
	}
)
