package console

import (
	"net/http"

	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/jimyag/jvc/pkg/apierror"
)

// toAPIError 领域错误到 API 错误的映射
// 400 修正请求，409 稍后重试，404 资源不存在
// raw 是 collaborator 返回的原始错误，保留调用方添加的上下文
func toAPIError(e *Error, raw error) *apierror.Error {
	switch e.Kind {
	case KindInvalidConsoleType:
		return apierror.WrapError(apierror.ErrInvalidConsoleType, e.Message(), raw)
	case KindInstanceNotFound:
		return apierror.WrapError(apierror.ErrInstanceNotFound, e.Message(), raw)
	case KindInstanceNotReady:
		return apierror.WrapError(apierror.ErrInstanceNotReady, e.Message(), raw)
	}
	return apierror.WrapError(apierror.ErrInternalError, apierror.ErrInternalError.Message, raw)
}

// Response 一次 action 请求的结果
type Response struct {
	Status int
	Body   any
}

func successResponse(console *entity.ConsoleDescriptor) *Response {
	return &Response{
		Status: http.StatusOK,
		Body:   &entity.GetConsoleResponse{Console: *console},
	}
}

// collaboratorError 转换 resolver/provider 返回的错误
// 领域错误按映射表转换，其它错误不会被归入任何领域错误，一律为 InternalError
func collaboratorError(err error) *apierror.Error {
	if domainErr, ok := AsError(err); ok {
		return toAPIError(domainErr, err)
	}
	return apierror.WrapError(apierror.ErrInternalError, apierror.ErrInternalError.Message, err)
}

func errorResponse(requestID string, apiErr *apierror.Error) *Response {
	body := apierror.NewErrorResponse(requestID, apiErr)
	return &Response{
		Status: body.Status(),
		Body:   body,
	}
}
