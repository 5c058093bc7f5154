package ginx

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/jvc/pkg/apierror"
	"github.com/rs/zerolog"
)

// isXMLResponse 检查是否应该使用 XML 格式响应
func isXMLResponse(ctx *gin.Context) bool {
	if getResponseFormat(ctx) == formatXML {
		return true
	}
	accept := ctx.GetHeader("Accept")
	return strings.Contains(accept, "application/xml") ||
		strings.Contains(accept, "text/xml")
}

// Render 按请求格式（JSON/XML）渲染指定状态码的响应
func Render(ctx *gin.Context, status int, body any) {
	if isXMLResponse(ctx) {
		ctx.XML(status, body)
		return
	}
	ctx.JSON(status, body)
}

// renderResponse 渲染 200 响应，nil 渲染为 204
func renderResponse(ctx *gin.Context, response any) {
	if response == nil {
		ctx.Status(http.StatusNoContent)
		return
	}
	if s, ok := response.(string); ok {
		ctx.String(http.StatusOK, s)
		return
	}
	Render(ctx, http.StatusOK, response)
}

// RenderError 渲染错误响应
// 错误链中的 *apierror.Error 决定状态码；其它错误统一渲染为 InternalError，细节只写日志
func RenderError(ctx *gin.Context, err error) {
	apiErr := apierror.From(err)
	status := apiErr.Status()

	event := zerolog.Ctx(ctx.Request.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = zerolog.Ctx(ctx.Request.Context()).Error()
	}
	event.Err(err).Int("status", status).Str("code", apiErr.Code).Msg("Request failed")

	Render(ctx, status, apierror.NewErrorResponse(RequestIDFrom(ctx), apiErr))
}

// renderBadRequest 参数绑定和校验失败时使用
func renderBadRequest(ctx *gin.Context, err error) {
	RenderError(ctx, apierror.WrapError(apierror.ErrMalformedRequest, err.Error(), err))
}
