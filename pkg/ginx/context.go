package ginx

import (
	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	// responseFormatKey 响应格式（"json" 或 "xml"）
	responseFormatKey contextKey = "ginx.response_format"
	// requestIDKey 当前请求的 ID，由 RequestID 中间件写入
	requestIDKey contextKey = "ginx.request_id"
)

const (
	formatJSON = "json"
	formatXML  = "xml"
)

// RequestIDHeader 请求 ID 的 HTTP 头
const RequestIDHeader = "X-Request-Id"

func setResponseFormat(ctx *gin.Context, format string) {
	ctx.Set(string(responseFormatKey), format)
}

func getResponseFormat(ctx *gin.Context) string {
	if format, ok := ctx.Get(string(responseFormatKey)); ok {
		if str, ok := format.(string); ok {
			return str
		}
	}
	return formatJSON
}

// RequestIDFrom 返回当前请求的 ID，没有经过 RequestID 中间件时返回空字符串
func RequestIDFrom(ctx *gin.Context) string {
	return ctx.GetString(string(requestIDKey))
}
