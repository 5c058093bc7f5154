package ginx

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/jvc/pkg/apierror"
	"github.com/jimyag/jvc/pkg/idgen"
	"github.com/rs/zerolog"
)

// RequestID 为每个请求分配 ID
// 优先使用客户端传入的 X-Request-Id，否则使用 gen 生成
func RequestID(gen *idgen.Generator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			id, err := gen.GenerateRequestID()
			if err == nil {
				requestID = id
			}
		}
		ctx.Set(string(requestIDKey), requestID)
		ctx.Request = ctx.Request.WithContext(apierror.WithRequestID(ctx.Request.Context(), requestID))
		ctx.Header(RequestIDHeader, requestID)
		ctx.Next()
	}
}

// RequestLogger 将带 request_id 的子 logger 写入请求 context，并在请求结束时记录访问日志
// 下游通过 zerolog.Ctx(ctx.Request.Context()) 获取该 logger
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		logger := base.With().
			Str("request_id", RequestIDFrom(ctx)).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Logger()
		ctx.Request = ctx.Request.WithContext(logger.WithContext(ctx.Request.Context()))

		ctx.Next()

		logger.Info().
			Int("status", ctx.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", ctx.ClientIP()).
			Msg("Request completed")
	}
}

// Recovery 捕获 handler 中的 panic 并渲染为 InternalError
// http.ErrAbortHandler 会继续向上抛出，由 net/http 直接断开连接而不写响应
func Recovery() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			zerolog.Ctx(ctx.Request.Context()).Error().
				Interface("panic", rec).
				Msg("Recovered from panic")
			if ctx.Writer.Written() {
				ctx.Abort()
				return
			}
			RenderError(ctx, fmt.Errorf("panic: %v", rec))
			ctx.Abort()
		}()
		ctx.Next()
	}
}
