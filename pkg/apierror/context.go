package apierror

import "context"

type requestIDKey struct{}

// WithRequestID 把请求 ID 写入 context，错误响应信封会使用该 ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFrom 从 context 中读取请求 ID
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
