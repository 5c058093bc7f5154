// Package ginx 提供 gin 框架的 handler 适配器和通用中间件
//
// 适配器负责参数绑定、校验和响应渲染：
//
//	// 无参数，有返回值和 error
//	router.GET("/healthz", ginx.Adapt3(func(c *gin.Context) (*HealthResponse, error) {
//	    return health.Check(c.Request.Context())
//	}))
//
//	// 有参数，有返回值，有 error
//	router.GET("/tokens/:token", ginx.Adapt5(func(c *gin.Context, args *DescribeTokenArgs) (*Token, error) {
//	    return svc.Describe(c.Request.Context(), args.Token)
//	}))
//
// 支持 JSON 和 XML：请求 Content-Type 为 XML 时按 XML 绑定，响应也使用 XML；
// 否则根据 Accept 头决定，默认 JSON。
//
// handler 返回的错误通过 RenderError 渲染：错误链中的 *apierror.Error 决定状态码，
// 其它错误统一渲染为 500 InternalError，并写入 apierror.ErrorResponse 信封。
//
// 中间件：
//   - RequestID：分配请求 ID 并写入 X-Request-Id 响应头
//   - RequestLogger：把带 request_id 的 zerolog logger 放进请求 context
//   - Recovery：panic 渲染为 500，http.ErrAbortHandler 除外
package ginx
