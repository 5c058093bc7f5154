package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/jvc/pkg/ginx"
	"github.com/jimyag/jvc/pkg/idgen"
	"github.com/rs/zerolog"
)

type API struct {
	engine *gin.Engine
	server *http.Server

	// baseCtx 在 Shutdown 时取消，用于结束已升级的 WebSocket 连接
	baseCtx    context.Context
	baseCancel context.CancelFunc

	action       *Action
	consoleWS    *ConsoleWS
	consoleToken *ConsoleToken
	health       *Health
}

// New 创建 API
func New(
	address string,
	logger zerolog.Logger,
	handlers []ConsoleActionHandler,
	tokenService TokenServiceInterface,
	pinger Pinger,
) (*API, error) {
	action, err := NewAction(handlers...)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.ContextWithFallback = true
	engine.Use(
		ginx.RequestID(idgen.DefaultGenerator()),
		ginx.RequestLogger(logger),
		ginx.Recovery(),
	)

	baseCtx, baseCancel := context.WithCancel(context.Background())
	api := &API{
		engine:       engine,
		baseCtx:      baseCtx,
		baseCancel:   baseCancel,
		action:       action,
		consoleWS:    NewConsoleWS(tokenService),
		consoleToken: NewConsoleToken(tokenService),
		health:       NewHealth(pinger),
	}

	api.health.RegisterRoutes(engine.Group(""))
	api.consoleWS.RegisterRoutes(engine.Group(""))
	v2 := engine.Group("/v2/:project_id")
	api.action.RegisterRoutes(v2)
	api.consoleToken.RegisterRoutes(v2)

	api.server = &http.Server{
		Addr:    address,
		Handler: engine,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}
	return api, nil
}

// Name 实现 grace.Grace 接口
func (a *API) Name() string {
	return "API Server"
}

// Handler 返回 HTTP handler
func (a *API) Handler() http.Handler {
	return a.engine
}

// Run 启动 HTTP 服务，ctx 结束或 Shutdown 后返回 nil
func (a *API) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		_ = a.Shutdown(context.Background())
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Shutdown 停止接受新请求，并结束所有控制台代理连接
func (a *API) Shutdown(ctx context.Context) error {
	a.baseCancel()
	return a.server.Shutdown(ctx)
}
