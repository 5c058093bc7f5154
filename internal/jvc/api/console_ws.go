package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/jimyag/jvc/pkg/ginx"
	"github.com/jimyag/jvc/pkg/wsproxy"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  wsproxy.GraphicsBufferSize,
	WriteBufferSize: wsproxy.GraphicsBufferSize,
	// noVNC 请求 binary 子协议
	Subprotocols: []string{"binary"},
	CheckOrigin: func(r *http.Request) bool {
		// 允许所有来源，连接目标由 token 限定
		return true
	},
}

// TokenServiceInterface 定义控制台 token 服务的接口
type TokenServiceInterface interface {
	Validate(ctx context.Context, token string) (*entity.ConsoleToken, error)
	DescribeConsoleToken(ctx context.Context, req *entity.DescribeConsoleTokenRequest) (*entity.DescribeConsoleTokenResponse, error)
}

type ConsoleWS struct {
	tokenService TokenServiceInterface
}

func NewConsoleWS(tokenService TokenServiceInterface) *ConsoleWS {
	return &ConsoleWS{
		tokenService: tokenService,
	}
}

func (c *ConsoleWS) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/websockify", c.HandleWebSocket)
}

// HandleWebSocket 校验 token 后把 WebSocket 连接代理到控制台后端
func (c *ConsoleWS) HandleWebSocket(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	logger := zerolog.Ctx(reqCtx)

	// token 无效时在升级之前返回 401
	token, err := c.tokenService.Validate(reqCtx, ctx.Query("token"))
	if err != nil {
		ginx.RenderError(ctx, err)
		return
	}

	proxyLogger := logger.With().
		Str("instance_id", token.InstanceID).
		Str("console_type", token.ConsoleType).
		Str("network", token.Network).
		Logger()
	reqCtx = proxyLogger.WithContext(reqCtx)

	wsConn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		proxyLogger.Error().Err(err).Msg("Failed to upgrade WebSocket")
		return
	}

	backend, err := wsproxy.Dial(reqCtx, token.Network, token.Target)
	if err != nil {
		proxyLogger.Error().Err(err).Str("target", token.Target).Msg("Failed to connect to console")
		_ = wsConn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "Failed to connect to console"))
		_ = wsConn.Close()
		return
	}

	proxyLogger.Info().
		Str("target", token.Target).
		Str("ws_remote_addr", ctx.Request.RemoteAddr).
		Msg("Starting console proxy")

	if err := wsproxy.New(token.Network, backend, wsConn).Start(reqCtx); err != nil {
		proxyLogger.Error().Err(err).Msg("Console proxy error")
	}
}
