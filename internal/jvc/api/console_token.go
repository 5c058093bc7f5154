package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/jimyag/jvc/pkg/ginx"
)

type ConsoleToken struct {
	tokenService TokenServiceInterface
}

func NewConsoleToken(tokenService TokenServiceInterface) *ConsoleToken {
	return &ConsoleToken{
		tokenService: tokenService,
	}
}

func (c *ConsoleToken) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/os-console-auth-tokens/:token", ginx.Adapt5(c.DescribeConsoleToken))
}

// DescribeConsoleToken 查询 token 对应的连接信息，供外部控制台代理使用
func (c *ConsoleToken) DescribeConsoleToken(ctx *gin.Context, req *entity.DescribeConsoleTokenRequest) (*entity.DescribeConsoleTokenResponse, error) {
	return c.tokenService.DescribeConsoleToken(ctx, req)
}
