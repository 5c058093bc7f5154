package ginx

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// isXMLRequest 检查请求是否为 XML 格式
func isXMLRequest(ctx *gin.Context) bool {
	contentType := ctx.GetHeader("Content-Type")
	return strings.Contains(contentType, "application/xml") ||
		strings.Contains(contentType, "text/xml")
}

// bindArgs 绑定请求参数到 args 结构体
// 优先级：Body（XML/JSON，按 Content-Type）> URI 参数 > Query 参数 > Form
// Body 绑定成功后仍会补充绑定 URI 和 Query 参数
func bindArgs(ctx *gin.Context, args any) error {
	if isXMLRequest(ctx) {
		if err := ctx.ShouldBindXML(args); err == nil {
			_ = ctx.ShouldBindUri(args)
			_ = ctx.ShouldBindQuery(args)
			setResponseFormat(ctx, formatXML)
			return nil
		}
	} else if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(args); err == nil {
			_ = ctx.ShouldBindUri(args)
			_ = ctx.ShouldBindQuery(args)
			setResponseFormat(ctx, formatJSON)
			return nil
		}
	}

	setResponseFormat(ctx, formatJSON)

	if err := ctx.ShouldBindUri(args); err == nil {
		_ = ctx.ShouldBindQuery(args)
		return nil
	}

	if err := ctx.ShouldBindQuery(args); err == nil {
		return nil
	}

	return ctx.ShouldBind(args)
}
