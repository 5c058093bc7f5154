package ginx

import (
	"reflect"

	"github.com/gin-gonic/gin"
)

// Adapt3 适配无参数、有返回值和 error 的 handler
func Adapt3[T any](fn func(*gin.Context) (T, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, err := fn(ctx)
		if err != nil {
			RenderError(ctx, err)
			return
		}
		renderResponse(ctx, result)
	}
}

// Adapt5 适配有参数、有返回值和 error 的 handler
// 参数绑定或 IsValid 校验失败返回 400，handler 返回的错误按 apierror 的状态码渲染
func Adapt5[TArgs any, TResp any](fn func(*gin.Context, *TArgs) (TResp, error)) gin.HandlerFunc {
	var argsType TArgs
	argsTypeValue := reflect.TypeOf(argsType)

	return func(ctx *gin.Context) {
		args := reflect.New(argsTypeValue).Interface()

		if err := bindArgs(ctx, args); err != nil {
			renderBadRequest(ctx, err)
			return
		}

		if validator, ok := args.(interface{ IsValid() error }); ok {
			if err := validator.IsValid(); err != nil {
				renderBadRequest(ctx, err)
				return
			}
		}

		result, err := fn(ctx, args.(*TArgs))
		if err != nil {
			RenderError(ctx, err)
			return
		}
		renderResponse(ctx, result)
	}
}
