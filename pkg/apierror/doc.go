// Package apierror 提供统一的 API 错误类型，用于所有 handler 的错误响应
//
// 错误响应支持 JSON 和 XML 两种格式：
//
//	JSON 格式：
//	{
//	    "errors": [
//	        {
//	            "code": "InstanceNotReady",
//	            "message": "Instance i-42 is not ready to provide a console"
//	        }
//	    ],
//	    "requestID": "req-431249213440"
//	}
//
//	XML 格式：
//	<Response>
//	    <Errors>
//	        <Error>
//	            <Code>InstanceNotReady</Code>
//	            <Message>Instance i-42 is not ready to provide a console</Message>
//	        </Error>
//	    </Errors>
//	    <RequestID>req-431249213440</RequestID>
//	</Response>
//
// 预定义错误：
//
//   - ErrInvalidConsoleType: 400，控制台类型缺失或不支持
//   - ErrInstanceNotFound: 404，实例不存在
//   - ErrInstanceNotReady: 409，实例状态不允许连接控制台
//   - ErrMalformedRequest: 400，请求体无法解析
//   - ErrUnknownAction: 400，没有可识别的 action
//   - ErrInvalidToken: 401，控制台 token 无效
//   - ErrInternalError: 500，内部错误
//   - ErrServiceUnavailable: 503，依赖服务不可用
//
// 使用示例：
//
//	err := apierror.WrapError(apierror.ErrInstanceNotFound, "Instance i-42 does not exist", nil)
//	c.JSON(err.Status(), apierror.NewErrorResponse(requestID, err))
package apierror
