// Package console 实现控制台 action 的请求处理
//
// Handler 解析 action 请求体，校验控制台类型，依次调用 InstanceResolver 和 AccessProvider，
// 并把结果映射为响应状态码：
//
//	成功                 200 {"console": {"url": ..., "type": ...}}
//	InvalidConsoleType   400
//	InstanceNotFound     404
//	InstanceNotReady     409
//	其它错误              500 InternalError
//
// 请求 context 被取消时 Handle 返回 ctx.Err()，不产生任何响应。
package console
