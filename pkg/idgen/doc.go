// Package idgen 提供递增 ID 生成器
//
// 使用 Sonyflake 算法，生成的 ID 全局唯一且按时间递增。
// 请求 ID 格式为 req-{递增数字}，写入每个错误响应的 requestID 字段。
//
//	requestID, err := idgen.GenerateRequestID()
//	// requestID: "req-431249213440"
package idgen
