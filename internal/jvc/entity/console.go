package entity

import "time"

// ConsoleDescriptor 打开远程控制台所需的信息
type ConsoleDescriptor struct {
	URL  string `json:"url"  xml:"url"`
	Type string `json:"type" xml:"type"`
}

// GetConsoleResponse 控制台 action 的成功响应：{"console": {"url": ..., "type": ...}}
type GetConsoleResponse struct {
	Console ConsoleDescriptor `json:"console" xml:"console"`
}

// ConsoleProtocol 控制台底层协议
type ConsoleProtocol string

const (
	ConsoleProtocolVNC    ConsoleProtocol = "vnc"
	ConsoleProtocolSPICE  ConsoleProtocol = "spice"
	ConsoleProtocolSerial ConsoleProtocol = "serial"
)

// ConsoleToken 控制台连接 token
// token 由 ConsoleService 签发，由 websocket 代理校验后连接到 Target
type ConsoleToken struct {
	Token       string          `json:"token"`
	InstanceID  string          `json:"instance_id"`
	ConsoleType string          `json:"console_type"`
	Protocol    ConsoleProtocol `json:"protocol"`
	// Target 连接目标：unix socket 路径、host:port 或 PTY 设备路径
	Target    string    `json:"target"`
	Network   string    `json:"network"` // unix, tcp, pty
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired token 是否已过期
func (t *ConsoleToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// DescribeConsoleTokenRequest 查询 token 连接信息请求
type DescribeConsoleTokenRequest struct {
	ProjectID string `uri:"project_id"`
	Token     string `uri:"token" binding:"required"`
}

// DescribeConsoleTokenResponse 查询 token 连接信息响应
type DescribeConsoleTokenResponse struct {
	Console ConsoleConnectInfo `json:"console"`
}

// ConsoleConnectInfo token 对应的内部连接信息
type ConsoleConnectInfo struct {
	InstanceID  string `json:"instance_uuid"`
	ConsoleType string `json:"console_type"`
	Protocol    string `json:"protocol"`
	Network     string `json:"network"`
	Target      string `json:"target"`
	ExpiresAt   string `json:"expires_at"`
}
