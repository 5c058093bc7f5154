package wsproxy

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"
)

// 后端连接类型
const (
	NetworkUnix = "unix"
	NetworkTCP  = "tcp"
	NetworkPTY  = "pty"
)

// DialTimeout 连接 socket 后端的超时时间
const DialTimeout = 10 * time.Second

// Dial 连接控制台后端
// unix 和 tcp 连接 socket，pty 以读写方式打开串口设备
func Dial(ctx context.Context, network, target string) (io.ReadWriteCloser, error) {
	switch network {
	case NetworkUnix, NetworkTCP:
		dialer := &net.Dialer{Timeout: DialTimeout}
		conn, err := dialer.DialContext(ctx, network, target)
		if err != nil {
			return nil, fmt.Errorf("connect to console %s %s: %w", network, target, err)
		}
		return conn, nil
	case NetworkPTY:
		file, err := os.OpenFile(target, os.O_RDWR, 0)
		if err != nil {
			return nil, fmt.Errorf("open serial device %s: %w", target, err)
		}
		return file, nil
	default:
		return nil, fmt.Errorf("unsupported console network %q", network)
	}
}
