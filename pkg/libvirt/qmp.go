package libvirt

import (
	"encoding/json"
	"fmt"

	"github.com/digitalocean/go-libvirt"
	"github.com/digitalocean/go-qemu/qmp"
)

// GraphicsStatus QEMU 报告的图形服务状态
type GraphicsStatus struct {
	Enabled bool
	Host    string
	// Service vnc 的监听端口（字符串形式）
	Service string
	// Port spice 的监听端口
	Port int
}

type qmpGraphicsReply struct {
	Return *struct {
		Enabled bool   `json:"enabled"`
		Host    string `json:"host"`
		Service string `json:"service"`
		Port    int    `json:"port"`
	} `json:"return"`
	Error *struct {
		Class string `json:"class"`
		Desc  string `json:"desc"`
	} `json:"error"`
}

// QueryGraphics 通过 QMP（query-vnc / query-spice）询问 QEMU 图形服务是否可用
// 命令经 libvirt 的 qemu-monitor-command 转发，复用已有的 libvirt 连接
func (c *Client) QueryGraphics(domain libvirt.Domain, graphicsType string) (*GraphicsStatus, error) {
	execute, err := graphicsQuery(graphicsType)
	if err != nil {
		return nil, err
	}
	cmd, err := json.Marshal(qmp.Command{Execute: execute})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", execute, err)
	}

	monitor := qmp.NewLibvirtRPCMonitor(domain.Name, c.conn)
	reply, err := monitor.Run(cmd)
	if err != nil {
		return nil, wrapDomainError(domain.Name, execute, err)
	}
	return ParseGraphicsStatus(reply)
}

func graphicsQuery(graphicsType string) (string, error) {
	switch graphicsType {
	case "vnc":
		return "query-vnc", nil
	case "spice":
		return "query-spice", nil
	default:
		return "", fmt.Errorf("unsupported graphics type %q", graphicsType)
	}
}

// ParseGraphicsStatus 解析 query-vnc / query-spice 的 QMP 响应
func ParseGraphicsStatus(reply []byte) (*GraphicsStatus, error) {
	var r qmpGraphicsReply
	if err := json.Unmarshal(reply, &r); err != nil {
		return nil, fmt.Errorf("parse qmp reply: %w", err)
	}
	if r.Error != nil {
		return nil, fmt.Errorf("qmp error %s: %s", r.Error.Class, r.Error.Desc)
	}
	if r.Return == nil {
		return nil, fmt.Errorf("qmp reply has no return value")
	}
	return &GraphicsStatus{
		Enabled: r.Return.Enabled,
		Host:    r.Return.Host,
		Service: r.Return.Service,
		Port:    r.Return.Port,
	}, nil
}
