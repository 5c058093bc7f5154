package libvirt

import (
	"encoding/xml"
	"fmt"

	"github.com/digitalocean/go-libvirt"
)

// GraphicsInfo 图形控制台的连接信息
// Socket 不为空时通过 unix socket 连接，否则通过 Host:Port 连接
type GraphicsInfo struct {
	Type   string `json:"type"` // vnc, spice
	Socket string `json:"socket,omitempty"`
	Host   string `json:"host,omitempty"`
	Port   int    `json:"port,omitempty"`
}

// Attachable 图形控制台当前是否可以连接
func (g GraphicsInfo) Attachable() bool {
	return g.Socket != "" || g.Port > 0
}

// ConsoleInfo 控制台连接信息
type ConsoleInfo struct {
	Graphics     []GraphicsInfo `json:"graphics"`
	SerialDevice string         `json:"serial_device"` // Serial PTY 设备路径
}

// FindGraphics 按类型查找图形控制台
func (i *ConsoleInfo) FindGraphics(graphicsType string) (GraphicsInfo, bool) {
	for _, g := range i.Graphics {
		if g.Type == graphicsType {
			return g, true
		}
	}
	return GraphicsInfo{}, false
}

// GetDomainConsoleInfo 获取 Domain 的控制台连接信息
// 使用运行时 XML，端口和 PTY 路径只有在 domain 运行时才会被分配
func (c *Client) GetDomainConsoleInfo(domain libvirt.Domain) (*ConsoleInfo, error) {
	xmlData, err := c.conn.DomainGetXMLDesc(domain, 0)
	if err != nil {
		return nil, wrapDomainError(domain.Name, "get domain XML", err)
	}
	return ParseConsoleInfo(xmlData)
}

// ParseConsoleInfo 从 domain XML 中解析控制台信息
func ParseConsoleInfo(xmlData string) (*ConsoleInfo, error) {
	var domainDef DomainXML
	if err := xml.Unmarshal([]byte(xmlData), &domainDef); err != nil {
		return nil, fmt.Errorf("parse domain XML: %w", err)
	}

	info := &ConsoleInfo{}
	for _, g := range domainDef.Devices.Graphics {
		gi := GraphicsInfo{
			Type:   g.Type,
			Socket: g.Socket,
			Host:   g.Listen,
			Port:   g.Port,
		}
		for _, l := range g.Listens {
			switch l.Type {
			case "socket":
				if gi.Socket == "" {
					gi.Socket = l.Socket
				}
			case "address":
				if gi.Host == "" {
					gi.Host = l.Address
				}
			}
		}
		if gi.Host == "" && gi.Socket == "" {
			gi.Host = "127.0.0.1"
		}
		info.Graphics = append(info.Graphics, gi)
	}

	for _, con := range domainDef.Devices.Consoles {
		if con.Type == "pty" && con.Source.Path != "" {
			info.SerialDevice = con.Source.Path
			break
		}
	}
	if info.SerialDevice == "" {
		for _, s := range domainDef.Devices.Serials {
			if s.Type == "pty" && s.Source.Path != "" {
				info.SerialDevice = s.Source.Path
				break
			}
		}
	}

	return info, nil
}
