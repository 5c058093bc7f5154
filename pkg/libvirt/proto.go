package libvirt

import "encoding/xml"

// DomainXML 控制台解析所需的 domain XML 子集
// Source: https://libvirt.org/formatdomain.html
type DomainXML struct {
	XMLName xml.Name      `xml:"domain"`
	Type    string        `xml:"type,attr"`
	Name    string        `xml:"name"`
	UUID    string        `xml:"uuid,omitempty"`
	Devices DomainDevices `xml:"devices"`
}

// DomainDevices 控制台相关的设备
type DomainDevices struct {
	Graphics []DomainGraphics `xml:"graphics"`
	Serials  []DomainSerial   `xml:"serial"`
	Consoles []DomainConsole  `xml:"console"`
}

// DomainGraphics 图形设备（vnc、spice）
// Source: https://libvirt.org/formatdomain.html#graphical-framebuffers
type DomainGraphics struct {
	Type     string                 `xml:"type,attr"`
	Port     int                    `xml:"port,attr,omitempty"`    // 运行时分配，未运行或 autoport 未分配时为 -1
	TLSPort  int                    `xml:"tlsPort,attr,omitempty"` // spice TLS 端口
	Autoport string                 `xml:"autoport,attr,omitempty"`
	Listen   string                 `xml:"listen,attr,omitempty"`
	Socket   string                 `xml:"socket,attr,omitempty"` // Unix socket 路径
	Listens  []DomainGraphicsListen `xml:"listen,omitempty"`
}

// DomainGraphicsListen 图形设备监听配置
type DomainGraphicsListen struct {
	Type    string `xml:"type,attr"` // address, network, socket, none
	Address string `xml:"address,attr,omitempty"`
	Socket  string `xml:"socket,attr,omitempty"`
}

// DomainSerial 串口设备
type DomainSerial struct {
	Type   string              `xml:"type,attr"`
	Source DomainConsoleSource `xml:"source"`
	Target DomainSerialTarget  `xml:"target"`
}

// DomainSerialTarget 串口 target
type DomainSerialTarget struct {
	Type string `xml:"type,attr"`
	Port int    `xml:"port,attr"`
}

// DomainConsole 控制台设备
type DomainConsole struct {
	Type   string              `xml:"type,attr"`
	Source DomainConsoleSource `xml:"source"`
	Target DomainConsoleTarget `xml:"target"`
}

// DomainConsoleSource PTY 设备路径，运行时由 libvirt 分配
type DomainConsoleSource struct {
	Path string `xml:"path,attr,omitempty"`
}

// DomainConsoleTarget 控制台 target
type DomainConsoleTarget struct {
	Type string `xml:"type,attr"`
	Port int    `xml:"port,attr"`
}
