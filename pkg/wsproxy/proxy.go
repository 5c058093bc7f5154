// Package wsproxy 在 WebSocket 和控制台后端（VNC/SPICE socket、串口 PTY）之间转发数据
package wsproxy

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// GraphicsBufferSize VNC/SPICE 数据的读缓冲
	GraphicsBufferSize = 32768
	// SerialBufferSize 串口数据的读缓冲
	SerialBufferSize = 4096
)

// Proxy WebSocket 代理
// 后端数据以 messageType 写入 WebSocket，WebSocket 的文本和二进制消息都写入后端
type Proxy struct {
	backend     io.ReadWriteCloser
	wsConn      *websocket.Conn
	messageType int
	bufferSize  int

	// 只有 forwardBackendToWS 写 wsConn，Close 不等待写入完成
	closeOnce sync.Once
	closed    atomic.Bool
}

// New 创建代理，network 为 pty 时使用文本消息，其它使用二进制消息
func New(network string, backend io.ReadWriteCloser, wsConn *websocket.Conn) *Proxy {
	p := &Proxy{
		backend:     backend,
		wsConn:      wsConn,
		messageType: websocket.BinaryMessage,
		bufferSize:  GraphicsBufferSize,
	}
	if network == NetworkPTY {
		p.messageType = websocket.TextMessage
		p.bufferSize = SerialBufferSize
	}
	return p
}

// Start 双向转发数据，任一方向结束或 ctx 结束时关闭两端并返回
func (p *Proxy) Start(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			p.Close()
		case <-done:
		}
	}()

	var toWS, toBackend int64
	var wg sync.WaitGroup
	wg.Add(2)

	// 后端 -> WebSocket
	go func() {
		defer wg.Done()
		defer p.Close()
		toWS = p.forwardBackendToWS(logger)
	}()

	// WebSocket -> 后端
	go func() {
		defer wg.Done()
		defer p.Close()
		toBackend = p.forwardWSToBackend(logger)
	}()

	wg.Wait()
	close(done)

	logger.Info().
		Int64("bytes_to_ws", toWS).
		Int64("bytes_to_backend", toBackend).
		Msg("Console proxy stopped")
	return nil
}

func (p *Proxy) forwardBackendToWS(logger *zerolog.Logger) int64 {
	var total int64
	buffer := make([]byte, p.bufferSize)
	for {
		n, err := p.backend.Read(buffer)
		if n > 0 {
			total += int64(n)
			if p.closed.Load() {
				return total
			}
			if writeErr := p.wsConn.WriteMessage(p.messageType, buffer[:n]); writeErr != nil {
				logger.Debug().Err(writeErr).Msg("Error writing to WebSocket")
				return total
			}
		}
		if err != nil {
			if !isClosedError(err) {
				logger.Debug().Err(err).Msg("Error reading from console backend")
			}
			return total
		}
	}
}

func (p *Proxy) forwardWSToBackend(logger *zerolog.Logger) int64 {
	var total int64
	for {
		messageType, data, err := p.wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug().Err(err).Msg("WebSocket read error")
			}
			return total
		}

		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}
		if _, err := p.backend.Write(data); err != nil {
			if !isClosedError(err) {
				logger.Debug().Err(err).Msg("Error writing to console backend")
			}
			return total
		}
		total += int64(len(data))
	}
}

// Close 关闭两端连接，可以重复调用
// 阻塞中的读写会因底层连接关闭而返回
func (p *Proxy) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		if p.backend != nil {
			p.backend.Close()
		}
		if p.wsConn != nil {
			p.wsConn.Close()
		}
	})
}

func isClosedError(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrClosed)
}
