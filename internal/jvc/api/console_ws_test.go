package api

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/jimyag/jvc/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// startEchoBackend 启动 TCP echo 服务，模拟 VNC server
func startEchoBackend(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				_, _ = io.Copy(conn, conn)
			}()
		}
	}()
	t.Cleanup(func() { _ = ln.Close() })
	return ln.Addr().String()
}

func TestConsoleWS(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "invalid token is rejected before upgrade",
			testFunc: func(t *testing.T) {
				t.Parallel()
				ta := newTestAPI(t)
				ta.tokens.On("Validate", mock.Anything, "bad").Return(nil, apierror.ErrInvalidToken)

				w := httptest.NewRecorder()
				ta.api.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/websockify?token=bad", nil))
				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.Equal(t, "InvalidConsoleToken", decodeError(t, w).Errors[0].Code)
			},
		},
		{
			name: "valid token is proxied to the console",
			testFunc: func(t *testing.T) {
				t.Parallel()
				ta := newTestAPI(t)
				backend := startEchoBackend(t)
				ta.tokens.On("Validate", mock.Anything, "good").Return(&entity.ConsoleToken{
					Token:       "good",
					InstanceID:  testServerID,
					ConsoleType: "novnc",
					Protocol:    entity.ConsoleProtocolVNC,
					Network:     "tcp",
					Target:      backend,
					ExpiresAt:   time.Now().Add(time.Minute),
				}, nil)

				server := httptest.NewServer(ta.api.Handler())
				defer server.Close()

				wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/websockify?token=good"
				dialer := websocket.Dialer{Subprotocols: []string{"binary"}}
				client, resp, err := dialer.Dial(wsURL, nil)
				require.NoError(t, err)
				defer client.Close()
				assert.Equal(t, "binary", resp.Header.Get("Sec-WebSocket-Protocol"))

				require.NoError(t, client.WriteMessage(websocket.BinaryMessage, []byte("RFB 003.008\n")))
				messageType, data, err := client.ReadMessage()
				require.NoError(t, err)
				assert.Equal(t, websocket.BinaryMessage, messageType)
				assert.Equal(t, "RFB 003.008\n", string(data))
			},
		},
		{
			name: "unreachable console closes the websocket",
			testFunc: func(t *testing.T) {
				t.Parallel()
				ta := newTestAPI(t)
				ta.tokens.On("Validate", mock.Anything, "stale").Return(&entity.ConsoleToken{
					Token:   "stale",
					Network: "unix",
					Target:  "/nonexistent/console.sock",
				}, nil)

				server := httptest.NewServer(ta.api.Handler())
				defer server.Close()

				wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/websockify?token=stale"
				client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
				require.NoError(t, err)
				defer client.Close()

				_, _, err = client.ReadMessage()
				require.Error(t, err)
				assert.True(t, websocket.IsCloseError(err, websocket.CloseInternalServerErr))
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, tc.testFunc)
	}
}
