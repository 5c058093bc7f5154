package ginx_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/jvc/pkg/apierror"
	"github.com/jimyag/jvc/pkg/ginx"
	"github.com/jimyag/jvc/pkg/idgen"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedArgs struct {
	Username string `json:"username"`
}

func (args *validatedArgs) IsValid() error {
	if args.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ginx.RequestID(idgen.New()), ginx.RequestLogger(zerolog.Nop()))
	return router
}

func decodeErrorResponse(t *testing.T, body []byte) *apierror.ErrorResponse {
	t.Helper()
	var resp apierror.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Errors)
	return &resp
}

func TestAdapt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		testFunc func(*testing.T)
	}{
		{
			name: "Adapt3_APIError",
			testFunc: func(t *testing.T) {
				t.Parallel()
				router := newRouter()
				router.GET("/test", ginx.Adapt3(func(c *gin.Context) (string, error) {
					return "", fmt.Errorf("lookup: %w", apierror.ErrInstanceNotReady)
				}))

				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

				assert.Equal(t, http.StatusConflict, w.Code)
				resp := decodeErrorResponse(t, w.Body.Bytes())
				assert.Equal(t, "InstanceNotReady", resp.Errors[0].Code)
				assert.Equal(t, w.Header().Get(ginx.RequestIDHeader), resp.RequestID)
			},
		},
		{
			name: "Adapt3_PlainErrorIsInternal",
			testFunc: func(t *testing.T) {
				t.Parallel()
				router := newRouter()
				router.GET("/test", ginx.Adapt3(func(c *gin.Context) (string, error) {
					return "", assert.AnError
				}))

				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

				assert.Equal(t, http.StatusInternalServerError, w.Code)
				assert.NotContains(t, w.Body.String(), assert.AnError.Error())
				resp := decodeErrorResponse(t, w.Body.Bytes())
				assert.Equal(t, "InternalError", resp.Errors[0].Code)
			},
		},
		{
			name: "Adapt5_URIBinding",
			testFunc: func(t *testing.T) {
				t.Parallel()
				router := newRouter()

				type Args struct {
					Token string `uri:"token"`
				}
				type Response struct {
					Token string `json:"token"`
				}

				router.GET("/tokens/:token", ginx.Adapt5(func(c *gin.Context, args *Args) (*Response, error) {
					return &Response{Token: args.Token}, nil
				}))

				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tokens/abc", nil))

				assert.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, `{"token":"abc"}`, w.Body.String())
			},
		},
		{
			name: "Adapt5_JSONBinding",
			testFunc: func(t *testing.T) {
				t.Parallel()
				router := newRouter()

				router.POST("/users", ginx.Adapt5(func(c *gin.Context, args *validatedArgs) (map[string]string, error) {
					return map[string]string{"username": args.Username}, nil
				}))

				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"username":"jim"}`))
				req.Header.Set("Content-Type", "application/json")
				router.ServeHTTP(w, req)

				assert.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, `{"username":"jim"}`, w.Body.String())
			},
		},
		{
			name: "Adapt5_ValidationFails",
			testFunc: func(t *testing.T) {
				t.Parallel()
				router := newRouter()

				called := false
				router.POST("/users", ginx.Adapt5(func(c *gin.Context, args *validatedArgs) (map[string]string, error) {
					called = true
					return nil, nil
				}))

				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))
				req.Header.Set("Content-Type", "application/json")
				router.ServeHTTP(w, req)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.False(t, called)
				resp := decodeErrorResponse(t, w.Body.Bytes())
				assert.Equal(t, "MalformedRequest", resp.Errors[0].Code)
			},
		},
		{
			name: "Adapt5_XMLBinding",
			testFunc: func(t *testing.T) {
				t.Parallel()
				router := newRouter()

				type Args struct {
					Title string `xml:"title"`
				}
				type Response struct {
					Title string `xml:"title"`
				}

				router.POST("/test", ginx.Adapt5(func(c *gin.Context, args *Args) (*Response, error) {
					return &Response{Title: args.Title}, nil
				}))

				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`<Args><title>test</title></Args>`))
				req.Header.Set("Content-Type", "application/xml")
				router.ServeHTTP(w, req)

				assert.Equal(t, http.StatusOK, w.Code)
				assert.Contains(t, w.Header().Get("Content-Type"), "xml")
				assert.Contains(t, w.Body.String(), "<title>test</title>")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generated when missing", func(t *testing.T) {
		t.Parallel()
		router := newRouter()
		router.GET("/id", func(c *gin.Context) {
			c.String(http.StatusOK, ginx.RequestIDFrom(c))
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))

		assert.True(t, strings.HasPrefix(w.Body.String(), "req-"))
		assert.Equal(t, w.Body.String(), w.Header().Get(ginx.RequestIDHeader))
	})

	t.Run("propagated from client", func(t *testing.T) {
		t.Parallel()
		router := newRouter()
		router.GET("/id", func(c *gin.Context) {
			c.String(http.StatusOK, ginx.RequestIDFrom(c))
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(ginx.RequestIDHeader, "client-id")
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-id", w.Body.String())
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	router := newRouter()
	router.GET("/conflict", func(c *gin.Context) {
		ginx.Render(c, http.StatusConflict, gin.H{"state": "paused"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/conflict", nil)
	req.Header.Set("Accept", "application/xml")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "xml")
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	router := newRouter()
	router.Use(ginx.Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	router.GET("/abort", func(c *gin.Context) {
		panic(http.ErrAbortHandler)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeErrorResponse(t, w.Body.Bytes())
	assert.Equal(t, "InternalError", resp.Errors[0].Code)
	assert.NotContains(t, w.Body.String(), "boom")

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	})
}
