package gin_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/pagelens"
	plgin "github.com/fwojciec/pagelens/gin"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	engine := gin.New()
	engine.Use(plgin.Recovery(logger))
	engine.GET("/boom", func(c *gin.Context) { panic("secret detail") })

	w := do(engine, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), pagelens.MsgUnknown)
	assert.NotContains(t, w.Body.String(), "secret detail")
	assert.Contains(t, buf.String(), "secret detail")
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	engine := gin.New()
	engine.Use(plgin.RequestLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	do(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))

	output := buf.String()
	assert.Contains(t, output, "method=GET")
	assert.Contains(t, output, "path=/ping")
	assert.Contains(t, output, "status=418")
	assert.Contains(t, output, "duration=")
}
