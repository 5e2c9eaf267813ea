package logging

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("debug", "json", &buf)

	l.WithField("shop_id", 7).Debug("stats computed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "stats computed", line["msg"])
	assert.Equal(t, float64(7), line["shop_id"])
	assert.Equal(t, "debug", line["level"])
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	l := NewWithWriter("loud", "text", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.NotNil(t, FromContext(c))

	entry := logrus.New().WithField("correlation_id", "abc")
	WithEntry(c, entry)
	assert.Same(t, entry, FromContext(c))
}
