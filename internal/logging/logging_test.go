package logging

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModuleLogger(t *testing.T) {
	logger := NewModuleLogger("roster-service")
	entry, ok := logger.(*logrus.Entry)
	require.True(t, ok, "expected *logrus.Entry, got %T", logger)
	assert.Equal(t, "roster-service", entry.Data["module"])
}

func TestLoggerWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set(RequestIDHeader, "rest-test-123")

	logger := LoggerWithContext(logrus.NewEntry(logrus.StandardLogger()), c)
	entry, ok := logger.(*logrus.Entry)
	require.True(t, ok)
	assert.Equal(t, "rest-test-123", entry.Data["request_id"])
}

func TestConfigure(t *testing.T) {
	prevLevel, prevFormatter := logrus.GetLevel(), logrus.StandardLogger().Formatter
	t.Cleanup(func() {
		logrus.SetLevel(prevLevel)
		logrus.SetFormatter(prevFormatter)
	})

	require.NoError(t, Configure("debug", "text"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	require.NoError(t, Configure("", ""))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, Configure("loud", "json"))
	assert.Error(t, Configure("info", "xml"))
}
