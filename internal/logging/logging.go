package logging

import (
	"io"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const contextEntryKey = "logEntry"

// New builds the process logger. format is "json" or "text".
func New(level, format string) *logrus.Logger {
	return NewWithWriter(level, format, os.Stdout)
}

func NewWithWriter(level, format string, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}

// WithEntry stores a request-scoped entry on the gin context.
func WithEntry(c *gin.Context, e *logrus.Entry) {
	c.Set(contextEntryKey, e)
}

// FromContext returns the request-scoped entry, or one built on the standard logger.
func FromContext(c *gin.Context) *logrus.Entry {
	if c != nil {
		if v, ok := c.Get(contextEntryKey); ok {
			if e, ok := v.(*logrus.Entry); ok {
				return e
			}
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
