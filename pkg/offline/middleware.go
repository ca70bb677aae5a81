package offline

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CacheFirst answers requests from m when Resolve finds them there and lets
// everything else through to the rest of the chain.
func CacheFirst(m Matcher, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		source, entry := Resolve(c.Request, m)
		if source != FromCache {
			c.Next()
			return
		}
		if err := WriteEntry(c.Writer, entry); err != nil {
			logger.WithField("url", entry.URL).Warnf("failed to write cached response: %v", err)
		}
		c.Abort()
	}
}
