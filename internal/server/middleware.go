package server

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/r9s-ai/bundleurl/internal/logx"
	"github.com/r9s-ai/bundleurl/internal/requestid"
)

// Context keys the options handler fills in for the access log.
const (
	ctxBundleType = "burl.bundle_type"
	ctxPlatform   = "burl.platform"
	ctxEntry      = "burl.entry"
	ctxCache      = "burl.cache"
	ctxError      = "burl.error"
)

func requestLoggerWithColor(l *log.Logger, color bool) gin.HandlerFunc {
	if l == nil {
		l = log.New(os.Stdout, "", log.LstdFlags)
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)

		fields := map[string]any{}
		if v := c.GetString(requestid.HeaderKey); v != "" {
			fields["request_id"] = v
		}
		for key, field := range map[string]string{
			ctxBundleType: "bundle_type",
			ctxPlatform:   "platform",
			ctxEntry:      "entry",
			ctxCache:      "cache",
			ctxError:      "error",
		} {
			if v, ok := c.Get(key); ok {
				fields[field] = v
			}
		}

		l.Println(logx.FormatRequestLineWithColor(time.Now(), status, latency, c.ClientIP(), c.Request.Method, c.Request.URL.Path, fields, color))
	}
}
