package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r9s-ai/bundleurl/internal/config"
	"github.com/r9s-ai/bundleurl/internal/requestid"
	"github.com/r9s-ai/bundleurl/internal/resolve"
	"github.com/r9s-ai/bundleurl/internal/version"
)

// ReloadFunc re-reads configuration and applies it to the running service.
type ReloadFunc func() error

func NewRouter(cfg *config.Config, svc *resolve.Service, reload ReloadFunc, accessLogger *log.Logger, accessColor bool) *gin.Engine {
	r := gin.New()
	r.Use(requestIDMiddleware())
	if cfg.Logging.AccessLog {
		r.Use(requestLoggerWithColor(accessLogger, accessColor))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})

	r.GET("/platforms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"platforms":    svc.Platforms(),
			"project_root": svc.ProjectRoot(),
		})
	})

	r.POST("/admin/reload", func(c *gin.Context) {
		if reload == nil {
			writeError(c, http.StatusNotImplemented, "reload_unavailable", "server was started without a config file")
			return
		}
		if err := reload(); err != nil {
			writeError(c, http.StatusInternalServerError, "reload_failed", err.Error())
			return
		}
		log.Printf("reload ok")
		c.JSON(http.StatusOK, gin.H{"platforms": svc.Platforms()})
	})

	// Everything else is a bundler request.
	r.NoRoute(makeOptionsHandler(svc))
	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestid.FromHeader(c.GetHeader(requestid.HeaderKey))
		c.Header(requestid.HeaderKey, id)
		c.Set(requestid.HeaderKey, id)
		c.Next()
	}
}
