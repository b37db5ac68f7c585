package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/r9s-ai/bundleurl/internal/resolve"
	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
)

func makeOptionsHandler(svc *resolve.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Header("Allow", "GET, HEAD")
			writeError(c, http.StatusMethodNotAllowed, "method_not_allowed", "only GET and HEAD are supported")
			return
		}

		opts, hit, err := svc.Resolve(requestURL(c.Request))
		if err != nil {
			status, typ := errorStatus(err)
			c.Set(ctxError, typ)
			writeError(c, status, typ, err.Error())
			return
		}

		c.Set(ctxBundleType, opts.BundleType.String())
		c.Set(ctxPlatform, opts.Platform)
		c.Set(ctxEntry, opts.EntryFile)
		if hit {
			c.Set(ctxCache, "hit")
		} else {
			c.Set(ctxCache, "miss")
		}
		if opts.SourceMapURL != "" {
			c.Header("SourceMap", opts.SourceMapURL)
		}
		c.JSON(http.StatusOK, opts)
	}
}

// requestURL rebuilds the absolute URL the client asked for so derived URLs
// (the source map) point back at this server.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if v := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); v != "" {
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		scheme = strings.ToLower(strings.TrimSpace(v))
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, bundleurl.ErrMalformedRequestURL):
		return http.StatusBadRequest, "malformed_request_url"
	case errors.Is(err, bundleurl.ErrUnrecognizedArtifactKind):
		return http.StatusNotFound, "unrecognized_artifact_kind"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}

func writeError(c *gin.Context, status int, typ, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"type":    typ,
			"message": msg,
		},
	})
}
