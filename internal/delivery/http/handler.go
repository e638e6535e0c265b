package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wooport/wooport/internal/domain"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	redirects domain.RedirectStore
}

// NewHandler creates a new HTTP handler
func NewHandler(redirects domain.RedirectStore) *Handler {
	return &Handler{redirects: redirects}
}

// HealthCheck returns the health status of the preview server
func (h *Handler) HealthCheck(c *gin.Context) {
	count := 0
	if h.redirects != nil {
		count = len(h.redirects.All())
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "wooport-preview",
		"version":   "1.0.0",
		"redirects": count,
	})
}

// ListRedirects returns every loaded redirect rule
func (h *Handler) ListRedirects(c *gin.Context) {
	if h.redirects == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no redirects loaded"})
		return
	}

	rules := h.redirects.All()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(rules),
		"redirects": rules,
	})
}

// LookupRedirect reports the rule for ?path= without redirecting
func (h *Handler) LookupRedirect(c *gin.Context) {
	if h.redirects == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no redirects loaded"})
		return
	}

	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path query parameter is required"})
		return
	}

	rule, ok := h.redirects.Lookup(path)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no redirect for path", "path": path})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// FollowRedirect answers any unrouted GET or HEAD with the matching redirect
func (h *Handler) FollowRedirect(c *gin.Context) {
	method := c.Request.Method
	if h.redirects != nil && (method == http.MethodGet || method == http.MethodHead) {
		if rule, ok := h.redirects.Lookup(c.Request.URL.Path); ok {
			status := http.StatusFound
			if rule.Permanent {
				status = http.StatusMovedPermanently
			}
			c.Redirect(status, rule.Destination)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "not found", "path": c.Request.URL.Path})
}
