package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrgen/internal/capacity"
	"github.com/cristianadrielbraun/qrgen/internal/guard"
)

// Handler holds the dependencies of the HTTP handlers. Everything in it is
// read-only after New, so one Handler serves all requests concurrently.
type Handler struct {
	enc     capacity.Encoder
	prober  *capacity.Prober
	logger  *slog.Logger
	service string
	now     func() time.Time
}

// Options configures a Handler.
type Options struct {
	ServiceName string
	Logger      *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// New returns a Handler that encodes with enc.
func New(enc capacity.Encoder, opts Options) *Handler {
	h := &Handler{
		enc:     enc,
		prober:  capacity.NewProber(enc),
		logger:  opts.Logger,
		service: opts.ServiceName,
		now:     opts.Now,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	base := guard.RequestScheme(c.Request) + "://" + c.Request.Host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>weekly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(200, xml)
}

// Health reports liveness. It has no dependencies to check.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "healthy",
		"service":   h.service,
		"timestamp": h.now().UnixMilli(),
	})
}
