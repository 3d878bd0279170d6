package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrgen/internal/capacity"
	"github.com/cristianadrielbraun/qrgen/internal/logging"
	"github.com/cristianadrielbraun/qrgen/web/pages"
)

// Home renders the generator page.
func (h *Handler) Home(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	page := pages.HomePage(pages.HomeProps{
		Title:    h.service,
		MaxBytes: capacity.TheoreticalMax,
	})
	if err := page.Render(c.Request.Context(), c.Writer); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "render home page", logging.Error(err), slog.String("path", c.Request.URL.Path))
		_ = c.Error(err)
	}
}
