package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrgen/internal/render"
)

// Format is an output image format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

const invalidFormatMsg = "Invalid format. Use 'svg' or 'png'"

// parseFormat returns the default SVG format when raw is nil. A present but
// unknown value, including the empty string, is rejected.
func parseFormat(raw *string) (Format, error) {
	if raw == nil {
		return FormatSVG, nil
	}
	switch f := Format(*raw); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", badRequest(invalidFormatMsg)
	}
}

type generateRequest struct {
	Data   *string `json:"data"`
	Format *string `json:"format"`
}

type pngResponse struct {
	Format    Format `json:"format"`
	DataURL   string `json:"data_url"`
	SizeBytes int    `json:"size_bytes"`
}

// Generate handles POST /api/generate with a JSON body.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := bindJSON(c, &req); err != nil {
		h.abort(c, err)
		return
	}
	if req.Data == nil {
		h.abort(c, badRequest("Missing 'data' field"))
		return
	}
	h.render(c, *req.Data, req.Format)
}

// QRCode handles GET /api/qr?data=...&format=...
func (h *Handler) QRCode(c *gin.Context) {
	data, ok := c.GetQuery("data")
	if !ok {
		h.abort(c, badRequest("Missing 'data' query parameter"))
		return
	}
	var format *string
	if f, ok := c.GetQuery("format"); ok {
		format = &f
	}
	h.render(c, data, format)
}

// render validates the format before encoding so a bad request never
// produces image bytes.
func (h *Handler) render(c *gin.Context, data string, rawFormat *string) {
	format, err := parseFormat(rawFormat)
	if err != nil {
		h.abort(c, err)
		return
	}

	grid, err := h.enc.Encode([]byte(data))
	if err != nil {
		h.abort(c, tooLarge(len(data), err))
		return
	}

	switch format {
	case FormatPNG:
		out, err := render.PNG(grid)
		if err != nil {
			h.abort(c, err)
			return
		}
		c.JSON(http.StatusOK, pngResponse{
			Format:    FormatPNG,
			DataURL:   render.DataURL(out),
			SizeBytes: len(out),
		})
	default:
		c.Header("Cache-Control", "public, max-age=3600") // Cache for 1 hour
		c.Data(http.StatusOK, "image/svg+xml", render.SVG(grid))
	}
}

// bindJSON decodes the body into v. Oversized bodies keep their
// *http.MaxBytesError so they map to 413 rather than 400.
func bindJSON(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return nil
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return err
	}
	return badRequest("Invalid JSON body")
}
