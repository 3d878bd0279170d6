package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/cristianadrielbraun/qrgen/internal/qr"
)

// MinPNGDimension is the smallest width and height of PNG output in pixels.
const MinPNGDimension = 400

// ErrEncoding is returned when the raster cannot be drawn or encoded.
var ErrEncoding = errors.New("failed to encode PNG")

// PNG rasterizes grid into an 8-bit grayscale PNG. Each module is drawn as a
// square block sized so the image, quiet zone included, is at least
// MinPNGDimension pixels on each side.
func PNG(grid *qr.Grid) ([]byte, error) {
	modules := grid.Size() + 2*qr.QuietZone
	block := min(ceilDiv(MinPNGDimension, modules), 255)

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopCloser{&buf},
		standard.WithQRWidth(uint8(block)),
		standard.WithBorderWidth(qr.QuietZone*block),
		standard.WithBgColor(color.RGBA{255, 255, 255, 255}),
		standard.WithFgColor(color.RGBA{0, 0, 0, 255}),
		standard.WithCustomImageEncoder(grayPNG{}),
	)
	if err := w.Write(grid.Matrix()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrEncoding)
	}
	return buf.Bytes(), nil
}

// DataURL wraps PNG bytes in a base64 data URL.
func DataURL(pngBytes []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

// grayPNG flattens whatever the writer drew into 8-bit luminance before PNG
// encoding.
type grayPNG struct{}

func (grayPNG) Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return png.Encode(w, gray)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
