// Package render draws module grids as SVG markup or PNG rasters.
package render

import (
	"fmt"
	"strings"

	"github.com/cristianadrielbraun/qrgen/internal/qr"
)

const (
	// MinSVGDimension is the smallest width and height of SVG output.
	MinSVGDimension = 300

	darkColor  = "#000000"
	lightColor = "#ffffff"
)

// SVG renders grid as a standalone SVG document. The viewBox is measured in
// modules and the outer size is scaled up to at least MinSVGDimension.
func SVG(grid *qr.Grid) []byte {
	modules := grid.Size() + 2*qr.QuietZone
	unit := ceilDiv(MinSVGDimension, modules)
	dim := modules * unit

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %d %d" width="%d" height="%d" shape-rendering="crispEdges">`,
		modules, modules, dim, dim)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, modules, modules, lightColor)
	fmt.Fprintf(&b, `<path fill="%s" d="`, darkColor)

	// one subpath per horizontal run of dark modules
	for y := 0; y < grid.Size(); y++ {
		for x := 0; x < grid.Size(); {
			if !grid.Dark(x, y) {
				x++
				continue
			}
			run := 1
			for grid.Dark(x+run, y) {
				run++
			}
			fmt.Fprintf(&b, "M%d %dh%dv1h-%dz", x+qr.QuietZone, y+qr.QuietZone, run, run)
			x += run
		}
	}

	b.WriteString(`"/></svg>`)
	return []byte(b.String())
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
