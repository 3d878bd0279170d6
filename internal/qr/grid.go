package qr

import "github.com/yeqown/go-qrcode/v2"

// QuietZone is the number of light modules renderers put around the symbol.
const QuietZone = 4

// Grid is the square module matrix of an encoded symbol, without quiet zone.
type Grid struct {
	size  int
	cells []bool
	mat   qrcode.Matrix
}

func newGrid(mat qrcode.Matrix) *Grid {
	size := mat.Width()
	g := &Grid{
		size:  size,
		cells: make([]bool, size*size),
		mat:   mat,
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if x < size && y < size {
			g.cells[y*size+x] = v.IsSet()
		}
	})
	return g
}

// Size is the number of modules per side.
func (g *Grid) Size() int { return g.size }

// Version derives the symbol version from the side length.
func (g *Grid) Version() int { return (g.size - 17) / 4 }

// Dark reports whether the module at column x, row y is dark. Coordinates
// outside the symbol are light.
func (g *Grid) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= g.size || y >= g.size {
		return false
	}
	return g.cells[y*g.size+x]
}

// Matrix returns the encoder matrix for writers that draw it themselves.
func (g *Grid) Matrix() qrcode.Matrix { return g.mat }
