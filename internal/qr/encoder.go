// Package qr wraps the QR matrix encoder used by the service. It always encodes
// at the lowest error-correction level so that a single symbol holds as many
// bytes as the standard allows.
package qr

import (
	"errors"
	"fmt"

	"github.com/yeqown/go-qrcode/v2"
)

// MaxBytes is the byte-mode capacity of a version 40 symbol at error-correction
// level L.
const MaxBytes = 2953

// ErrCapacityExceeded is returned when data does not fit in any symbol version.
var ErrCapacityExceeded = errors.New("data exceeds QR code capacity")

// Encoder turns raw bytes into a module grid.
type Encoder struct{}

// NewEncoder returns an Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Encode builds the QR symbol for data. The symbol version is picked by the
// underlying encoder (up to 40) as is the encoding mode. Any failure is
// reported as ErrCapacityExceeded.
func (e *Encoder) Encode(data []byte) (*Grid, error) {
	qrc, err := qrcode.NewWith(string(data),
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %v", ErrCapacityExceeded, len(data), err)
	}

	capture := &matrixCapture{}
	if err := qrc.Save(capture); err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %v", ErrCapacityExceeded, len(data), err)
	}
	if !capture.written {
		return nil, fmt.Errorf("%w: %d bytes: encoder produced no matrix", ErrCapacityExceeded, len(data))
	}
	return newGrid(capture.mat), nil
}

// matrixCapture implements qrcode.Writer and keeps the matrix instead of
// drawing it.
type matrixCapture struct {
	mat     qrcode.Matrix
	written bool
}

func (m *matrixCapture) Write(mat qrcode.Matrix) error {
	m.mat = mat
	m.written = true
	return nil
}

func (m *matrixCapture) Close() error { return nil }
