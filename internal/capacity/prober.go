// Package capacity estimates how many bytes shaped like a given payload fit in
// one QR symbol. It asks the encoder instead of reading a capacity table,
// because the mode the encoder picks (numeric, alphanumeric, byte) changes the
// limit.
package capacity

import (
	"math"
	"unicode/utf8"

	"github.com/cristianadrielbraun/qrgen/internal/qr"
)

const (
	// TheoreticalMax is the ceiling no probe ever exceeds.
	TheoreticalMax = qr.MaxBytes

	// searchWindow caps how far above the input length the upward search goes.
	searchWindow = 1000

	// maxBisections bounds the downward search. ceil(log2(2953)) is 12.
	maxBisections = 15
)

// steps are tried greedily from largest to smallest.
var steps = [...]int{200, 100, 50, 25, 10, 5, 1}

// emptyPattern fills trial payloads when the caller sent nothing to cycle.
var emptyPattern = []byte("x")

// Encoder is the part of qr.Encoder the prober needs.
type Encoder interface {
	Encode(data []byte) (*qr.Grid, error)
}

// Report is the capacity estimate for one payload.
type Report struct {
	ByteCount        int  `json:"byte_count"`
	CharCount        int  `json:"char_count"`
	MaxCapacityBytes int  `json:"max_capacity_bytes"`
	TheoreticalMax   int  `json:"theoretical_max"`
	IsWithinLimit    bool `json:"is_within_limit"`
	BytesOver        int  `json:"bytes_over"`
	BytesRemaining   int  `json:"bytes_remaining"`
	PercentageUsed   int  `json:"percentage_used"`
	Verified         bool `json:"verified"`
}

// Prober runs capacity searches against an encoder. It holds no mutable state
// and is safe for concurrent use.
type Prober struct {
	enc Encoder
}

// NewProber returns a Prober backed by enc.
func NewProber(enc Encoder) *Prober {
	return &Prober{enc: enc}
}

// Probe reports whether data fits and where the boundary lies for content
// shaped like it.
func (p *Prober) Probe(data []byte) Report {
	n := len(data)
	r := Report{
		ByteCount:      n,
		CharCount:      utf8.RuneCount(data),
		TheoreticalMax: TheoreticalMax,
		Verified:       true,
	}

	if n == 0 || p.fits(data) {
		limit := p.searchUp(data)
		r.MaxCapacityBytes = limit
		r.IsWithinLimit = true
		r.BytesRemaining = limit - n
	} else {
		limit, ok := p.searchDown(data)
		if !ok {
			limit = max(1, int(math.Floor(float64(n)*0.9)))
			r.Verified = false
		}
		r.MaxCapacityBytes = limit
		r.BytesOver = n - limit
	}

	r.PercentageUsed = percentage(n, r.MaxCapacityBytes)
	return r
}

// searchUp grows the payload by cycling its own bytes and returns the largest
// length that still encodes, bounded by TheoreticalMax and n+searchWindow.
func (p *Prober) searchUp(data []byte) int {
	n := len(data)
	pattern := data
	if n == 0 {
		pattern = emptyPattern
	}
	ceiling := min(TheoreticalMax, n+searchWindow)

	limit := n
	for _, step := range steps {
		for limit+step <= ceiling {
			if !p.fits(cycle(pattern, limit+step)) {
				break
			}
			limit += step
		}
	}
	return limit
}

// searchDown bisects over prefixes of data. ok is false when no prefix of
// positive length was seen to encode.
func (p *Prober) searchDown(data []byte) (int, bool) {
	lo, hi := 0, min(len(data), TheoreticalMax)
	found := 0
	for i := 0; i < maxBisections && lo <= hi; i++ {
		mid := lo + (hi-lo)/2
		if p.fits(data[:mid]) {
			found = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return found, found > 0
}

func (p *Prober) fits(data []byte) bool {
	_, err := p.enc.Encode(data)
	return err == nil
}

// cycle repeats pattern until it is exactly size bytes long.
func cycle(pattern []byte, size int) []byte {
	out := make([]byte, size)
	for i := 0; i < size; i += len(pattern) {
		copy(out[i:], pattern)
	}
	return out
}

func percentage(n, limit int) int {
	if limit == 0 {
		return 100
	}
	return int(math.Round(100 * float64(n) / float64(limit)))
}
