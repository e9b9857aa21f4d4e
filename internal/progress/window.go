package progress

import (
	"math"
	"sort"
)

// window は直近 size 件のレートを保持するリングバッファ。
type window struct {
	buf     []float64
	next    int
	full    bool
	scratch []float64
}

func newWindow(size int) *window {
	if size <= 0 {
		size = 1
	}
	return &window{buf: make([]float64, size)}
}

func (w *window) Len() int {
	if w.full {
		return len(w.buf)
	}
	return w.next
}

// Add drops NaN and Inf samples.
func (w *window) Add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	w.buf[w.next] = v
	w.next++
	if w.next == len(w.buf) {
		w.next = 0
		w.full = true
	}
}

// Quantile linearly interpolates between the two nearest ranks. An empty
// window yields 0.
func (w *window) Quantile(q float64) float64 {
	n := w.Len()
	if n == 0 {
		return 0
	}
	w.scratch = append(w.scratch[:0], w.buf[:n]...)
	sort.Float64s(w.scratch)
	switch {
	case q <= 0:
		return w.scratch[0]
	case q >= 1:
		return w.scratch[n-1]
	}
	pos := q * float64(n-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return w.scratch[lower]
	}
	weight := pos - float64(lower)
	return w.scratch[lower]*(1-weight) + w.scratch[upper]*weight
}
