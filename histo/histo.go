package histo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Data is a histogram. The bins are given by consecutive dividers, the ith bin
// contains the values v with dividers[i] <= v < dividers[i+1]. Values outside
// the dividers are not counted.
type Data struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// String prints a -hopefully- pretty string representation of
// the histogram. The representation uses 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d\n", D.id, D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil. In that case, an empty histogram is created.
// If an ID for the histogram is given, it will be set. If not, the ID will
// be set to -1. It panics if there are less than 2 dividers, or if they
// are not sorted.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("histo.NewData: at least 2 sorted dividers are needed")
	}
	d := new(Data)
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	d.AddData(rawdata...)
	d.id = -1
	if len(ID) > 0 {
		d.id = ID[0]
	}
	return d
}

// Dividers returns evenly spaced dividers from min to max (both included)
// with bins of the given width. The last divider can be larger than max,
// so all the bins have the same width.
func Dividers(min, max, width float64) []float64 {
	if width <= 0 || max <= min {
		panic("histo.Dividers: need a positive width and max > min")
	}
	n := int(math.Ceil((max-min)/width - 1e-9))
	ret := make([]float64, n+1)
	for i := range ret {
		ret[i] = min + float64(i)*width
	}
	return ret
}

// ZDividers returns dividers symmetric around 0, from -limit to limit with
// bins of the given width, as used for z-scores.
func ZDividers(limit, width float64) []float64 {
	return Dividers(-limit, limit, width)
}

// AddData adds the given data point(s) to the histogram. Points outside the
// dividers are ignored.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		if math.IsNaN(v) || v < D.dividers[0] || v >= D.dividers[last] {
			continue
		}
		//first divider larger than v, the bin is the one before.
		j := sort.Search(len(D.dividers), func(i int) bool { return D.dividers[i] > v })
		D.histo[j-1]++
		D.total++
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

// AddClamped is like AddData, but points below the first divider are counted in
// the first bin, and points at or above the last divider in the last one.
func (D *Data) AddClamped(point ...float64) {
	last := len(D.dividers) - 1
	width := D.dividers[last] - D.dividers[last-1]
	clamped := make([]float64, 0, len(point))
	for _, v := range point {
		switch {
		case math.IsNaN(v):
			continue
		case v < D.dividers[0]:
			v = D.dividers[0]
		case v >= D.dividers[last]:
			v = D.dividers[last] - width/2
		}
		clamped = append(clamped, v)
	}
	D.AddData(clamped...)
}

// Total returns the number of data points in the histogram.
func (D *Data) Total() int {
	return D.total
}

// Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize normalizes the histogram
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

// normalizes or un-normalizes the histogram depending
// on whether normalize is true
func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

// CopyDividers copies the dividers of the histogram
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	return floats.ScaleTo(d, 1, D.dividers)
}

// View returns the bin values, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

// Max returns the largest bin value.
func (D *Data) Max() float64 {
	return floats.Max(D.histo)
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0]
		if len(dest[0]) > N {
			d = dest[0][:N] //floats.ScaleTo wants both slices to _match_
		}
	} else {
		d = make([]float64, N)
	}
	return d
}
