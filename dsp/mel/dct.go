package mel

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// CosineTable holds precomputed type-II DCT basis rows for a fixed input
// length, so repeated transforms reduce to one dot product per output
// coefficient. The transform is the naive O(rows*len) form; input lengths
// here are filter-bank channel counts, far too small for a fast DCT to pay
// off.
type CosineTable struct {
	rows [][]float64
	n    int
}

// NewCosineTable precomputes rows DCT-II basis vectors for inputs of
// length n: rows[i][j] = cos((j+0.5)*i*pi/n).
func NewCosineTable(rows, n int) (*CosineTable, error) {
	if rows <= 0 || n <= 0 {
		return nil, fmt.Errorf("mel: cosine table shape must be positive: %dx%d", rows, n)
	}

	if rows > n {
		return nil, fmt.Errorf("mel: cosine table rows %d exceed input length %d", rows, n)
	}

	t := &CosineTable{
		rows: make([][]float64, rows),
		n:    n,
	}

	a := math.Pi / float64(n)
	for i := range t.rows {
		row := make([]float64, n)
		for j := range row {
			row[j] = math.Cos((float64(j) + 0.5) * float64(i) * a)
		}

		t.rows[i] = row
	}

	return t, nil
}

// Rows returns the number of output coefficients.
func (t *CosineTable) Rows() int { return len(t.rows) }

// Len returns the expected input length.
func (t *CosineTable) Len() int { return t.n }

// TransformInto writes the first Rows() DCT-II coefficients of spectrum
// into dst: dst[i] = sum_j spectrum[j]*cos((j+0.5)*i*pi/len).
func (t *CosineTable) TransformInto(dst, spectrum []float64) error {
	if len(spectrum) != t.n {
		return fmt.Errorf("mel: dct input length %d, want %d", len(spectrum), t.n)
	}

	if len(dst) != len(t.rows) {
		return fmt.Errorf("mel: dct output length %d, want %d", len(dst), len(t.rows))
	}

	for i, row := range t.rows {
		dst[i] = vecmath.DotProduct(row, spectrum)
	}

	return nil
}

// DCT computes the full-length type-II DCT of spectrum. One-shot
// convenience; use a [CosineTable] when transforming repeatedly.
func DCT(spectrum []float64) ([]float64, error) {
	if len(spectrum) == 0 {
		return nil, ErrShortSpectrum
	}

	t, err := NewCosineTable(len(spectrum), len(spectrum))
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(spectrum))
	if err := t.TransformInto(out, spectrum); err != nil {
		return nil, err
	}

	return out, nil
}
