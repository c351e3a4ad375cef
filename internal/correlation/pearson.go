// Package correlation computes the Pearson correlation matrix over the
// catalog's numeric feature columns.
package correlation

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/abelbrown/picks/internal/catalog"
)

// Matrix is a symmetric feature-by-feature Pearson correlation matrix.
// Entries involving a zero-variance column are NaN.
type Matrix struct {
	Names  []string
	Values [][]float64
}

// Compute builds the correlation matrix for a catalog. Missing (NaN) feature
// values are imputed with their column mean before correlating, so a
// partially-imputed cores column still participates.
func Compute(t *catalog.Table) Matrix {
	names := catalog.FeatureNames
	cols := make([][]float64, len(names))
	means := t.FeatureMeans()

	for j := range names {
		col := make([]float64, t.Len())
		for i, it := range t.Items() {
			v := it.Features()[j]
			if math.IsNaN(v) {
				v = means[j]
			}
			col[i] = v
		}
		cols[j] = col
	}

	values := make([][]float64, len(names))
	for i := range names {
		values[i] = make([]float64, len(names))
		for j := range names {
			values[i][j] = pearson(cols[i], cols[j])
		}
	}
	return Matrix{Names: names, Values: values}
}

// WriteCSV emits the matrix with a leading header row and a row-label column.
func (m Matrix) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, m.Names...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, name := range m.Names {
		row := make([]string, 0, len(m.Names)+1)
		row = append(row, name)
		for _, v := range m.Values[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// pearson is the sample correlation of two equal-length columns.
// Zero variance in either column yields NaN, matching the convention of the
// statistics tooling this output is compared against.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return math.NaN()
	}

	mx, my := mean(x), mean(y)
	cov, vx, vy := 0.0, 0.0, 0.0
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(vx*vy)
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
