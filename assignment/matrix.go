// SPDX-License-Identifier: MIT

package assignment

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors. Match them with errors.Is; context is attached with %w.
var (
	// ErrBadShape indicates negative dimensions or ragged rows.
	ErrBadShape = errors.New("assignment: invalid shape")

	// ErrOutOfRange indicates an index outside the matrix.
	ErrOutOfRange = errors.New("assignment: index out of range")

	// ErrNaN indicates a NaN cost.
	ErrNaN = errors.New("assignment: NaN cost")

	// ErrNilMatrix indicates a nil *Matrix.
	ErrNilMatrix = errors.New("assignment: nil matrix")
)

// Matrix is a dense row-major cost matrix. +Inf marks a forbidden pair.
type Matrix struct {
	r, c int
	data []float64
}

// NewMatrix returns an r×c zero cost matrix. Zero-sized sides are allowed.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewMatrix(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Matrix{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewMatrixFunc returns a rows×cols matrix filled with cost(i, j). A NaN
// returned by cost is stored as +Inf, so the pair is forbidden. Only the
// shape can fail.
func NewMatrixFunc(rows, cols int, cost func(i, j int) float64) (*Matrix, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		row := m.data[i*cols : (i+1)*cols]
		for j := range row {
			v := cost(i, j)
			if math.IsNaN(v) {
				v = math.Inf(1)
			}
			row[j] = v
		}
	}

	return m, nil
}

// FromRows builds a Matrix from a slice of equally long rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m, err := NewMatrix(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d entries, want %d: %w", i, len(row), cols, ErrBadShape)
		}
		for j, v := range row {
			if err = m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.c }

// At returns the cost at (i, j).
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("Matrix.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Set stores the cost at (i, j). NaN is rejected; +Inf forbids the pair.
func (m *Matrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return fmt.Errorf("Matrix.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) {
		return fmt.Errorf("Matrix.Set(%d,%d): %w", i, j, ErrNaN)
	}
	m.data[i*m.c+j] = v

	return nil
}

// Forbid marks (i, j) as a forbidden pair.
func (m *Matrix) Forbid(i, j int) error {
	return m.Set(i, j, math.Inf(1))
}
