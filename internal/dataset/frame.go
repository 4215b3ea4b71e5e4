package dataset

import (
	"fmt"
	"time"
)

// Kind identifies the storage type of a frame column.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindString
	KindTime
)

// Column is one typed column with a validity mask. Entries whose mask is
// false are the uniform null marker for that column.
type Column struct {
	Kind    Kind
	Floats  []float64
	Ints    []int64
	Strings []string
	Times   []time.Time
	Valid   []bool
}

// Len returns the number of entries in the column.
func (c *Column) Len() int {
	return len(c.Valid)
}

// Frame is a small in-memory columnar table. All columns have the same
// length. Frames are built once by the loader and read-only afterwards.
type Frame struct {
	cols  map[string]*Column
	order []string
	rows  int
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{cols: make(map[string]*Column)}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.rows
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// HasColumn reports whether the frame contains the named column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

func (f *Frame) addColumn(name string, col *Column) error {
	if _, exists := f.cols[name]; exists {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(f.order) > 0 && col.Len() != f.rows {
		return fmt.Errorf("column %q has %d rows, frame has %d", name, col.Len(), f.rows)
	}
	f.cols[name] = col
	f.order = append(f.order, name)
	f.rows = col.Len()
	return nil
}

// AddFloats adds a float column. A nil mask marks every entry valid.
func (f *Frame) AddFloats(name string, values []float64, valid []bool) error {
	return f.addColumn(name, &Column{
		Kind:   KindFloat,
		Floats: values,
		Valid:  normalizeMask(valid, len(values)),
	})
}

// AddInts adds an integer column. A nil mask marks every entry valid.
func (f *Frame) AddInts(name string, values []int64, valid []bool) error {
	return f.addColumn(name, &Column{
		Kind:  KindInt,
		Ints:  values,
		Valid: normalizeMask(valid, len(values)),
	})
}

// AddStrings adds a string column. A nil mask marks every entry valid.
func (f *Frame) AddStrings(name string, values []string, valid []bool) error {
	return f.addColumn(name, &Column{
		Kind:    KindString,
		Strings: values,
		Valid:   normalizeMask(valid, len(values)),
	})
}

// AddTimes adds a timestamp column. A nil mask marks every entry valid.
func (f *Frame) AddTimes(name string, values []time.Time, valid []bool) error {
	return f.addColumn(name, &Column{
		Kind:  KindTime,
		Times: values,
		Valid: normalizeMask(valid, len(values)),
	})
}

// Column returns the named column.
func (f *Frame) Column(name string) (*Column, error) {
	col, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return col, nil
}

// Floats returns the values and validity mask of a float column. Integer
// columns are widened so numeric features stored as ints still work.
func (f *Frame) Floats(name string) ([]float64, []bool, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, nil, err
	}
	switch col.Kind {
	case KindFloat:
		return col.Floats, col.Valid, nil
	case KindInt:
		widened := make([]float64, len(col.Ints))
		for i, v := range col.Ints {
			widened[i] = float64(v)
		}
		return widened, col.Valid, nil
	default:
		return nil, nil, fmt.Errorf("column %q is not numeric", name)
	}
}

// Ints returns the values and validity mask of an integer column.
func (f *Frame) Ints(name string) ([]int64, []bool, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, nil, err
	}
	if col.Kind != KindInt {
		return nil, nil, fmt.Errorf("column %q is not an integer column", name)
	}
	return col.Ints, col.Valid, nil
}

// Strings returns the values and validity mask of a string column.
func (f *Frame) Strings(name string) ([]string, []bool, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, nil, err
	}
	if col.Kind != KindString {
		return nil, nil, fmt.Errorf("column %q is not a string column", name)
	}
	return col.Strings, col.Valid, nil
}

// Row extracts the numeric values of the named columns, in order, from one
// row. Missing columns and non-numeric columns fail with a lookup error.
func (f *Frame) Row(i int, columns []string) ([]float64, error) {
	if i < 0 || i >= f.rows {
		return nil, fmt.Errorf("row %d out of range (frame has %d rows)", i, f.rows)
	}
	out := make([]float64, len(columns))
	for j, name := range columns {
		values, valid, err := f.Floats(name)
		if err != nil {
			return nil, err
		}
		if !valid[i] {
			return nil, fmt.Errorf("column %q is null at row %d", name, i)
		}
		out[j] = values[i]
	}
	return out, nil
}

func normalizeMask(valid []bool, n int) []bool {
	if valid != nil {
		return valid
	}
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	return mask
}
