// Package sheet lays out the workbook as plain data: typed cells on two
// grids plus the formulas that tie them together. Rendering to a file
// format lives elsewhere.
package sheet

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

type Kind int

const (
	Empty Kind = iota
	Number
	Text
	Formula
)

// Value is one of Empty, Number, Text or Formula. Formulas are stored
// without the leading "=".
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

func NumberValue(n float64) Value { return Value{Kind: Number, Num: n} }
func TextValue(s string) Value    { return Value{Kind: Text, Str: s} }

func FormulaValue(format string, a ...interface{}) Value {
	return Value{Kind: Formula, Str: fmt.Sprintf(format, a...)}
}

// String is the text a reader sees for literal values. Formulas have no
// text until evaluated.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case Text:
		return v.Str
	}
	return ""
}

// Style flags. The zero Style is a locked, unformatted cell.
type Style struct {
	Bold        bool
	Center      bool
	Unlocked    bool
	TwoDecimals bool
}

type Cell struct {
	Value
	Style
}

type Row []Cell

type Grid struct {
	Name      string
	Rows      []Row
	Widths    []float64 // per column, 0 leaves the default
	Hidden    bool
	Protected bool
}

// Set writes a cell at 1-based row and 0-based column, growing the grid.
func (g *Grid) Set(row, col int, cell Cell) {
	for len(g.Rows) < row {
		g.Rows = append(g.Rows, nil)
	}
	r := g.Rows[row-1]
	for len(r) <= col {
		r = append(r, Cell{})
	}
	r[col] = cell
	g.Rows[row-1] = r
}

// Cell returns the cell at 1-based row and 0-based column, or an empty one.
func (g *Grid) Cell(row, col int) Cell {
	if row < 1 || row > len(g.Rows) || col >= len(g.Rows[row-1]) {
		return Cell{}
	}
	return g.Rows[row-1][col]
}

// fitColumns sizes each of the first n columns to its longest text plus one.
func (g *Grid) fitColumns(n int) {
	widths := make([]float64, n)
	for _, r := range g.Rows {
		for col := 0; col < n && col < len(r); col++ {
			if l := float64(utf8.RuneCountInString(r[col].String())); l+1 > widths[col] {
				widths[col] = l + 1
			}
		}
	}
	g.Widths = widths
}

type Workbook struct {
	Courses Grid
	Grades  Grid
}
