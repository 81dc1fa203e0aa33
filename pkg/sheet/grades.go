package sheet

import (
	"github.com/openswoop/gpasheet/pkg/course"
)

const GradesSheet = "letter_grades"

type Grade struct {
	Letter string
	Points float64
	Lower  int
	Upper  int
}

// Scale is sorted by descending bound; the lookup formulas depend on it.
// A percentage gets the grade with the smallest upper bound still >= it.
var Scale = []Grade{
	{"AA", 4.0, 90, 100},
	{"BA", 3.5, 85, 89},
	{"BB", 3.0, 80, 84},
	{"CB", 2.5, 75, 79},
	{"CC", 2.0, 70, 74},
	{"DC", 1.5, 65, 69},
	{"DD", 1.0, 60, 64},
	{"FD", 0.5, 50, 59},
	{"FF", 0.0, 0, 49},
}

// buildGrades writes the scale and one lookup row per graded course, and
// returns the row holding the cumulative GPA.
func buildGrades(table course.Table, blocks []rowBlock) (Grid, int) {
	grid := Grid{Name: GradesSheet, Hidden: true, Protected: true}

	last := len(Scale)
	for i, g := range Scale {
		row := i + 1
		grid.Set(row, 0, Cell{Value: TextValue(g.Letter)})
		grid.Set(row, 1, Cell{Value: NumberValue(g.Points)})
		grid.Set(row, 2, Cell{Value: NumberValue(float64(g.Lower))})
		grid.Set(row, 3, Cell{Value: NumberValue(float64(g.Upper))})
	}

	row := 0
	for i, crs := range table {
		if blocks[i].Count == 0 {
			continue
		}
		row++
		grid.Set(row, 4, Cell{Value: FormulaValue("%s!D%d", CoursesSheet, blocks[i].Trailer)})
		grid.Set(row, 5, Cell{Value: FormulaValue("INDEX($A$1:$A$%d,MATCH(E%d,$D$1:$D$%d,-1))", last, row, last)})
		grid.Set(row, 6, Cell{Value: NumberValue(float64(crs.Credits))})
		grid.Set(row, 7, Cell{Value: FormulaValue("G%d*INDEX($B$1:$B$%d,MATCH(F%d,$A$1:$A$%d,0))", row, last, row, last)})
	}

	total := row + 1
	if row == 0 {
		grid.Set(total, 6, Cell{Value: NumberValue(0)})
		grid.Set(total, 7, Cell{Value: NumberValue(0)})
	} else {
		grid.Set(total, 6, Cell{Value: FormulaValue("SUM(G1:G%d)", row)})
		grid.Set(total, 7, Cell{Value: FormulaValue("SUM(H1:H%d)/G%d", row, total)})
	}
	return grid, total
}
