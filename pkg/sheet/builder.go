package sheet

import (
	"github.com/golang/glog"
	"github.com/openswoop/gpasheet/pkg/course"
)

const (
	CoursesSheet = "Courses"

	metricCol = 0
	numberCol = 1
	weightCol = 2
	gradeCol  = 3

	gpaLabelCol = 5
	gpaValueCol = 6
)

// rowBlock is where one course sits on the course sheet, in 1-based rows.
type rowBlock struct {
	Header  int
	First   int
	Count   int
	Trailer int
}

func blockAt(header, count int) rowBlock {
	return rowBlock{
		Header:  header,
		First:   header + 1,
		Count:   count,
		Trailer: header + 1 + count,
	}
}

func (b rowBlock) Last() int {
	return b.First + b.Count - 1
}

// Build lays out the course sheet and the hidden grade sheet for a fully
// resolved table. The same table always produces the same workbook.
func Build(table course.Table) Workbook {
	courses, blocks := buildCourses(table)
	grades, gpaRow := buildGrades(table, blocks)

	courses.Set(1, gpaLabelCol, Cell{Value: TextValue("GPA"), Style: Style{Bold: true}})
	courses.Set(1, gpaValueCol, Cell{
		Value: FormulaValue("%s!H%d", GradesSheet, gpaRow),
		Style: Style{TwoDecimals: true},
	})
	return Workbook{Courses: courses, Grades: grades}
}

func buildCourses(table course.Table) (Grid, []rowBlock) {
	grid := Grid{Name: CoursesSheet, Protected: true}
	blocks := make([]rowBlock, len(table))

	header := 1
	for i, crs := range table {
		block := blockAt(header, len(crs.Evaluations))
		blocks[i] = block

		bold := Style{Bold: true}
		boldCenter := Style{Bold: true, Center: true}
		grid.Set(block.Header, metricCol, Cell{TextValue(crs.Code.String()), bold})
		grid.Set(block.Header, numberCol, Cell{TextValue("Number"), boldCenter})
		grid.Set(block.Header, weightCol, Cell{TextValue("Weight"), boldCenter})
		grid.Set(block.Header, gradeCol, Cell{TextValue("Grade"), boldCenter})

		for j, e := range crs.Evaluations {
			row := block.First + j
			grid.Set(row, metricCol, Cell{Value: TextValue(e.Metric)})
			grid.Set(row, numberCol, Cell{NumberValue(float64(e.Number)), Style{Center: true}})
			grid.Set(row, weightCol, Cell{NumberValue(e.Weight), Style{Center: true}})
			grade := Value{}
			if e.Grade != nil {
				grade = NumberValue(*e.Grade)
			}
			grid.Set(row, gradeCol, Cell{grade, Style{Center: true, Unlocked: true}})
		}

		grid.Set(block.Trailer, gradeCol, Cell{weightedSum(block), Style{Center: true}})
		if block.Count == 0 {
			glog.Warningf("%s has no weighted evaluations; it is left out of the GPA", crs.Code)
		}
		header = block.Trailer + 1
	}

	grid.fitColumns(gradeCol)
	return grid, blocks
}

// weightedSum spans exactly the evaluation rows of the block. A course with
// no evaluations gets a plain zero instead of an empty range.
func weightedSum(b rowBlock) Value {
	if b.Count == 0 {
		return NumberValue(0)
	}
	return FormulaValue("SUMPRODUCT(C%d:C%d,D%d:D%d)", b.First, b.Last(), b.First, b.Last())
}
