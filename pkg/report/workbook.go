package report

import (
	"fmt"

	"github.com/openswoop/gpasheet/pkg/course"
	"github.com/openswoop/gpasheet/pkg/sheet"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

type workbookWriter struct {
	f      *excelize.File
	styles map[sheet.Style]int
}

// WriteWorkbook renders both grids into one xlsx file. The file is only
// saved once every sheet rendered cleanly.
func WriteWorkbook(wb sheet.Workbook, fileName string) error {
	f := excelize.NewFile()
	defer f.Close()

	w := workbookWriter{f: f, styles: make(map[sheet.Style]int)}
	if err := w.render(wb); err != nil {
		return err
	}
	if err := f.SaveAs(fileName); err != nil {
		return fmt.Errorf("%w: failed to save %s: %v", course.ErrRender, fileName, err)
	}
	return nil
}

func (w workbookWriter) render(wb sheet.Workbook) error {
	if err := w.f.SetSheetName(defaultSheet, wb.Courses.Name); err != nil {
		return renderError(wb.Courses.Name, err)
	}
	if _, err := w.f.NewSheet(wb.Grades.Name); err != nil {
		return renderError(wb.Grades.Name, err)
	}
	w.f.SetActiveSheet(0)

	for _, g := range []sheet.Grid{wb.Courses, wb.Grades} {
		if err := w.writeGrid(g); err != nil {
			return renderError(g.Name, err)
		}
	}
	return nil
}

func (w workbookWriter) writeGrid(g sheet.Grid) error {
	for i, row := range g.Rows {
		for col, cell := range row {
			if err := w.writeCell(g.Name, i+1, col, cell); err != nil {
				return err
			}
		}
	}

	for col, width := range g.Widths {
		if width <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(g.Name, name, name, width); err != nil {
			return err
		}
	}

	if g.Hidden {
		if err := w.f.SetSheetVisible(g.Name, false); err != nil {
			return err
		}
	}
	if g.Protected {
		// Cells are locked unless their style says otherwise
		return w.f.ProtectSheet(g.Name, &excelize.SheetProtectionOptions{
			SelectLockedCells:   true,
			SelectUnlockedCells: true,
		})
	}
	return nil
}

func (w workbookWriter) writeCell(name string, row, col int, cell sheet.Cell) error {
	ref, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}

	switch cell.Kind {
	case sheet.Number:
		err = w.f.SetCellValue(name, ref, cell.Num)
	case sheet.Text:
		err = w.f.SetCellStr(name, ref, cell.Str)
	case sheet.Formula:
		if cell.Str == "" {
			return fmt.Errorf("empty formula in %s", ref)
		}
		err = w.f.SetCellFormula(name, ref, cell.Str)
	}
	if err != nil {
		return err
	}

	if cell.Style == (sheet.Style{}) {
		return nil
	}
	style, err := w.style(cell.Style)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(name, ref, ref, style)
}

// style returns one excelize style per distinct flag combination.
func (w workbookWriter) style(s sheet.Style) (int, error) {
	if id, ok := w.styles[s]; ok {
		return id, nil
	}
	st := &excelize.Style{Protection: &excelize.Protection{Locked: !s.Unlocked}}
	if s.Bold {
		st.Font = &excelize.Font{Bold: true}
	}
	if s.Center {
		st.Alignment = &excelize.Alignment{Horizontal: "center"}
	}
	if s.TwoDecimals {
		st.NumFmt = 2 // 0.00
	}
	id, err := w.f.NewStyle(st)
	if err != nil {
		return 0, err
	}
	w.styles[s] = id
	return id, nil
}

func renderError(name string, err error) error {
	return fmt.Errorf("%w: sheet %s: %v", course.ErrRender, name, err)
}
