package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/openswoop/gpasheet/pkg/course"
)

const (
	nameSelector       = "#course_name"
	creditSelector     = "#ects_credit"
	evaluationSelector = "#evaluation_table1"

	// Shown in the weight column of activities that do not count
	noWeight = "-"
)

// Syllabus fills in a course from its syllabus page.
type Syllabus struct {
	Course *course.Course
}

func (s Syllabus) UnmarshalDoc(doc *goquery.Document) error {
	code := s.Course.Code

	name := doc.Find(nameSelector).First()
	if name.Length() == 0 {
		return missing(code, "course name")
	}
	credit := doc.Find(creditSelector).First()
	if credit.Length() == 0 {
		return missing(code, "ECTS credit")
	}
	table := doc.Find(evaluationSelector).First()
	if table.Length() == 0 {
		return missing(code, "evaluation table")
	}

	credits, err := atoi(credit.Text())
	if err != nil || credits < 1 {
		return fmt.Errorf("%w: %s: invalid ECTS credit %q", course.ErrParse, code, strings.TrimSpace(credit.Text()))
	}

	// Select all rows except the header row
	var evaluations []course.Evaluation
	rows := table.Find("tr")
	for i := 1; i < rows.Length(); i++ {
		cells := rows.Eq(i).Find("td")
		if cells.Length() < 3 {
			continue
		}
		weight := cellText(cells.Eq(2))
		if weight == "" || weight == noWeight {
			continue
		}

		metric := cellText(cells.Eq(0))
		percent, err := atoi(weight)
		if err != nil || percent < 0 || percent > 100 {
			return fmt.Errorf("%w: %s: invalid weight %q for %s", course.ErrParse, code, weight, metric)
		}
		if percent == 0 {
			continue
		}
		number, err := atoi(cellText(cells.Eq(1)))
		if err != nil {
			return fmt.Errorf("%w: %s: invalid count %q for %s", course.ErrParse, code, cellText(cells.Eq(1)), metric)
		}

		evaluations = append(evaluations, course.Evaluation{
			Metric: metric,
			Number: number,
			Weight: float64(percent) / 100,
		})
	}

	s.Course.Name = strings.TrimSpace(name.Text())
	s.Course.Credits = credits
	s.Course.Evaluations = evaluations
	return nil
}

func missing(code course.Code, field string) error {
	return fmt.Errorf("%w: %s: syllabus has no %s", course.ErrParse, code, field)
}
