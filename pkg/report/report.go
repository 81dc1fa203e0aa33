package report

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/openswoop/gpasheet/pkg/course"
)

type evaluationView struct {
	Course  string  `csv:"course"`
	Name    string  `csv:"name"`
	Credits int     `csv:"credits"`
	Metric  string  `csv:"metric"`
	Number  int     `csv:"number"`
	Weight  float64 `csv:"weight"`
}

// WriteEvaluations dumps one CSV row per evaluation, in table order.
func WriteEvaluations(fileName string, table course.Table) error {
	var rows []evaluationView
	for _, c := range table {
		for _, e := range c.Evaluations {
			rows = append(rows, evaluationView{
				Course:  c.Code.String(),
				Name:    c.Name,
				Credits: c.Credits,
				Metric:  e.Metric,
				Number:  e.Number,
				Weight:  e.Weight,
			})
		}
	}
	return WriteCsv(rows, fileName)
}

func WriteCsv(in interface{}, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(in, file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
