package course

import (
	"fmt"
	"strings"
)

const SyllabusUrl = "https://ce.ieu.edu.tr/en/syllabus/type/read/id/"

// Code is a course identifier such as "CE 302", split into its
// department and number.
type Code struct {
	Department string `db:"department" csv:"department"`
	Number     string `db:"number" csv:"number"`
}

func (c Code) String() string {
	return c.Department + " " + c.Number
}

// ParseCode splits "DEPT NUMBER" into a Code. Anything other than exactly
// two whitespace separated tokens is a configuration error.
func ParseCode(s string) (Code, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Code{}, fmt.Errorf("%w: %q is not a course code like \"CE 302\"", ErrConfiguration, s)
	}
	return Code{Department: fields[0], Number: fields[1]}, nil
}

type Evaluation struct {
	Metric string
	Number int
	Weight float64
	Grade  *float64
}

type Course struct {
	Code        Code
	Url         string
	Name        string
	Credits     int
	Evaluations []Evaluation
}

func New(baseUrl string, code Code) Course {
	return Course{
		Code: code,
		Url:  baseUrl + code.Department + "+" + code.Number,
	}
}

// Table is the ordered list of courses. Every later stage relies on this
// order, so it is never sorted or keyed by anything else.
type Table []Course

func NewTable(baseUrl string, codes []string) (Table, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no courses given", ErrConfiguration)
	}
	table := make(Table, 0, len(codes))
	for _, s := range codes {
		code, err := ParseCode(s)
		if err != nil {
			return nil, err
		}
		table = append(table, New(baseUrl, code))
	}
	return table, nil
}

func (t Table) Urls() []string {
	urls := make([]string, len(t))
	for i, c := range t {
		urls[i] = c.Url
	}
	return urls
}
