package database

import (
	"io"
	"time"

	"github.com/openswoop/gpasheet/pkg/course"
)

// Database archives the courses behind every generated workbook.
type Database interface {
	io.Closer
	SaveCourses(table course.Table, fetched time.Time) error
}
