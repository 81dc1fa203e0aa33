package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-gorp/gorp/v3"
	_ "github.com/mattn/go-sqlite3"
	"github.com/openswoop/gpasheet/pkg/course"
	"github.com/openswoop/gpasheet/pkg/persist"
)

const dateFormat = "2006-01-02"

type PrimaryKey struct {
	ID int64 `db:"id, primarykey, autoincrement"`
}

type CourseRow struct {
	PrimaryKey
	course.Code
	FetchedOn string `db:"fetched_on"`
	Url       string `db:"url"`
	Name      string `db:"name"`
	Credits   int    `db:"credits"`
}

type EvaluationRow struct {
	PrimaryKey
	course.Code
	FetchedOn string  `db:"fetched_on"`
	Position  int     `db:"position"`
	Metric    string  `db:"metric"`
	Number    int     `db:"number"`
	Weight    float64 `db:"weight"`
}

type Sqlite struct {
	db    *sql.DB
	dbmap *gorp.DbMap
}

func NewSqlite(file string) (Sqlite, error) {
	sqlite := Sqlite{}

	// Initialize the database connection
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return sqlite, fmt.Errorf("unable to connect to database: %v", err)
	}
	sqlite.db = db

	// Initialize the database mapping, creating the tables if it's our first run
	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.SqliteDialect{}}
	dbmap.AddTableWithName(CourseRow{}, "courses").
		SetUniqueTogether("department", "number", "fetched_on")
	dbmap.AddTableWithName(EvaluationRow{}, "evaluations").
		SetUniqueTogether("department", "number", "fetched_on", "position")
	if err := dbmap.CreateTablesIfNotExists(); err != nil {
		_ = db.Close()
		return sqlite, fmt.Errorf("unable to create tables: %v", err)
	}
	sqlite.dbmap = dbmap

	return sqlite, nil
}

// SaveCourses stores one row per course and per evaluation. Saving the same
// course twice on the same day keeps the first copy.
func (s Sqlite) SaveCourses(table course.Table, fetched time.Time) error {
	day := fetched.Format(dateFormat)
	var rows []interface{}
	for _, c := range table {
		rows = append(rows, &CourseRow{
			Code:      c.Code,
			FetchedOn: day,
			Url:       c.Url,
			Name:      c.Name,
			Credits:   c.Credits,
		})
		for i, e := range c.Evaluations {
			rows = append(rows, &EvaluationRow{
				Code:      c.Code,
				FetchedOn: day,
				Position:  i,
				Metric:    e.Metric,
				Number:    e.Number,
				Weight:    e.Weight,
			})
		}
	}
	return s.save(rows)
}

func (s Sqlite) save(rows []interface{}) error {
	tx, err := s.dbmap.Begin()
	if err != nil {
		return err
	}
	if err := persist.InsertIgnoringDupes(tx).Insert(rows...); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s Sqlite) Close() error {
	return s.db.Close()
}
