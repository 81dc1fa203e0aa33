package cmd

import (
	"time"

	"github.com/golang/glog"
	"github.com/openswoop/gpasheet/pkg/course"
	"github.com/openswoop/gpasheet/pkg/database"
	"github.com/openswoop/gpasheet/pkg/report"
	"github.com/openswoop/gpasheet/pkg/scrape"
	"github.com/openswoop/gpasheet/pkg/sheet"
	"github.com/spf13/cobra"
)

var (
	csvFile     string
	archiveFile string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   `build ["DEPT NUMBER"...]`,
	Short: "Scrape syllabi into a grade calculation workbook",
	Long: `Given course codes such as "CE 302" (quoted, one per argument) or a
--config file listing them, this command fetches every syllabus and
writes a workbook with one block per course and a hidden sheet that
turns the weighted averages into letter grades and a GPA. Either the
whole workbook is written or nothing is.`,
	Example: `  gpasheet build "CE 302" "MATH 250" -o grades.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Courses = append(cfg.Courses, args...)
		if err := cfg.Validate(); err != nil {
			return err
		}
		table, err := course.NewTable(cfg.BaseUrl, cfg.Courses)
		if err != nil {
			return err
		}

		// Scrape the data
		c, err := scrape.NewCollector(cfg.Parallelism, cfg.Timeout)
		if err != nil {
			return err
		}
		table, err = scrape.GetCourses(c, table)
		if err != nil {
			return err
		}

		// Write the workbook
		if err := report.WriteWorkbook(sheet.Build(table), cfg.Output); err != nil {
			return err
		}
		glog.Infof("Wrote %d courses to %s", len(table), cfg.Output)

		if csvFile != "" {
			if err := report.WriteEvaluations(csvFile, table); err != nil {
				return err
			}
			glog.Infof("Wrote evaluations to %s", csvFile)
		}

		if archiveFile != "" {
			sqlite, err := database.NewSqlite(archiveFile)
			if err != nil {
				return err
			}
			defer sqlite.Close()
			if err := sqlite.SaveCourses(table, time.Now()); err != nil {
				return err
			}
			glog.Infof("Saved to database %s", archiveFile)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Workbook to write")
	buildCmd.Flags().IntVar(&cfg.Parallelism, "parallelism", cfg.Parallelism, "Maximum syllabus requests in flight")
	buildCmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Timeout of a single request")
	buildCmd.Flags().StringVar(&csvFile, "csv", "", "Also write the scraped evaluations to this CSV file")
	buildCmd.Flags().StringVar(&archiveFile, "archive", "", "Also insert the scraped courses into this SQLite database")
}
