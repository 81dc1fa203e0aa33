package cmd

import (
	"fmt"

	"github.com/openswoop/gpasheet/pkg/course"
	"github.com/spf13/cobra"
)

// targetsCmd represents the targets command
var targetsCmd = &cobra.Command{
	Use:   `targets ["DEPT NUMBER"...]`,
	Short: "Print the syllabus URL of each course without fetching it",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := course.NewTable(cfg.BaseUrl, append(cfg.Courses, args...))
		if err != nil {
			return err
		}
		for _, c := range table {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", c.Code, c.Code.Department, c.Code.Number, c.Url)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
