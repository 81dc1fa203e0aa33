package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/openswoop/gpasheet/pkg/config"
	"github.com/spf13/cobra"
)

var cfg = config.Default()

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gpasheet",
	Short: "A tool for building grade calculation workbooks from IEU syllabi",
	Long: `Reads the grading scheme and ECTS credits of each course from its
syllabus page and writes an Excel workbook where you fill in your grades
and get each course's letter grade and your cumulative GPA.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // Execute prints it
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

func init() {
	// glog registers its flags on the standard flag set; log to stderr unless told otherwise
	_ = goflag.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML file with courses and settings")
	rootCmd.PersistentFlags().StringVar(&cfg.BaseUrl, "base-url", cfg.BaseUrl, "Syllabus URL prefix, followed by DEPT+NUMBER")
}

// loadConfig layers the config file, .env and the environment under the
// flags the user actually set.
func loadConfig(cmd *cobra.Command, _ []string) error {
	// cobra already parsed the glog flags; tell glog so
	if !goflag.Parsed() {
		_ = goflag.CommandLine.Parse(nil)
	}

	flags := *cfg
	fromFile := config.Default()
	if configFile != "" {
		if err := fromFile.LoadFile(configFile); err != nil {
			return err
		}
	}
	if err := fromFile.LoadEnv(".env"); err != nil {
		return err
	}

	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("base-url", func() { fromFile.BaseUrl = flags.BaseUrl })
	set("parallelism", func() { fromFile.Parallelism = flags.Parallelism })
	set("timeout", func() { fromFile.Timeout = flags.Timeout })
	set("output", func() { fromFile.Output = flags.Output })

	*cfg = *fromFile
	return nil
}
