package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is the application version, set via ldflags.
var version = "dev"

// cliOptions holds the flag values for one invocation.
type cliOptions struct {
	unit        string
	clean       bool
	recursive   bool
	table       bool
	excludes    string
	ignoreFile  string
	dereference bool
	progress    bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "filesize PATH...",
		Short: "Calculate file and directory sizes",
		Long: `filesize reports the size of files and directories with unit
auto-detection, forced units, raw byte output, and optional recursive
directory traversal.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyConfig(cmd, opts)
			return parseUnit(opts.unit)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.unit, "unit", "u", "", "Force display in specific unit (b, kb, mb, gb, tb)")
	viper.BindPFlag("unit", cmd.Flags().Lookup("unit"))
	cmd.Flags().BoolVarP(&opts.clean, "clean", "c", false, "Display raw sizes in bytes without formatting")
	viper.BindPFlag("clean", cmd.Flags().Lookup("clean"))
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "Recurse into subdirectories")
	viper.BindPFlag("recursive", cmd.Flags().Lookup("recursive"))
	cmd.Flags().BoolVarP(&opts.table, "table", "t", false, "Render results as a table with a total row")
	viper.BindPFlag("table", cmd.Flags().Lookup("table"))
	cmd.Flags().StringVarP(&opts.excludes, "exclude", "e", "", "Patterns to exclude from the count (comma-separated)")
	viper.BindPFlag("exclude", cmd.Flags().Lookup("exclude"))
	cmd.Flags().StringVar(&opts.ignoreFile, "ignore-file", "", "Gitignore-style file listing entries to exclude")
	viper.BindPFlag("ignore_file", cmd.Flags().Lookup("ignore-file"))
	cmd.Flags().BoolVarP(&opts.dereference, "dereference", "L", true, "Count targets of symlinks that point at regular files")
	viper.BindPFlag("dereference", cmd.Flags().Lookup("dereference"))
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a spinner while aggregating")
	viper.BindPFlag("progress", cmd.Flags().Lookup("progress"))

	// Defined explicitly so --version gets the -v shorthand.
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	return cmd
}

// run aggregates every path argument in order and prints one line per path.
// A failing path is reported on stderr and does not stop the remaining paths.
func run(cmd *cobra.Command, args []string, opts *cliOptions) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	aggOpts := aggregateOptions{
		Recursive:   opts.recursive,
		Dereference: opts.dereference,
		Excludes:    parsePatterns(opts.excludes),
		IgnoreFile:  opts.ignoreFile,
	}

	reports := make([]pathReport, 0, len(args))
	failed := 0
	for _, path := range args {
		result, err := withProgress(opts.progress, path, func() (SizeResult, error) {
			return aggregate(path, aggOpts)
		})
		report := pathReport{Path: path, Result: result, Err: err}
		reports = append(reports, report)

		if err != nil {
			failed++
			fmt.Fprintf(stderr, "%s: Error - %v\n", path, err)
			continue
		}
		if result.Skipped > 0 {
			fmt.Fprintf(stderr, "Warning: %d %s skipped under %s\n",
				result.Skipped, pluralize(result.Skipped, "entry", "entries"), path)
		}
		if !opts.table {
			line, err := renderLine(report, opts.unit, opts.clean)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, line)
		}
	}

	if opts.table {
		if err := renderTable(stdout, reports, opts.unit, opts.clean); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d %s failed", failed, len(args), pluralize(len(args), "path", "paths"))
	}
	return nil
}

// applyConfig lets config-file and environment values fill in flags that were
// not set on the command line. Explicit flags win over both.
func applyConfig(cmd *cobra.Command, opts *cliOptions) {
	flags := cmd.Flags()
	if !flags.Changed("unit") {
		opts.unit = viper.GetString("unit")
	}
	if !flags.Changed("clean") {
		opts.clean = viper.GetBool("clean")
	}
	if !flags.Changed("recursive") {
		opts.recursive = viper.GetBool("recursive")
	}
	if !flags.Changed("table") {
		opts.table = viper.GetBool("table")
	}
	if !flags.Changed("exclude") {
		opts.excludes = viper.GetString("exclude")
	}
	if !flags.Changed("ignore-file") {
		opts.ignoreFile = viper.GetString("ignore_file")
	}
	if !flags.Changed("dereference") {
		opts.dereference = viper.GetBool("dereference")
	}
	if !flags.Changed("progress") {
		opts.progress = viper.GetBool("progress")
	}
}

// initConfig reads in the config file and FILESIZE_* environment variables.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "filesize"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("FILESIZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
		os.Exit(130)
	}()

	cobra.OnInitialize(initConfig)
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
