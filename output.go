package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/olekukonko/tablewriter"
)

// renderLine produces the per-path output line: the bare byte count in clean
// mode, otherwise "<path>: <value> <unit> (<n> file[s])".
func renderLine(report pathReport, unit string, clean bool) (string, error) {
	formatted, err := formatSize(report.Result.TotalBytes, unit, clean)
	if err != nil {
		return "", err
	}
	if clean {
		return formatted, nil
	}
	return fmt.Sprintf("%s: %s (%d %s)", report.Path, formatted,
		report.Result.FileCount, pluralize(report.Result.FileCount, "file", "files")), nil
}

// renderTable writes all successful results as a table with a total row.
// Failed paths were already reported on stderr and are left out.
func renderTable(w io.Writer, reports []pathReport, unit string, clean bool) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Size", "Files"})
	table.SetAutoWrapText(false)

	var totalBytes uint64
	var totalFiles int
	for _, report := range reports {
		if report.Err != nil {
			continue
		}
		formatted, err := formatSize(report.Result.TotalBytes, unit, clean)
		if err != nil {
			return err
		}
		table.Append([]string{report.Path, formatted, strconv.Itoa(report.Result.FileCount)})
		totalBytes += report.Result.TotalBytes
		totalFiles += report.Result.FileCount
	}

	totalFormatted, err := formatSize(totalBytes, unit, clean)
	if err != nil {
		return err
	}
	table.SetFooter([]string{"Total", totalFormatted, strconv.Itoa(totalFiles)})
	table.Render()
	return nil
}

// withProgress runs fn, showing a spinner on stderr while it is in flight
// when enabled.
func withProgress(enabled bool, path string, fn func() (SizeResult, error)) (SizeResult, error) {
	if !enabled {
		return fn()
	}
	spin := spinner.New(spinner.CharSets[35], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	spin.Suffix = " " + path
	spin.Start()
	defer spin.Stop()
	return fn()
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
