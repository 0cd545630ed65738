package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"pydoclint/internal/ui/report"
)

const toolName = "pydoclint"

type cliOptions struct {
	configPath         string
	convention         string
	selectCodes        string
	ignoreCodes        string
	addSelect          string
	addIgnore          string
	match              string
	matchDir           string
	ignoreDecorators   string
	propertyDecorators string
	ignoreInlineNoqa   bool
	format             string
	output             string
	watch              bool
	ui                 bool
	history            bool
	historyDB          string
	metricsAddr        string
	workers            int
	verbose            bool
	version            bool
	listCodes          bool

	// set holds the names of the flags given on the command line.
	set  map[string]bool
	args []string
}

func parseOptions(args []string, errOut io.Writer) (cliOptions, error) {
	opts := cliOptions{set: make(map[string]bool)}
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [flags] [paths...]\n\n", toolName)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "Path to a configuration file (default: discovered from the first path)")
	fs.StringVar(&opts.convention, "convention", "", "Convention to check against: pep257, numpy, google, all or none")
	fs.StringVar(&opts.selectCodes, "select", "", "Comma separated codes to check, replacing the convention")
	fs.StringVar(&opts.ignoreCodes, "ignore", "", "Comma separated codes to skip; every other code is checked")
	fs.StringVar(&opts.addSelect, "add-select", "", "Comma separated codes added to the active set")
	fs.StringVar(&opts.addIgnore, "add-ignore", "", "Comma separated codes removed from the active set")
	fs.StringVar(&opts.match, "match", "", "Regular expression a file name must fully match")
	fs.StringVar(&opts.matchDir, "match-dir", "", "Regular expression a directory name must fully match to be searched")
	fs.StringVar(&opts.ignoreDecorators, "ignore-decorators", "", "Skip definitions decorated with a name matching this expression")
	fs.StringVar(&opts.propertyDecorators, "property-decorators", "", "Comma separated decorators that mark a property")
	fs.BoolVar(&opts.ignoreInlineNoqa, "ignore-inline-noqa", false, "Do not honor inline '# noqa' comments")
	fs.StringVar(&opts.format, "format", report.FormatText, "Report format: "+strings.Join(report.Formats(), ", "))
	fs.StringVar(&opts.output, "output", "", "Write the report to this file instead of stdout")
	fs.BoolVar(&opts.watch, "watch", false, "Re-check changed files until interrupted")
	fs.BoolVar(&opts.ui, "ui", false, "Browse violations in a terminal UI (implies -watch)")
	fs.BoolVar(&opts.history, "history", false, "Print the per-code trend of the recorded runs and exit")
	fs.StringVar(&opts.historyDB, "history-db", "", "Record runs in this sqlite database")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics and /health on this address")
	fs.IntVar(&opts.workers, "workers", 0, "Number of files checked in parallel (default: GOMAXPROCS)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")
	fs.BoolVar(&opts.listCodes, "list-codes", false, "List every error code and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	opts.args = fs.Args()
	return opts, nil
}

func (o cliOptions) isSet(name string) bool {
	return o.set[name]
}

// paths returns the positional paths, defaulting to the working directory.
func (o cliOptions) paths() []string {
	if len(o.args) == 0 {
		return []string{"."}
	}
	return o.args
}
