// spectrace turns go test -json into a live, breadcrumbed test trace.
//
// Usage:
//
//	go test -json ./... | spectrace
//	go test -json ./... | spectrace --level debug --short
//	go test -json ./... | spectrace --format json --out stdout > trace.ndjson
//
// Every finished test prints one line prefixed with the suites it belongs to:
//
//	calc > TestAdd: adds two numbers [OK]
//
// Failures are logged at error level. At debug level and below, test starts
// and skipped tests are shown too.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkoosis/spectrace/internal/config"
	"github.com/dkoosis/spectrace/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the exit code, so tests can drive it
// without os.Exit.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := ExitSuccess
	root := newRootCmd(stdin, stdout, stderr, &code)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "spectrace: %v\n", err)
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return ExitUsageError
	}
	return code
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, code *int) *cobra.Command {
	var opts traceOptions

	cmd := &cobra.Command{
		Use:   "spectrace",
		Short: "Stream go test -json as a breadcrumbed test trace",
		Long: `spectrace reads go test -json from stdin and writes one line per finished
test, prefixed with the package and parent tests it belongs to.

Examples:
  go test -json ./... | spectrace
  go test -json ./... | spectrace --level debug --short
  go test -json ./... | spectrace --format json --out stdout`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			opts.cli.LevelSet = f.Changed("level")
			opts.cli.FormatSet = f.Changed("format")
			opts.cli.ThemeSet = f.Changed("theme")
			opts.cli.NoColorSet = f.Changed("no-color")
			opts.cli.CISet = f.Changed("ci")
			opts.cli.TimestampsSet = f.Changed("timestamps")
			opts.cli.ShortSet = f.Changed("short")
			opts.cli.HumanizeSet = f.Changed("humanize")

			failed, err := trace(cmd.Context(), opts, stdin, stdout, stderr)
			if err != nil {
				return err
			}
			if failed {
				*code = ExitTestFailure
			}
			return nil
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&opts.cli.ConfigFile, "config", "", "Config file (default: .spectrace.yaml, then the user config dir)")
	f.StringVarP(&opts.cli.Level, "level", "l", config.DefaultLevel, "Log level: trace, debug, info, warn, error")
	f.StringVar(&opts.cli.Format, "format", config.DefaultFormat, "Record format: text, json, logfmt")
	f.StringVar(&opts.cli.Theme, "theme", config.DefaultTheme, "Theme: default, orca, mono")
	f.BoolVar(&opts.cli.NoColor, "no-color", false, "Disable colored output")
	f.BoolVar(&opts.cli.CI, "ci", false, "CI mode (implies --no-color)")
	f.BoolVar(&opts.cli.Timestamps, "timestamps", false, "Prefix records with a timestamp")
	f.BoolVar(&opts.cli.ShortPackages, "short", false, "Label packages by their last path segment")
	f.BoolVar(&opts.cli.Humanize, "humanize", true, "Show underscores in subtest names as spaces")
	f.StringVarP(&opts.out, "out", "o", outStderr, "Trace destination: stderr, stdout")
	f.BoolVar(&opts.debugConfig, "debug-config", false, "Print the resolved configuration and its sources to stderr")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}
