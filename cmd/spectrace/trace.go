package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"golang.org/x/term"

	"github.com/dkoosis/spectrace/internal/config"
	"github.com/dkoosis/spectrace/internal/detect"
	"github.com/dkoosis/spectrace/pkg/design"
	"github.com/dkoosis/spectrace/pkg/gotest"
	"github.com/dkoosis/spectrace/pkg/logsink"
	"github.com/dkoosis/spectrace/pkg/testjson"
)

const (
	outStderr = "stderr"
	outStdout = "stdout"

	readerSize = 64 * 1024
)

type traceOptions struct {
	cli         config.CliFlags
	out         string
	debugConfig bool
}

// trace streams stdin through the adapter. It reports whether any test or
// package failed.
func trace(ctx context.Context, opts traceOptions, stdin io.Reader, stdout, stderr io.Writer) (bool, error) {
	cfg, err := config.Resolve(opts.cli)
	if err != nil {
		return false, &exitError{code: ExitConfigError, err: err}
	}

	var w io.Writer
	switch opts.out {
	case outStderr, "":
		w = stderr
	case outStdout:
		w = stdout
	default:
		return false, usageErrorf("unknown --out %q (expected stderr, stdout)", opts.out)
	}

	if opts.debugConfig {
		if err := printConfig(stderr, cfg); err != nil {
			return false, &exitError{code: ExitConfigError, err: err}
		}
	}

	color := !cfg.NoColor && isTTYWriter(w)
	sink := logsink.New(w, logsink.Options{
		Level:      cfg.Level,
		Format:     cfg.Format,
		Color:      color,
		Timestamps: cfg.Timestamps,
	})
	logger := sink.Logger()
	logger.Debug("configuration resolved",
		"level", logsink.LevelName(cfg.Level),
		"format", cfg.Format,
		"theme", cfg.Theme.Name,
		"color", color,
		"file", cfg.ConfigPath)

	br := bufio.NewReaderSize(stdin, readerSize)
	first := peekLine(br)
	if len(bytes.TrimSpace(first)) == 0 {
		return false, usageErrorf("no input on stdin")
	}
	switch format := detect.Sniff(first); format {
	case detect.GoTestJSON:
	case detect.GoTestText:
		return false, usageErrorf("input is plain go test output; run go test with -json")
	default:
		return false, usageErrorf("unrecognized input format %s (expected go test -json)", format)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Stream cannot close a *bufio.Reader; close the source so its scanner
	// goroutine unblocks on cancel.
	if c, ok := stdin.(io.Closer); ok {
		stopClose := context.AfterFunc(ctx, func() { _ = c.Close() })
		defer stopClose()
	}

	adapter := gotest.New(sink, design.NewPalette(w, cfg.Theme, color), logger, gotest.Options{
		Verbose:       sink.Verbose(),
		ShortPackages: cfg.ShortPackages,
		Humanize:      cfg.Humanize,
	})

	sum, err := testjson.Stream(ctx, br, adapter.Handle)
	adapter.Close()
	if n := sum.Skipped(); n > 0 {
		logger.Warn("skipped malformed lines",
			"count", n,
			"invalid_json", sum.InvalidJSON,
			"no_action", sum.NoAction,
			"first_line", sum.FirstSkipped)
	}
	logger.Debug("stream finished", "events", sum.Events)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return adapter.Failed(), usageErrorf("interrupted")
		}
		return adapter.Failed(), usageErrorf("reading stdin: %w", err)
	}
	return adapter.Failed(), nil
}

// peekLine returns the buffered input up to the first non-blank line without
// consuming it. It returns early on EOF or a full buffer, so a live stream is
// detected as soon as its first event arrives.
func peekLine(br *bufio.Reader) []byte {
	for n := 1; ; n++ {
		b, err := br.Peek(n)
		if err != nil || n == br.Size() {
			return b
		}
		if b[n-1] == '\n' && len(bytes.TrimSpace(b)) > 0 {
			return b
		}
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printConfig(w io.Writer, cfg *config.Resolved) error {
	out, err := cfg.Effective().Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	file := cfg.ConfigPath
	if file == "" {
		file = "(none)"
	}
	fmt.Fprintf(w, "# config file: %s\n", file)
	_, _ = w.Write(out)

	keys := make([]string, 0, len(cfg.Sources))
	for k := range cfg.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "# %s: %s\n", k, cfg.Sources[k])
	}
	return nil
}
