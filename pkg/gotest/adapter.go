// Package gotest drives specreport from go test -json events.
//
// Each package is a top-level suite. Subtests nest: the parents of
// "TestA/b/c" are opened as suites "TestA" and "b" before "c" is reported.
// go test runs packages in parallel and interleaves their events, so every
// package gets its own Reporter (and suite stack); all of them share the
// sink.
package gotest

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dkoosis/spectrace/pkg/specreport"
	"github.com/dkoosis/spectrace/pkg/testjson"
)

const buildFailedLabel = "build failed"

// Options controls how packages and tests are labeled.
type Options struct {
	// Verbose shows test start lines and skipped tests.
	Verbose bool
	// ShortPackages labels packages by their last path segment.
	ShortPackages bool
	// Humanize turns underscores in subtest names back into spaces.
	Humanize bool
}

// Adapter translates go test -json events into reporter lifecycle calls.
// It is not safe for concurrent use; feed it from a single goroutine.
type Adapter struct {
	sink   specreport.Sink
	style  specreport.Styler
	logger *log.Logger
	opts   Options

	packages map[string]*pkgTrace
	order    []string
	failed   bool
}

// New returns an Adapter. logger receives diagnostics about malformed event
// sequences; nil discards them.
func New(sink specreport.Sink, style specreport.Styler, logger *log.Logger, opts Options) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{
		sink:     sink,
		style:    style,
		logger:   logger,
		opts:     opts,
		packages: make(map[string]*pkgTrace),
	}
}

// Handle processes one event. It has the testjson.ProcessFunc signature.
func (a *Adapter) Handle(e testjson.TestEvent) {
	if e.Action == testjson.ActionFail {
		a.failed = true
	}

	switch e.Action {
	case testjson.ActionStart:
		a.pkg(e.Package)
	case testjson.ActionRun:
		if !e.IsPackageEvent() {
			a.pkg(e.Package).run(e.Test)
		}
	case testjson.ActionPass, testjson.ActionFail, testjson.ActionSkip:
		if e.IsPackageEvent() {
			if e.FailedBuild != "" {
				a.pkg(e.Package).buildFailed()
			}
			a.finish(e.Package)
		} else {
			a.pkg(e.Package).end(e.Test, resultOf(e.Action))
		}
	case testjson.ActionOutput, testjson.ActionPause, testjson.ActionCont, testjson.ActionBench,
		testjson.ActionBuildOutput:
		// Not part of the trace.
	case testjson.ActionBuildFail:
		// The package's own fail event (with FailedBuild) reports it.
		a.failed = true
		a.logger.Debug("build failed", "import_path", e.ImportPath)
	default:
		a.logger.Debug("ignoring unknown action", "action", e.Action, "package", e.Package)
	}
}

// Close finishes packages that never reported a result, e.g. when the stream
// was cut short. Their running tests end with an unknown result.
func (a *Adapter) Close() {
	for _, name := range append([]string(nil), a.order...) {
		a.logger.Debug("package ended without result", "package", name)
		a.finish(name)
	}
}

// Failed reports whether any test or package failed.
func (a *Adapter) Failed() bool {
	return a.failed
}

func (a *Adapter) pkg(name string) *pkgTrace {
	if p, ok := a.packages[name]; ok {
		return p
	}
	label := name
	if a.opts.ShortPackages {
		label = testjson.ShortPackage(name)
	}
	p := &pkgTrace{
		name:     name,
		label:    label,
		reporter: specreport.New(a.sink, a.style, a.opts.Verbose),
		logger:   a.logger,
		humanize: a.opts.Humanize,
		attempts: make(map[string]int),
		running:  make(map[string]bool),
	}
	a.packages[name] = p
	a.order = append(a.order, name)
	return p
}

func (a *Adapter) finish(name string) {
	p, ok := a.packages[name]
	if !ok {
		// A package result with no prior events and no FailedBuild has
		// nothing to close.
		return
	}
	p.close()
	delete(a.packages, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func resultOf(action string) specreport.Result {
	switch action {
	case testjson.ActionPass:
		return specreport.ResultSuccess
	case testjson.ActionFail:
		return specreport.ResultFailed
	case testjson.ActionSkip:
		return specreport.ResultSkipped
	default:
		return specreport.Result(action)
	}
}

// pkgTrace is the suite tree of one package.
type pkgTrace struct {
	name     string
	label    string
	reporter *specreport.Reporter
	logger   *log.Logger
	humanize bool

	opened   bool     // package suite pushed
	open     []string // raw names of open parent tests, outermost first
	attempts map[string]int
	running  map[string]bool
	started  []string // run order, for closing unfinished tests
}

// run reports a test start. Repeated runs of the same test count as retries.
func (p *pkgTrace) run(test string) {
	parents, leaf := testjson.SplitTest(test)
	p.enter(parents)
	p.attempts[test]++
	p.running[test] = true
	p.started = append(p.started, test)
	p.reporter.OnTestStart(specreport.TestEvent{
		Description: p.display(leaf, len(parents) > 0),
		Invocations: p.attempts[test],
	})
}

func (p *pkgTrace) end(test string, result specreport.Result) {
	parents, leaf := testjson.SplitTest(test)
	p.enter(parents)
	delete(p.running, test)
	p.reporter.OnTestEnd(specreport.TestEvent{
		Description: p.display(leaf, len(parents) > 0),
		Invocations: p.attempts[test],
	}, result)
}

// enter makes the open suites match parents: it closes suites that are not
// ancestors of the next test and opens the missing ones.
func (p *pkgTrace) enter(parents []string) {
	if !p.opened {
		p.reporter.OnSuiteStart(p.label)
		p.opened = true
	}

	common := 0
	for common < len(p.open) && common < len(parents) && p.open[common] == parents[common] {
		common++
	}
	for len(p.open) > common {
		p.open = p.open[:len(p.open)-1]
		p.closeSuite()
	}
	for i, name := range parents[common:] {
		p.open = append(p.open, name)
		p.reporter.OnSuiteStart(p.display(name, common+i > 0))
	}
}

// buildFailed reports a package that did not compile as a failed entry
// inside its own suite.
func (p *pkgTrace) buildFailed() {
	p.enter(nil)
	p.reporter.OnTestEnd(specreport.TestEvent{Description: buildFailedLabel, Invocations: 1}, specreport.ResultFailed)
}

// close ends tests still running (innermost first), then the package suite.
func (p *pkgTrace) close() {
	for i := len(p.started) - 1; i >= 0; i-- {
		test := p.started[i]
		if p.running[test] {
			p.end(test, "")
		}
	}
	if !p.opened {
		return
	}
	p.enter(nil)
	p.closeSuite()
	p.opened = false
}

func (p *pkgTrace) closeSuite() {
	if p.reporter.Depth() == 0 {
		p.logger.Debug("suite end without open suite", "package", p.name)
	}
	p.reporter.OnSuiteEnd()
}

// display returns the label for a test name part. Only subtest parts are
// humanized; go test replaces their spaces with underscores.
func (p *pkgTrace) display(part string, subtest bool) string {
	if p.humanize && subtest {
		return strings.ReplaceAll(part, "_", " ")
	}
	return part
}
