// Package specreport renders a nested trace of test execution from a test
// runner's lifecycle events.
//
// The runner calls OnSuiteStart, OnSuiteEnd, OnTestStart and OnTestEnd as
// execution proceeds. The Reporter keeps a stack of open suites, derives a
// breadcrumb prefix from it, and forwards one formatted line per test event
// to a Sink:
//
//	A > B: does X [Retry #1] [OK]
//
// A Reporter is not safe for concurrent use and assumes a single logical
// suite tree. Runners that execute several trees at once need one Reporter
// per tree; they can share a Sink, which is responsible for serializing
// writes.
//
// The Reporter never returns errors. A missing invocation count renders as a
// first attempt and an unrecognized result renders as UNKNOWN. A suite end
// without a matching start is ignored.
package specreport
