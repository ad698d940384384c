// Package detect sniffs stdin to determine the input format.
package detect

import (
	"bytes"
	"encoding/json"

	"github.com/dkoosis/spectrace/pkg/testjson"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown    Format = iota
	GoTestJSON        // go test -json NDJSON stream
	GoTestText        // plain go test (-v) output, missing the -json flag
)

func (f Format) String() string {
	switch f {
	case GoTestJSON:
		return "go test -json"
	case GoTestText:
		return "go test text"
	default:
		return "unknown"
	}
}

var textMarkers = [][]byte{
	[]byte("=== RUN"),
	[]byte("--- PASS"),
	[]byte("--- FAIL"),
	[]byte("--- SKIP"),
	[]byte("ok  \t"),
	[]byte("FAIL\t"),
	[]byte("?   \t"),
	[]byte("PASS"),
}

// Sniff examines the first bytes of input to determine format.
// Input must contain at least the first line.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	if data[0] == '{' {
		if isGoTestJSON(data) {
			return GoTestJSON
		}
		return Unknown
	}

	for _, m := range textMarkers {
		if bytes.HasPrefix(data, m) {
			return GoTestText
		}
	}
	return Unknown
}

func isGoTestJSON(data []byte) bool {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}

	var event testjson.TestEvent
	if err := json.Unmarshal(firstLine, &event); err != nil {
		return false
	}

	switch event.Action {
	case testjson.ActionStart, testjson.ActionRun, testjson.ActionPause, testjson.ActionCont,
		testjson.ActionPass, testjson.ActionBench, testjson.ActionFail, testjson.ActionOutput,
		testjson.ActionSkip, testjson.ActionBuildOutput, testjson.ActionBuildFail:
		return true
	}
	return false
}
