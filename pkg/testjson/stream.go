package testjson

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
)

// ProcessFunc handles one decoded event.
type ProcessFunc func(TestEvent)

const (
	initialLineBuffer = 64 * 1024
	maxLineLength     = 1024 * 1024
)

// Summary counts what a Decoder read. Blank lines are not counted anywhere.
type Summary struct {
	// Events is the number of events delivered.
	Events int
	// InvalidJSON counts lines that are not JSON objects, such as stray
	// compiler or vet output interleaved with the stream.
	InvalidJSON int
	// NoAction counts JSON objects without an Action: valid JSON that is
	// not a test2json record.
	NoAction int
	// FirstSkipped is the 1-based line number of the first skipped line, or
	// 0 when nothing was skipped.
	FirstSkipped int
}

// Skipped returns the number of non-blank lines that produced no event.
func (s Summary) Skipped() int {
	return s.InvalidJSON + s.NoAction
}

// Decoder reads go test -json events one line at a time.
type Decoder struct {
	sc   *bufio.Scanner
	line int
	sum  Summary
}

// NewDecoder returns a Decoder reading from r. Lines longer than 1 MiB fail
// with bufio.ErrTooLong.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initialLineBuffer), maxLineLength)
	return &Decoder{sc: sc}
}

// Next returns the next event, skipping blank and undecodable lines. It
// returns io.EOF at the end of input.
func (d *Decoder) Next() (TestEvent, error) {
	for d.sc.Scan() {
		d.line++
		line := bytes.TrimSpace(d.sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var event TestEvent
		if err := json.Unmarshal(line, &event); err != nil {
			d.skip(&d.sum.InvalidJSON)
			continue
		}
		if event.Action == "" {
			d.skip(&d.sum.NoAction)
			continue
		}
		d.sum.Events++
		return event, nil
	}
	if err := d.sc.Err(); err != nil {
		return TestEvent{}, err
	}
	return TestEvent{}, io.EOF
}

// Summary returns the counts so far.
func (d *Decoder) Summary() Summary {
	return d.sum
}

func (d *Decoder) skip(counter *int) {
	*counter++
	if d.sum.FirstSkipped == 0 {
		d.sum.FirstSkipped = d.line
	}
}

// decoded is one step of the decoding goroutine. sum is the Decoder's
// summary after the step.
type decoded struct {
	event TestEvent
	sum   Summary
	err   error
	eof   bool
}

// Stream decodes events from r and calls fn for each, on the calling
// goroutine, until EOF or ctx is done. The returned Summary covers every
// line decoded before Stream returned.
//
// Reads happen on a background goroutine. On cancel, Stream closes r if it
// is an io.Closer; otherwise the caller must close the underlying source to
// release that goroutine.
func Stream(ctx context.Context, r io.Reader, fn ProcessFunc) (Summary, error) {
	dec := NewDecoder(r)
	steps := make(chan decoded)

	go func() {
		defer close(steps)
		for {
			event, err := dec.Next()
			step := decoded{event: event, sum: dec.Summary()}
			switch {
			case errors.Is(err, io.EOF):
				step.eof = true
			case err != nil:
				step.err = err
			}
			select {
			case steps <- step:
			case <-ctx.Done():
				return
			}
			if step.eof || step.err != nil {
				return
			}
		}
	}()

	var sum Summary
	for {
		select {
		case <-ctx.Done():
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
			return sum, ctx.Err()
		case step, ok := <-steps:
			if !ok {
				return sum, nil
			}
			sum = step.sum
			if step.err != nil {
				return sum, step.err
			}
			if step.eof {
				return sum, nil
			}
			fn(step.event)
		}
	}
}
