package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Save writes the log as one "kind paramA paramB" record per line.
func (r *Recorder) Save(w io.Writer) error {
	for _, evt := range r.events {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", evt.Kind, evt.A, evt.B); err != nil {
			return err
		}
	}
	return nil
}

// Load replaces the log with the records read from rd. A short, non-numeric
// or out-of-range record ends the log; everything read up to that point is
// kept. Only reader failures are reported as errors.
func (r *Recorder) Load(rd io.Reader) error {
	if r.state == Playing {
		return ErrPlaying
	}

	r.events = nil
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		evt, ok := parseEvent(scanner.Text())
		if !ok {
			break
		}
		r.events = append(r.events, evt)
	}
	return scanner.Err()
}

func parseEvent(line string) (Event, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Event{}, false
	}

	kind, err := strconv.Atoi(fields[0])
	if err != nil || kind < int(LeftUp) || kind > int(Move) {
		return Event{}, false
	}
	a, err := strconv.Atoi(fields[1])
	if err != nil {
		return Event{}, false
	}
	b, err := strconv.Atoi(fields[2])
	if err != nil {
		return Event{}, false
	}

	return Event{Kind: Kind(kind), A: a, B: b}, true
}

// SaveLog writes a complete event log: a header line naming the model file,
// then the recorded events.
func SaveLog(w io.Writer, model string, r *Recorder) error {
	if _, err := fmt.Fprintln(w, model); err != nil {
		return err
	}
	return r.Save(w)
}

// LoadLog reads a complete event log, returning the model filename from the
// header line and replacing the recorder's log with the remaining records.
func LoadLog(rd io.Reader, r *Recorder) (string, error) {
	br := bufio.NewReader(rd)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	model := strings.TrimSpace(header)
	if model == "" {
		return "", errors.New("event log has no model header")
	}

	if err := r.Load(br); err != nil {
		return model, err
	}
	return model, nil
}
