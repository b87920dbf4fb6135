// Package bulk reads and writes the newline-delimited bulk-ingest format:
// an action line followed by the document it applies to.
package bulk

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	actionIndex   = "index"
	lineSeparator = "\n"

	// documents in the source dataset can be long; the default scanner buffer is 64KiB
	maxLineSize = 16 * 1024 * 1024
)

var ErrMalformed = errors.New("malformed bulk data")

type Action struct {
	Index *ActionTarget `json:"index,omitempty"`
}

type ActionTarget struct {
	Index string `json:"_index"`
	ID    string `json:"_id"`
}

type Record struct {
	Index    string
	ID       string
	Document json.RawMessage
}

// Encode emits an index action and the document for every element of docs.
// Ids are the zero-based positions of the documents. The output always ends
// with a newline, so an empty input encodes to a single newline.
func Encode(docs []json.RawMessage, index string) ([]byte, error) {
	lines := make([][]byte, 0, 2*len(docs))

	for i, doc := range docs {
		action, err := json.Marshal(Action{Index: &ActionTarget{Index: index, ID: strconv.Itoa(i)}})
		if err != nil {
			return nil, fmt.Errorf("could not encode action for document %d: %w", i, err)
		}

		var compacted bytes.Buffer
		if err := json.Compact(&compacted, doc); err != nil {
			return nil, fmt.Errorf("could not encode document %d: %w", i, err)
		}

		lines = append(lines, action, compacted.Bytes())
	}

	out := bytes.Join(lines, []byte(lineSeparator))
	return append(out, lineSeparator...), nil
}

// Decode reads action/document pairs. Blank lines are skipped.
func Decode(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []Record
	var pending *ActionTarget
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if pending == nil {
			var action Action
			if err := json.Unmarshal(line, &action); err != nil {
				return nil, &DecodeError{Line: lineNumber, Reason: "invalid action", Err: err}
			}
			if action.Index == nil {
				return nil, &DecodeError{Line: lineNumber, Reason: fmt.Sprintf("expected %q action", actionIndex)}
			}
			pending = action.Index
			continue
		}

		if !json.Valid(line) {
			return nil, &DecodeError{Line: lineNumber, Reason: "invalid document"}
		}
		document := make(json.RawMessage, len(line))
		copy(document, line)

		records = append(records, Record{Index: pending.Index, ID: pending.ID, Document: document})
		pending = nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read bulk data: %w", err)
	}

	if pending != nil {
		return nil, &DecodeError{Line: lineNumber, Reason: "action without document"}
	}

	return records, nil
}

type DecodeError struct {
	Line   int
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformed
}
