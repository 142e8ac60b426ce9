// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metricfmt reads the metric files written by the synthesis
// benchmark pipeline.
//
// Cost files ("cost", "cost_speed", "cost_size") hold one "label:value"
// measurement per line, where value is a non-negative integer. Gadget
// files ("gadgets") hold a JSON array of gadget identifiers, and
// occurrence files ("gadget_occurences") a JSON array of percentages.
// The timing log ("function_generation_times") is a JSON object from
// "<function>--<strategy>" to an array of runs, each an array of
// millisecond samples.
package metricfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// A Reader reads a cost file one measurement at a time.
//
// Its API is modeled on bufio.Scanner. The zero value of the Reader
// is not usable; construct one with NewReader or call Reset.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	lineNum  int
	err      error // current I/O error

	entry    Entry
	entryErr error
}

// Entry is a single measurement line of a cost file.
type Entry struct {
	Label string
	Value int64
}

// SyntaxError reports a cost file line that is not of the form
// "label:integer".
type SyntaxError struct {
	FileName string
	Line     int
	Text     string
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", s.FileName, s.Line, s.Msg, s.Text)
}

var noEntry = errors.New("Reader.Scan has not been called")

// NewReader constructs a reader for the cost file read from r.
// fileName is used in error messages.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.lineNum = 0
	r.err = nil
	r.entry = Entry{}
	r.entryErr = noEntry
}

// Scan advances the reader to the next measurement line and returns
// true if a line was read. Blank lines are skipped. If an I/O error
// occurs, or this reaches the end of the file, it returns false and
// the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.s.Scan() {
		r.lineNum++
		line := bytes.TrimSpace(r.s.Bytes())
		if len(line) == 0 {
			continue
		}
		r.entryErr = r.parseLine(line)
		return true
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.lineNum, err)
		return false
	}
	r.err = nil
	return false
}

func (r *Reader) parseLine(line []byte) error {
	i := bytes.IndexByte(line, ':')
	if i < 0 {
		return r.syntaxError(line, "missing ':' separator")
	}
	label := bytes.TrimSpace(line[:i])
	if len(label) == 0 {
		return r.syntaxError(line, "missing label")
	}
	num := bytes.TrimSpace(line[i+1:])
	if len(num) == 0 {
		return r.syntaxError(line, "missing value")
	}
	val, err := strconv.ParseInt(string(num), 10, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			return r.syntaxError(line, "parsing value: "+ne.Err.Error())
		}
		return r.syntaxError(line, err.Error())
	}
	if val < 0 {
		return r.syntaxError(line, "negative value")
	}
	r.entry = Entry{Label: string(label), Value: val}
	return nil
}

func (r *Reader) syntaxError(line []byte, msg string) error {
	return &SyntaxError{r.fileName, r.lineNum, string(line), msg}
}

// Entry returns the last measurement read, or a *SyntaxError if the
// line was malformed.
//
// Syntax errors are non-fatal to the Reader, so the caller can
// continue to call Scan.
func (r *Reader) Entry() (Entry, error) {
	if r.entryErr != nil {
		return Entry{}, r.entryErr
	}
	return r.entry, nil
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
