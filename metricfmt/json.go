// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metricfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// A Gadget identifies one gadget by the compact JSON encoding of its
// value in a gadgets file. Two gadgets are the same if and only if
// their encodings are equal.
type Gadget string

// ReadGadgets reads a gadgets file: a JSON array of arbitrary values.
func ReadGadgets(path string) ([]Gadget, error) {
	var raw []json.RawMessage
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	gadgets := make([]Gadget, len(raw))
	var buf bytes.Buffer
	for i, msg := range raw {
		buf.Reset()
		if err := json.Compact(&buf, msg); err != nil {
			return nil, fmt.Errorf("%s: gadget %d: %w", path, i, err)
		}
		gadgets[i] = Gadget(buf.String())
	}
	return gadgets, nil
}

// ReadPercentages reads a gadget occurrence file: a JSON array of
// numbers.
func ReadPercentages(path string) ([]float64, error) {
	var vals []float64
	if err := readJSON(path, &vals); err != nil {
		return nil, err
	}
	return vals, nil
}

// TimingLog maps "<function>--<strategy>" keys to the millisecond
// samples of each generation run, in run order.
type TimingLog map[string][][]int64

// Keys returns the keys of l in sorted order.
func (l TimingLog) Keys() []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReadTimingLog reads a function generation timing log.
func ReadTimingLog(path string) (TimingLog, error) {
	var log TimingLog
	if err := readJSON(path, &log); err != nil {
		return nil, err
	}
	if log == nil {
		return nil, fmt.Errorf("%s: timing log is null", path)
	}
	return log, nil
}

func readJSON(path string, v interface{}) error {
	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
