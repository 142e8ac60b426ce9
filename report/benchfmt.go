// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/divsynth/benchagg/costagg"
	"github.com/divsynth/benchagg/stratname"
)

// A Result is one line of Go benchmark format output.
type Result struct {
	// Config is the file-level key/value configuration in effect
	// for this result.
	Config []Config

	// Name is the full benchmark name, without the "Benchmark"
	// prefix.
	Name string

	Iters  int
	Values []Value
}

// Config is a single key/value configuration pair.
type Config struct {
	Key, Value string
}

// Value is a single measurement and its unit.
type Value struct {
	Value float64
	Unit  string
}

// A Writer writes results in the Go benchmark format, so they can be
// compared with tools such as benchstat.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first  bool
	config map[string]string
	order  []string
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true, config: make(map[string]string)}
}

// Write writes res. If res's configuration differs from the
// configuration last written, it first emits the changed keys.
func (w *Writer) Write(res *Result) error {
	if w.configChanged(res) {
		w.writeConfig(res)
	}

	fmt.Fprintf(&w.buf, "Benchmark%s %d", res.Name, res.Iters)
	for _, val := range res.Values {
		fmt.Fprintf(&w.buf, " %v %s", val.Value, val.Unit)
	}
	w.buf.WriteByte('\n')
	w.first = false

	// Writes to the buffer can't fail.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) configChanged(res *Result) bool {
	if len(w.config) != len(res.Config) {
		return true
	}
	for _, cfg := range res.Config {
		if val, ok := w.config[cfg.Key]; !ok || val != cfg.Value {
			return true
		}
	}
	return false
}

func (w *Writer) writeConfig(res *Result) {
	if !w.first {
		// Configuration blocks after results get an extra blank.
		w.buf.WriteByte('\n')
	}

	want := make(map[string]string, len(res.Config))
	for _, cfg := range res.Config {
		want[cfg.Key] = cfg.Value
	}

	// Walk known keys to find changes and deletions.
	kept := w.order[:0]
	for _, key := range w.order {
		val, ok := want[key]
		if !ok {
			fmt.Fprintf(&w.buf, "%s:\n", key)
			delete(w.config, key)
			continue
		}
		kept = append(kept, key)
		if w.config[key] != val {
			fmt.Fprintf(&w.buf, "%s: %s\n", key, val)
			w.config[key] = val
		}
	}
	w.order = kept

	// New keys, in res order.
	for _, cfg := range res.Config {
		if _, ok := w.config[cfg.Key]; ok {
			continue
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", cfg.Key, cfg.Value)
		w.config[cfg.Key] = cfg.Value
		w.order = append(w.order, cfg.Key)
	}

	w.buf.WriteByte('\n')
}

// WriteBenchfmt writes every aggregated version of s, and the
// baseline if present, as Go benchmark results. Each strategy group
// forms one configuration block.
func WriteBenchfmt(w io.Writer, s *costagg.Summary, names stratname.Table) error {
	bw := NewWriter(w)
	unit := s.Kind.File()
	aggr := s.Kind.Aggregator().String()

	if s.Baseline != nil {
		res := &Result{
			Config: []Config{{"kind", unit}, {"aggregate", aggr}, {"group", "baseline"}},
			Name:   "Program/strategy=baseline",
			Iters:  1,
			Values: []Value{{*s.Baseline, unit}},
		}
		if err := bw.Write(res); err != nil {
			return err
		}
	}
	for _, g := range s.Groups {
		cfg := []Config{{"kind", unit}, {"aggregate", aggr}, {"group", g.Name.Dir}}
		for i, v := range g.Versions {
			res := &Result{
				Config: cfg,
				Name:   fmt.Sprintf("Program/strategy=%s/rate=%s/version=%s", names.Display(g.Name.Strategy), g.Name.Rate, v),
				Iters:  1,
				Values: []Value{{g.Values[i], unit}},
			}
			if err := bw.Write(res); err != nil {
				return err
			}
		}
	}
	return nil
}
