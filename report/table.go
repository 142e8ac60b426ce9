// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report writes aggregated benchmark results as tables and
// machine-readable text.
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/divsynth/benchagg/costagg"
	"github.com/divsynth/benchagg/gadgetstat"
	"github.com/divsynth/benchagg/stratname"
	"github.com/divsynth/benchagg/timeline"
)

// OverheadHeader is the header row of the overhead table.
var OverheadHeader = []string{"SamplingRate", "MedianCost", "Difference", "OverheadPerThousand"}

// WriteOverheadTable writes rows as a LaTeX tabular. Cells are written
// verbatim; no LaTeX escaping is applied.
func WriteOverheadTable(w io.Writer, rows []costagg.OverheadRow) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\\begin{tabular}{rrrr}\n")
	fmt.Fprintf(bw, "\\hline\n")
	fmt.Fprintf(bw, "%s & %s & %s & %s \\\\\n", OverheadHeader[0], OverheadHeader[1], OverheadHeader[2], OverheadHeader[3])
	fmt.Fprintf(bw, "\\hline\n")
	for _, r := range rows {
		fmt.Fprintf(bw, "%s & %d & %d & %s \\\\\n", r.SamplingRate, r.MedianCost, r.Difference, r.Overhead)
	}
	fmt.Fprintf(bw, "\\hline\n")
	fmt.Fprintf(bw, "\\end{tabular}\n")
	return bw.Flush()
}

// WriteSummary writes a human-readable table of every group of s.
func WriteSummary(w io.Writer, s *costagg.Summary, names stratname.Table) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s (%s)\tn\tmedian\tmean\tstddev\tmin\tmax\toverhead‰\t\n", s.Kind, s.Kind.Aggregator())
	if s.Baseline != nil {
		fmt.Fprintf(tw, "baseline\t1\t%s\t\t\t\t\t\t\n", Scale(*s.Baseline))
	}
	for _, g := range s.Groups {
		d := g.Dist
		sc := CommonScale([]float64{d.Center, d.Mean, d.Min, d.Max})
		overhead := "~"
		if ov, err := s.Overhead(g); err == nil {
			overhead = strconv.FormatFloat(ov, 'f', 1, 64)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			g.Name.Base+g.Name.Suffix(names), len(d.Values),
			sc.Format(d.Center), sc.Format(d.Mean), Scale(d.StdDev),
			sc.Format(d.Min), sc.Format(d.Max), overhead)
	}
	return tw.Flush()
}

// WriteGadgetSummary writes one line per gadget group summary. The
// shared column is "~" for groups with a single version.
func WriteGadgetSummary(w io.Writer, rows []gadgetstat.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "gadgets\tversions\ttotal\tdistinct\tshared\t\n")
	for _, r := range rows {
		shared := "~"
		if !math.IsNaN(r.Shared) {
			shared = strconv.FormatFloat(r.Shared, 'f', 3, 64)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t\n", r.Group, r.Versions, r.Gadgets, r.Distinct, shared)
	}
	return tw.Flush()
}

// WriteTimelines writes series as CSV with columns strategy, index,
// elapsed_ms and function. The function column names the function
// whose last solution is at that index, and is empty otherwise.
func WriteTimelines(w io.Writer, series []*timeline.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"strategy", "index", "elapsed_ms", "function"}); err != nil {
		return err
	}
	for _, s := range series {
		fn := make(map[int]string, len(s.Markers))
		for j, m := range s.Markers {
			// Later functions win when a function has no
			// samples and shares an index.
			fn[m] = s.Functions[j]
		}
		for i, e := range s.Elapsed {
			rec := []string{s.Display, strconv.Itoa(i), strconv.FormatInt(e, 10), fn[i]}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
