// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metricstat

import (
	"fmt"

	"github.com/divsynth/benchagg/metricfmt"
)

// An Aggregator reduces the measurements of one cost file to a single
// scalar.
type Aggregator int

const (
	// AggSum adds the measurements.
	AggSum Aggregator = iota
	// AggGeoMean takes the geometric mean of the measurements.
	AggGeoMean
)

func (a Aggregator) String() string {
	switch a {
	case AggSum:
		return "sum"
	case AggGeoMean:
		return "geomean"
	}
	return fmt.Sprintf("Aggregator(%d)", int(a))
}

// Apply reduces rec to a scalar.
func (a Aggregator) Apply(rec metricfmt.CostRecord) (float64, error) {
	switch a {
	case AggSum:
		return float64(Sum(rec.Values)), nil
	case AggGeoMean:
		vals := make([]float64, len(rec.Values))
		for i, v := range rec.Values {
			vals[i] = float64(v)
		}
		return GeoMean(vals)
	}
	panic(fmt.Sprintf("bad Aggregator %v", a))
}

// Kind is a kind of cost file found in a version directory.
type Kind int

const (
	KindCost Kind = iota
	KindSpeed
	KindSize
)

// Kinds lists every Kind in report order.
var Kinds = []Kind{KindCost, KindSpeed, KindSize}

// File returns the file name holding measurements of kind k.
func (k Kind) File() string {
	switch k {
	case KindCost:
		return metricfmt.CostFile
	case KindSpeed:
		return metricfmt.SpeedFile
	case KindSize:
		return metricfmt.SizeFile
	}
	panic(fmt.Sprintf("bad Kind %d", int(k)))
}

// Aggregator returns how files of kind k are reduced to a scalar:
// plain cost files are summed, speed and size files use the
// geometric mean.
func (k Kind) Aggregator() Aggregator {
	if k == KindCost {
		return AggSum
	}
	return AggGeoMean
}

func (k Kind) String() string {
	return k.File()
}
