// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"math"
	"strconv"
)

// A Scaler formats numbers with a shared SI prefix.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string
}

// Format formats val with s's precision and prefix.
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

type siFactor struct {
	factor float64
	prefix string
	// Thresholds at which the printed value rounds up to 100,
	// 10.0, and 1.00 of this factor.
	t100, t10, t1 float64
}

// Costs are counts, so prefixes stop at the unit.
var siFactors = mkSIFactors()

func mkSIFactors() []siFactor {
	// Thresholds are parsed from their printed form so they match
	// how AppendFloat rounds.
	var factors []siFactor
	exp := 12
	for _, p := range []string{"T", "G", "M", "k", ""} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("99.95e%d", exp), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("9.995e%d", exp), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf(".9995e%d", exp), 64)
		factors = append(factors, siFactor{math.Pow(10, float64(exp)), p, t100, t10, t1})
		exp -= 3
	}
	return factors
}

// Scale formats val using at least three significant digits and an SI
// prefix.
func Scale(val float64) string {
	return CommonScale([]float64{val}).Format(val)
}

// CommonScale returns a Scaler that shows at least three significant
// digits of the non-zero value in vals closest to zero.
func CommonScale(vals []float64) Scaler {
	var least float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (least == 0 || v < least) {
			least = v
		}
	}
	if least == 0 {
		return Scaler{2, 1, ""}
	}
	for i, f := range siFactors {
		switch {
		case least >= f.t100:
			return Scaler{0, f.factor, f.prefix}
		case least >= f.t10:
			return Scaler{1, f.factor, f.prefix}
		case least >= f.t1 || i == len(siFactors)-1:
			return Scaler{2, f.factor, f.prefix}
		}
	}
	panic("not reachable")
}
