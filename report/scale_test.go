// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"math"
	"testing"
)

func TestScale(t *testing.T) {
	test := func(num float64, want, wantPred string) {
		t.Helper()

		got := Scale(num)
		if got != want {
			t.Errorf("for %v, got %s, want %s", num, got, want)
		}

		// Check the value just below a scale boundary.
		pred := math.Nextafter(num, 0)
		got = Scale(pred)
		if got != wantPred {
			t.Errorf("for %v-ε, got %s, want %s", num, got, wantPred)
		}
	}

	test(0, "0.00", "0.00")
	test(1, "1.00", "1.00")
	test(-1, "-1.00", "-1.00")
	test(9995000000000000, "9995T", "9995T")
	test(999500000000, "1.00T", "999G")
	test(99950000, "100M", "99.9M")
	test(999500, "1.00M", "999k")
	test(9995, "10.0k", "9.99k")
	test(999.5, "1.00k", "999")
	test(99.95, "100", "99.9")
	test(9.995, "10.0", "9.99")
	// Below the unit there is no prefix, only more digits.
	test(.5, "0.50", "0.50")
}

func TestCommonScale(t *testing.T) {
	s := CommonScale([]float64{0, 1234, 5678901})
	if got := s.Format(5678901); got != "5678.90k" {
		t.Errorf("got %s, want 5678.90k", got)
	}
	if got := s.Format(1234); got != "1.23k" {
		t.Errorf("got %s, want 1.23k", got)
	}
}
