// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stratname

// A Table maps internal strategy codes to display names. Codes not in
// the table display as themselves.
//
// The zero value is an empty table.
type Table struct {
	m map[string]string
}

// DefaultTable is the canonical display-name table.
var DefaultTable = NewTable(map[string]string{
	"diff":  "enumerate",
	"sched": "schedule",
})

// NewTable returns a Table with the given code to display name
// entries.
func NewTable(entries map[string]string) Table {
	m := make(map[string]string, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Table{m}
}

// With returns a copy of t extended by overrides. Entries in
// overrides replace existing entries for the same code.
func (t Table) With(overrides map[string]string) Table {
	m := make(map[string]string, len(t.m)+len(overrides))
	for k, v := range t.m {
		m[k] = v
	}
	for k, v := range overrides {
		m[k] = v
	}
	return Table{m}
}

// Display returns the display name of code.
func (t Table) Display(code string) string {
	if d, ok := t.m[code]; ok {
		return d
	}
	return code
}
