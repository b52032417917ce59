// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package repo

// Patch is an ordered list of column assignments for a partial update.
//
// Services build a patch from the fields the client actually sent (absent
// fields are never touched), so the same UPDATE path serves both full and
// partial edits.
type Patch struct {
	columns []string
	values  []any
}

// Set appends a column assignment to the patch.
func (p *Patch) Set(column string, value any) *Patch {
	p.columns = append(p.columns, column)
	p.values = append(p.values, value)
	return p
}

// SetIfPresent appends the assignment only when the pointer is non-nil.
// This is the bridge from pointer-typed request payloads, where nil marks
// a field the client omitted.
func SetIfPresent[V any](p *Patch, column string, value *V) {
	if value != nil {
		p.Set(column, *value)
	}
}

// IsEmpty reports whether the patch carries no assignments.
func (p *Patch) IsEmpty() bool {
	return len(p.columns) == 0
}

// Len returns the number of assignments in the patch.
func (p *Patch) Len() int {
	return len(p.columns)
}
