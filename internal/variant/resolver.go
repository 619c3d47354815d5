// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package variant

// Resolver derives defines, names and compile jobs from masks.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	catalog *Catalog
	params  Params
}

// NewResolver returns a resolver over cat that emits params on every job.
func NewResolver(cat *Catalog, params Params) *Resolver {
	return &Resolver{catalog: cat, params: params}
}

// Catalog returns the catalog the resolver reads from.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Params returns the build parameters emitted on every job.
func (r *Resolver) Params() Params {
	return r.params
}

// ParamDefines returns the build parameter defines in their fixed order.
func (r *Resolver) ParamDefines() []string {
	return r.params.Defines()
}

// Defines returns the mask-derived defines of m: one per set bit in ascending
// bit order, then the default of every group with no member set, in group
// order. Bits above ValidMask are ignored.
func (r *Resolver) Defines(m Mask) ([]string, error) {
	m = m.Valid()
	if err := r.catalog.Check(m); err != nil {
		return nil, err
	}

	var defs []string
	for pos := 0; pos <= LastBit; pos++ {
		if m&(1<<pos) == 0 {
			continue
		}
		defs = append(defs, "-D"+r.catalog.byBit[pos].Define)
	}
	for _, g := range r.catalog.groups {
		if !m.Has(g.Members) {
			defs = append(defs, "-D"+g.Default)
		}
	}
	return defs, nil
}

// Name returns the canonical name of m.
func (r *Resolver) Name(m Mask) string {
	return m.Name()
}

// Flags returns the registered flags set in m, in ascending bit order.
func (r *Resolver) Flags(m Mask) []Flag {
	var out []Flag
	for _, f := range r.catalog.flags {
		if m.Has(f.Bit) {
			out = append(out, f)
		}
	}
	return out
}
