// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package variant

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// Flag is a single shader feature toggled by one mask bit.
type Flag struct {
	// Bit is the flag's single-bit mask value.
	Bit Mask
	// Name is the short identifier used in manifests, e.g. "texcoord0".
	Name string
	// Define is the preprocessor macro enabled by the flag, e.g. "HAS_TEXCOORD0".
	Define string
}

// Group is a set of mutually-exclusive flags. When none of its members is set
// the resolver emits Default instead.
type Group struct {
	Name    string
	Members Mask
	Default string
}

// Params are build-wide limits emitted as defines on every variant.
type Params struct {
	Viewports int `yaml:"viewports"`
	Instances int `yaml:"instances"`
	Joints    int `yaml:"joints"`
	Lights    int `yaml:"lights"`
}

// Defines returns the parameter defines in their fixed order.
func (p Params) Defines() []string {
	return []string{
		fmt.Sprintf("-DVPORT_N=%d", p.Viewports),
		fmt.Sprintf("-DINST_N=%d", p.Instances),
		fmt.Sprintf("-DJOINT_N=%d", p.Joints),
		fmt.Sprintf("-DLIGHT_N=%d", p.Lights),
	}
}

// Validate checks that every limit is positive.
func (p Params) Validate() error {
	for _, v := range []struct {
		name  string
		value int
	}{
		{"viewports", p.Viewports},
		{"instances", p.Instances},
		{"joints", p.Joints},
		{"lights", p.Lights},
	} {
		if v.value <= 0 {
			return fmt.Errorf("param %s must be positive, got %d", v.name, v.value)
		}
	}
	return nil
}

// Catalog is the immutable table of flags, groups and build parameters.
// The zero value is not usable; build one with NewCatalog.
type Catalog struct {
	byBit  [MaskBits]*Flag
	byName map[string]*Flag
	flags  []Flag
	groups []Group
	params Params
}

// NewCatalog validates the definitions and returns a catalog over copies of them.
func NewCatalog(flags []Flag, groups []Group, params Params) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]*Flag, len(flags)),
		flags:  slices.Clone(flags),
		groups: slices.Clone(groups),
		params: params,
	}
	slices.SortFunc(c.flags, func(a, b Flag) int { return int(a.Bit) - int(b.Bit) })

	defines := make(map[string]struct{}, len(flags))
	for i := range c.flags {
		f := &c.flags[i]
		if !f.Bit.single() {
			return nil, invalidCatalogf("flag %q: bit %#x is not a single bit", f.Define, uint32(f.Bit))
		}
		if f.Bit&^ValidMask != 0 {
			return nil, invalidCatalogf("flag %q: bit %d is above the last valid bit %d", f.Define, f.Bit.position(), LastBit)
		}
		pos := f.Bit.position()
		if prev := c.byBit[pos]; prev != nil {
			return nil, invalidCatalogf("flags %q and %q share bit %d", prev.Define, f.Define, pos)
		}
		if strings.TrimSpace(f.Define) == "" {
			return nil, invalidCatalogf("flag on bit %d has no define name", pos)
		}
		if _, dup := defines[f.Define]; dup {
			return nil, invalidCatalogf("define %q registered twice", f.Define)
		}
		if strings.TrimSpace(f.Name) == "" {
			return nil, invalidCatalogf("flag %q has no name", f.Define)
		}
		if _, dup := c.byName[f.Name]; dup {
			return nil, invalidCatalogf("flag name %q registered twice", f.Name)
		}
		defines[f.Define] = struct{}{}
		c.byBit[pos] = f
		c.byName[f.Name] = f
	}

	var grouped Mask
	for _, g := range c.groups {
		if g.Members == 0 {
			return nil, invalidCatalogf("group %q has no members", g.Name)
		}
		if unknown := c.unregistered(g.Members); unknown != 0 {
			return nil, invalidCatalogf("group %q references unregistered bits %#x", g.Name, uint32(unknown))
		}
		if shared := grouped & g.Members; shared != 0 {
			return nil, invalidCatalogf("group %q shares bits %#x with another group", g.Name, uint32(shared))
		}
		if strings.TrimSpace(g.Default) == "" {
			return nil, invalidCatalogf("group %q has no default define", g.Name)
		}
		if _, clash := defines[g.Default]; clash {
			return nil, invalidCatalogf("group %q default %q collides with a flag define", g.Name, g.Default)
		}
		defines[g.Default] = struct{}{}
		grouped |= g.Members
	}

	if err := params.Validate(); err != nil {
		return nil, invalidCatalogf("%v", err)
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on an invalid definition.
func MustCatalog(flags []Flag, groups []Group, params Params) *Catalog {
	c, err := NewCatalog(flags, groups, params)
	if err != nil {
		panic(err)
	}
	return c
}

// Flags returns the registered flags in ascending bit order.
func (c *Catalog) Flags() []Flag {
	return slices.Clone(c.flags)
}

// Groups returns the mutually-exclusive groups in declared order.
func (c *Catalog) Groups() []Group {
	return slices.Clone(c.groups)
}

// Params returns the catalog's default build parameters.
func (c *Catalog) Params() Params {
	return c.params
}

// Registered returns the union of all flag bits.
func (c *Catalog) Registered() Mask {
	var m Mask
	for _, f := range c.flags {
		m |= f.Bit
	}
	return m
}

// Lookup returns the flag registered at bit position pos.
func (c *Catalog) Lookup(pos int) (Flag, bool) {
	if pos < 0 || pos > LastBit || c.byBit[pos] == nil {
		return Flag{}, false
	}
	return *c.byBit[pos], true
}

// FlagByName returns the flag with the given manifest name.
func (c *Catalog) FlagByName(name string) (Flag, bool) {
	f, ok := c.byName[name]
	if !ok {
		return Flag{}, false
	}
	return *f, true
}

// MaskOf combines the named flags into a mask.
func (c *Catalog) MaskOf(names ...string) (Mask, error) {
	var m Mask
	for _, name := range names {
		f, ok := c.byName[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
		}
		m |= f.Bit
	}
	return m, nil
}

// Check reports the first valid bit of m that has no registered flag, then
// the first group with more than one member set.
func (c *Catalog) Check(m Mask) error {
	m = m.Valid()
	if unknown := c.unregistered(m); unknown != 0 {
		return &UnknownBitError{Mask: m, Bit: (unknown & -unknown).position()}
	}
	for _, g := range c.groups {
		set := m & g.Members
		if bits.OnesCount32(uint32(set)) < 2 {
			continue
		}
		var names []string
		for pos := 0; pos <= LastBit; pos++ {
			if set&(1<<pos) != 0 {
				names = append(names, c.byBit[pos].Name)
			}
		}
		return &GroupConflictError{Mask: m, Group: g.Name, Flags: names}
	}
	return nil
}

func (c *Catalog) unregistered(m Mask) Mask {
	return m &^ c.Registered()
}
