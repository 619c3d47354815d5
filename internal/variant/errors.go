// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package variant

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCatalog is returned when a catalog definition is malformed.
	ErrInvalidCatalog = errors.New("invalid variant catalog")
	// ErrUnknownFlag is returned when a mask or name refers to an unregistered flag.
	ErrUnknownFlag = errors.New("unknown feature flag")
	// ErrExclusiveGroup is returned when a mask sets more than one member of
	// a mutually-exclusive group.
	ErrExclusiveGroup = errors.New("conflicting exclusive flags")
)

// UnknownBitError reports a set bit that has no flag registered in the catalog.
type UnknownBitError struct {
	Mask Mask
	Bit  int
}

func (e *UnknownBitError) Error() string {
	return fmt.Sprintf("mask %s sets bit %d which has no registered define", e.Mask.Name(), e.Bit)
}

// Unwrap lets callers match the error against ErrUnknownFlag.
func (e *UnknownBitError) Unwrap() error {
	return ErrUnknownFlag
}

// GroupConflictError reports a mask that sets several members of one group.
type GroupConflictError struct {
	Mask  Mask
	Group string
	Flags []string
}

func (e *GroupConflictError) Error() string {
	return fmt.Sprintf("mask %s sets %s from group %q, at most one is allowed",
		e.Mask.Name(), strings.Join(e.Flags, " and "), e.Group)
}

// Unwrap lets callers match the error against ErrExclusiveGroup.
func (e *GroupConflictError) Unwrap() error {
	return ErrExclusiveGroup
}

func invalidCatalogf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}
