// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package variant maps shader feature flags to compile jobs.
//
// # Core Concepts
//
//   - Mask: a bitmask of feature flags. Only the low MaskBits bits select shader
//     features; anything above ValidMask is renderer state and is dropped before
//     defines or names are derived.
//
//   - Catalog: the immutable table of flags (bit, manifest name, define name),
//     mutually-exclusive groups (member bits plus the define emitted when none is
//     set) and the global build parameters. A catalog is validated once when it
//     is constructed; an invalid catalog never reaches the resolver.
//
//   - Resolver: pure functions over a catalog. Defines turns a mask into an
//     ordered list of -D arguments, Name renders its canonical hex name, and Jobs
//     expands (source, mask, output) entries for one stage into compile jobs.
//
// Define order is part of the contract: per-bit defines in ascending bit order,
// then group defaults in declared group order. Compiler invocations built from
// the same inputs are byte-for-byte identical across runs.
package variant
