// Package config defines the format-agnostic build manifest: which compiler to
// run, where sources and artifacts live, the build parameters, and the
// per-stage list of variants to compile.
//
// The `config.Model` is the single source of truth for the `app` and
// `executor` packages. Concrete loaders, such as for HCL or TOML, are
// provided in separate packages and implement the Loader interface.
package config
