// Package hcl provides the HCL implementation of the config.Loader interface.
// It is responsible for file discovery, parsing, and translating `compiler`,
// `layout`, `params` and `shader` blocks into the format-agnostic manifest
// model, evaluating `output` expressions per variant along the way. Encode
// goes the other way and renders a model as a manifest.
package hcl
