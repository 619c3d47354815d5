package hcl

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/shdc/internal/config"
	"github.com/specialistvlad/shdc/internal/layout"
	"github.com/specialistvlad/shdc/internal/variant"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// outputFunctions are callable from output expressions.
var outputFunctions = map[string]function.Function{
	"format":  stdlib.FormatFunc,
	"join":    stdlib.JoinFunc,
	"lower":   stdlib.LowerFunc,
	"upper":   stdlib.UpperFunc,
	"replace": stdlib.ReplaceFunc,
}

// translateSettings merges the compiler, layout and params blocks of one file.
func (l *Loader) translateSettings(root *fileRoot, model *config.Model) {
	if c := root.Compiler; c != nil {
		model.Compiler = config.Compiler{Command: c.Command, Env: c.Env}
		if c.Validate != nil {
			model.Compiler.ValidateFlag = *c.Validate
		}
	}
	if lb := root.Layout; lb != nil {
		model.Layout = layout.Layout{
			SourceDir:      lb.SourceDir,
			DestDir:        lb.DestDir,
			LanguageSuffix: lb.LanguageSuffix,
			Prefix:         lb.Prefix,
			ArtifactSuffix: lb.ArtifactSuffix,
		}
	}
	if p := root.Params; p != nil {
		for _, o := range []struct {
			src *int
			dst *int
		}{
			{p.Viewports, &model.Params.Viewports},
			{p.Instances, &model.Params.Instances},
			{p.Joints, &model.Params.Joints},
			{p.Lights, &model.Params.Lights},
		} {
			if o.src != nil {
				*o.dst = *o.src
			}
		}
	}
}

// translateShader converts a shader block into a stage and an entry.
func (l *Loader) translateShader(s *shaderBlock) (variant.Stage, variant.Entry, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	stage, err := variant.ParseStage(s.Stage)
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown shader stage",
			Detail:   err.Error(),
			Subject:  s.StageRange.Ptr(),
			Context:  s.DefRange.Ptr(),
		})
		return 0, variant.Entry{}, diags
	}

	mask, maskDiags := l.decodeMask(s)
	diags = append(diags, maskDiags...)
	if diags.HasErrors() {
		return 0, variant.Entry{}, diags
	}

	out, outDiags := evalOutput(s.Output, stage, s.Source, mask)
	diags = append(diags, outDiags...)
	return stage, variant.Entry{Source: s.Source, Mask: mask, Output: out}, diags
}

// decodeMask combines the named flags with the raw mask attribute.
func (l *Loader) decodeMask(s *shaderBlock) (variant.Mask, hcl.Diagnostics) {
	var mask variant.Mask

	if s.Mask != nil {
		if *s.Mask < 0 || *s.Mask > math.MaxUint32 {
			return 0, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid mask",
				Detail:   fmt.Sprintf("mask %d is outside the range of a 32-bit mask", *s.Mask),
				Subject:  s.MaskRange.Ptr(),
				Context:  s.DefRange.Ptr(),
			}}
		}
		mask = variant.Mask(*s.Mask)
	}

	val, diags := s.Flags.Value(nil)
	if diags.HasErrors() || val.IsNull() {
		return mask, diags
	}

	var names []string
	diags = gohcl.DecodeExpression(s.Flags, nil, &names)
	if diags.HasErrors() {
		return 0, diags
	}
	flagMask, err := l.catalog.MaskOf(names...)
	if err != nil {
		r := s.Flags.Range()
		return 0, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown feature flag",
			Detail:   err.Error(),
			Subject:  &r,
		}}
	}
	return mask | flagMask, nil
}

// evalOutput evaluates the output expression of a shader block. The
// expression may refer to `variant`, `source` and `stage` and call the
// string functions in outputFunctions. A missing or null output means no
// override.
func evalOutput(expr hcl.Expression, stage variant.Stage, source string, mask variant.Mask) (string, hcl.Diagnostics) {
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"variant": cty.StringVal(mask.Name()),
			"source":  cty.StringVal(source),
			"stage":   cty.StringVal(stage.String()),
		},
		Functions: outputFunctions,
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() || val.IsNull() {
		return "", diags
	}

	strVal, err := convert.Convert(val, cty.String)
	if err != nil || !strVal.IsKnown() || strVal.IsNull() {
		r := expr.Range()
		detail := fmt.Sprintf("output must be a string, got %s", val.Type().FriendlyName())
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid output name",
			Detail:   detail,
			Subject:  &r,
		}}
	}
	return strVal.AsString(), nil
}
