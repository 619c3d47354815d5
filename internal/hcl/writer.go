package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/shdc/internal/config"
	"github.com/specialistvlad/shdc/internal/variant"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders model as an HCL manifest that Load reads back into the same
// model. Mask bits with a registered flag are written by name; any others go
// to the raw mask attribute.
func Encode(model *config.Model, cat *variant.Catalog) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	compiler := root.AppendNewBlock("compiler", nil).Body()
	compiler.SetAttributeValue("command", cty.StringVal(model.Compiler.Command))
	compiler.SetAttributeValue("validate", cty.StringVal(model.Compiler.Validate()))
	if len(model.Compiler.Env) > 0 {
		env := make(map[string]cty.Value, len(model.Compiler.Env))
		for k, v := range model.Compiler.Env {
			env[k] = cty.StringVal(v)
		}
		compiler.SetAttributeValue("env", cty.ObjectVal(env))
	}
	root.AppendNewline()

	lay := root.AppendNewBlock("layout", nil).Body()
	lay.SetAttributeValue("source_dir", cty.StringVal(model.Layout.SourceDir))
	lay.SetAttributeValue("dest_dir", cty.StringVal(model.Layout.DestDir))
	for _, opt := range []struct{ name, value string }{
		{"language_suffix", model.Layout.LanguageSuffix},
		{"prefix", model.Layout.Prefix},
		{"artifact_suffix", model.Layout.ArtifactSuffix},
	} {
		if opt.value != "" {
			lay.SetAttributeValue(opt.name, cty.StringVal(opt.value))
		}
	}
	root.AppendNewline()

	params := root.AppendNewBlock("params", nil).Body()
	params.SetAttributeValue("viewports", cty.NumberIntVal(int64(model.Params.Viewports)))
	params.SetAttributeValue("instances", cty.NumberIntVal(int64(model.Params.Instances)))
	params.SetAttributeValue("joints", cty.NumberIntVal(int64(model.Params.Joints)))
	params.SetAttributeValue("lights", cty.NumberIntVal(int64(model.Params.Lights)))

	for _, stage := range variant.Stages {
		for _, e := range model.Entries(stage) {
			root.AppendNewline()
			encodeShader(root, cat, stage, e)
		}
	}
	return hclwrite.Format(f.Bytes())
}

func encodeShader(root *hclwrite.Body, cat *variant.Catalog, stage variant.Stage, e variant.Entry) {
	body := root.AppendNewBlock("shader", []string{stage.String(), e.Source}).Body()

	var names []cty.Value
	for pos := 0; pos <= variant.LastBit; pos++ {
		if fl, ok := cat.Lookup(pos); ok && e.Mask&fl.Bit != 0 {
			names = append(names, cty.StringVal(fl.Name))
		}
	}
	if len(names) > 0 {
		body.SetAttributeValue("flags", cty.ListVal(names))
	}
	if rest := e.Mask &^ cat.Registered(); rest != 0 {
		body.SetAttributeValue("mask", cty.NumberUIntVal(uint64(rest)))
	}

	switch e.Output {
	case "":
	case e.Mask.Name():
		body.SetAttributeTraversal("output", hcl.Traversal{hcl.TraverseRoot{Name: "variant"}})
	default:
		body.SetAttributeValue("output", cty.StringVal(e.Output))
	}
}

// WriteFile writes the encoded model to path. It refuses to replace an
// existing file.
func WriteFile(path string, model *config.Model, cat *variant.Catalog) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	if _, err := f.Write(Encode(model, cat)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return f.Close()
}
