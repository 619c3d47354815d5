package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Compiler *compilerBlock `hcl:"compiler,block"`
	Layout   *layoutBlock   `hcl:"layout,block"`
	Params   *paramsBlock   `hcl:"params,block"`
	Shaders  []*shaderBlock `hcl:"shader,block"`
}

type compilerBlock struct {
	Command  string            `hcl:"command"`
	Validate *string           `hcl:"validate,optional"`
	Env      map[string]string `hcl:"env,optional"`
}

type layoutBlock struct {
	SourceDir      string `hcl:"source_dir"`
	DestDir        string `hcl:"dest_dir"`
	LanguageSuffix string `hcl:"language_suffix,optional"`
	Prefix         string `hcl:"prefix,optional"`
	ArtifactSuffix string `hcl:"artifact_suffix,optional"`
}

// paramsBlock fields are pointers so a manifest can override single limits.
type paramsBlock struct {
	Viewports *int `hcl:"viewports,optional"`
	Instances *int `hcl:"instances,optional"`
	Joints    *int `hcl:"joints,optional"`
	Lights    *int `hcl:"lights,optional"`
}

// shaderBlock is one `shader "<stage>" "<source>"` block.
type shaderBlock struct {
	Stage  string         `hcl:"stage,label"`
	Source string         `hcl:"source,label"`
	Flags  hcl.Expression `hcl:"flags,optional"`
	Mask   *int64         `hcl:"mask,optional"`
	Output hcl.Expression `hcl:"output,optional"`

	DefRange   hcl.Range `hcl:",def_range"`
	StageRange hcl.Range `hcl:"stage,label_range"`
	MaskRange  hcl.Range `hcl:"mask,attr_range"`
}
