package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/shdc/internal/config"
	"github.com/specialistvlad/shdc/internal/layout"
	"github.com/specialistvlad/shdc/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, "build.toml", `
[compiler]
command = "glslc --target-env=vulkan1.2"
validate = "-V"
env = { VULKAN_SDK = "/opt/vk" }

[layout]
source_dir = "shaders/"
dest_dir = "bin/"
artifact_suffix = ".spv"

[params]
lights = 8

[[vertex]]
source = "Main"
flags = ["normal", "texcoord0"]
output = "{variant}"

[[fragment]]
source = "Main"
flags = ["normal"]
mask = 524288
output = "{source}-{stage}-{variant}"

[[fragment]]
source = "Sky"
`)

	model, err := NewLoader(variant.Default()).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, config.Compiler{
		Command:      "glslc --target-env=vulkan1.2",
		ValidateFlag: "-V",
		Env:          map[string]string{"VULKAN_SDK": "/opt/vk"},
	}, model.Compiler)
	assert.Equal(t, layout.Layout{SourceDir: "shaders/", DestDir: "bin/", ArtifactSuffix: ".spv"}, model.Layout)
	assert.Equal(t, variant.Params{Viewports: 1, Instances: 1, Joints: 100, Lights: 8}, model.Params)

	assert.Equal(t, []variant.Entry{
		{Source: "Main", Mask: variant.Normal | variant.TexCoord0, Output: "14000"},
	}, model.Vertex)
	assert.Equal(t, []variant.Entry{
		{Source: "Main", Mask: variant.Normal | variant.Skin, Output: "Main-fragment-84000"},
		{Source: "Sky"},
	}, model.Fragment)
}

func TestLoad_MergesFiles(t *testing.T) {
	base := writeManifest(t, "base.toml", `
[compiler]
command = "glslc"

[[vertex]]
source = "A"
`)
	extra := writeManifest(t, "extra.toml", `
[[vertex]]
source = "B"
`)

	model, err := NewLoader(variant.Default()).Load(context.Background(), base, extra)
	require.NoError(t, err)
	assert.Equal(t, "glslc", model.Compiler.Command)
	require.Len(t, model.Vertex, 2)
	assert.Equal(t, "A", model.Vertex[0].Source)
	assert.Equal(t, "B", model.Vertex[1].Source)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		contains string
	}{
		{
			name:     "syntax error",
			content:  "[compiler\ncommand = 1",
			contains: "failed to decode TOML file",
		},
		{
			name:     "unknown key",
			content:  "[compiler]\ncommand = \"x\"\nretries = 3\n",
			contains: "failed to decode TOML file",
		},
		{
			name:     "unknown flag",
			content:  "[compiler]\ncommand = \"x\"\n[[vertex]]\nsource = \"Main\"\nflags = [\"bogus\"]\n",
			contains: `vertex entry 0 (Main): unknown feature flag: "bogus"`,
		},
		{
			name:     "missing source",
			content:  "[compiler]\ncommand = \"x\"\n[[fragment]]\nflags = [\"normal\"]\n",
			contains: "fragment entry 0 has no source",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, "main.toml", tc.content)
			_, err := NewLoader(variant.Default()).Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestExpandOutput(t *testing.T) {
	assert.Equal(t, "", expandOutput("", variant.Vertex, "Main", variant.Normal))
	assert.Equal(t, "4000", expandOutput("{variant}", variant.Vertex, "Main", variant.Normal))
	assert.Equal(t, "Main.vertex", expandOutput("{source}.{stage}", variant.Vertex, "Main", 0))
}
