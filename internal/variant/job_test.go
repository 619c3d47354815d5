package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobs(t *testing.T) {
	r := newTestResolver()
	entries := []Entry{
		{Source: "Main", Mask: Normal},
		{Source: "Main", Mask: Normal | TexCoord0 | ColorMap, Output: "textured"},
		{Source: "Skinned", Mask: Normal | Skin | AlphaBlend},
	}

	jobs, err := r.Jobs(Vertex, entries)
	require.NoError(t, err)
	require.Len(t, jobs, len(entries))

	params := []string{"-DVPORT_N=1", "-DINST_N=1", "-DJOINT_N=100", "-DLIGHT_N=16"}
	for i, job := range jobs {
		assert.Equal(t, Vertex, job.Stage)
		assert.Equal(t, entries[i].Source, job.Source, "entry order must be preserved")
		assert.Equal(t, entries[i].Mask, job.Mask)
		require.GreaterOrEqual(t, len(job.Defines), len(params))
		assert.Equal(t, params, job.Defines[:len(params)], "job %d must start with the parameter defines", i)

		maskDefs, err := r.Defines(entries[i].Mask)
		require.NoError(t, err)
		assert.Equal(t, maskDefs, job.Defines[len(params):])
	}

	assert.Equal(t, "Main", jobs[0].Output, "no override keeps the source name")
	assert.Equal(t, "textured", jobs[1].Output)
	assert.Equal(t, "Skinned", jobs[2].Output)
	assert.Equal(t, "85000", jobs[2].Variant())
}

func TestJobs_CustomParams(t *testing.T) {
	r := NewResolver(Default(), Params{Viewports: 2, Instances: 8, Joints: 64, Lights: 4})
	jobs, err := r.Jobs(Fragment, []Entry{{Source: "Main"}})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, []string{
		"-DVPORT_N=2", "-DINST_N=8", "-DJOINT_N=64", "-DLIGHT_N=4",
		"-DMATERIAL_PBRMR", "-DALPHA_OPAQUE",
	}, jobs[0].Defines)
}

func TestJobs_DefinesAreNotShared(t *testing.T) {
	r := newTestResolver()
	jobs, err := r.Jobs(Vertex, []Entry{{Source: "A"}, {Source: "B"}})
	require.NoError(t, err)

	jobs[0].Defines[0] = "-DCHANGED"
	assert.Equal(t, "-DVPORT_N=1", jobs[1].Defines[0])
}

func TestJobs_UnknownBitFailsWholeCall(t *testing.T) {
	r := newTestResolver()
	jobs, err := r.Jobs(Fragment, []Entry{
		{Source: "Main", Mask: Normal},
		{Source: "Broken", Mask: 1 << 10},
	})
	require.Error(t, err)
	assert.Nil(t, jobs)
	assert.ErrorIs(t, err, ErrUnknownFlag)
	assert.Contains(t, err.Error(), "fragment entry 1 (Broken)")
}

func TestJobs_ExclusiveGroupConflictFailsWholeCall(t *testing.T) {
	r := newTestResolver()
	jobs, err := r.Jobs(Vertex, []Entry{
		{Source: "Main", Mask: Normal},
		{Source: "Main", Mask: PbrSG | Unlit},
	})
	assert.Nil(t, jobs)
	require.ErrorIs(t, err, ErrExclusiveGroup)
	assert.Contains(t, err.Error(), "vertex entry 1 (Main)")
}

func TestJobs_Empty(t *testing.T) {
	jobs, err := newTestResolver().Jobs(Vertex, nil)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestStage(t *testing.T) {
	assert.Equal(t, ".vert", Vertex.Suffix())
	assert.Equal(t, ".frag", Fragment.Suffix())
	assert.Equal(t, "vertex", Vertex.String())
	assert.Equal(t, "fragment", Fragment.String())

	s, err := ParseStage("fragment")
	require.NoError(t, err)
	assert.Equal(t, Fragment, s)

	_, err = ParseStage("compute")
	assert.Error(t, err)
}
