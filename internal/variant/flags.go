// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package variant

// Reference feature flags.
const (
	PbrSG        Mask = 1 << 0
	Unlit        Mask = 1 << 1
	ColorMap     Mask = 1 << 4
	PbrMap       Mask = 1 << 5
	NormalMap    Mask = 1 << 6
	OcclusionMap Mask = 1 << 7
	EmissiveMap  Mask = 1 << 8
	AlphaBlend   Mask = 1 << 12
	AlphaMask    Mask = 1 << 13
	Normal       Mask = 1 << 14
	Tangent      Mask = 1 << 15
	TexCoord0    Mask = 1 << 16
	TexCoord1    Mask = 1 << 17
	Color0       Mask = 1 << 18
	Skin         Mask = 1 << 19
)

// Default group defines.
const (
	MaterialDefault = "MATERIAL_PBRMR"
	AlphaDefault    = "ALPHA_OPAQUE"
)

// ReferenceFlags is the reference flag table.
var ReferenceFlags = []Flag{
	{Bit: PbrSG, Name: "pbrsg", Define: "MATERIAL_PBRSG"},
	{Bit: Unlit, Name: "unlit", Define: "MATERIAL_UNLIT"},
	{Bit: ColorMap, Name: "color_map", Define: "HAS_COLOR_MAP"},
	{Bit: PbrMap, Name: "pbr_map", Define: "HAS_PBR_MAP"},
	{Bit: NormalMap, Name: "normal_map", Define: "HAS_NORMAL_MAP"},
	{Bit: OcclusionMap, Name: "occlusion_map", Define: "HAS_OCCLUSION_MAP"},
	{Bit: EmissiveMap, Name: "emissive_map", Define: "HAS_EMISSIVE_MAP"},
	{Bit: AlphaBlend, Name: "alpha_blend", Define: "ALPHA_BLEND"},
	{Bit: AlphaMask, Name: "alpha_mask", Define: "ALPHA_MASK"},
	{Bit: Normal, Name: "normal", Define: "HAS_NORMAL"},
	{Bit: Tangent, Name: "tangent", Define: "HAS_TANGENT"},
	{Bit: TexCoord0, Name: "texcoord0", Define: "HAS_TEXCOORD0"},
	{Bit: TexCoord1, Name: "texcoord1", Define: "HAS_TEXCOORD1"},
	{Bit: Color0, Name: "color0", Define: "HAS_COLOR0"},
	{Bit: Skin, Name: "skin", Define: "HAS_SKIN"},
}

// ReferenceGroups lists the exclusive groups in the order their defaults are emitted.
var ReferenceGroups = []Group{
	{Name: "material", Members: PbrSG | Unlit, Default: MaterialDefault},
	{Name: "alpha", Members: AlphaBlend | AlphaMask, Default: AlphaDefault},
}

// ReferenceParams are the default build-wide limits.
var ReferenceParams = Params{
	Viewports: 1,
	Instances: 1,
	Joints:    100,
	Lights:    16,
}

var defaultCatalog = MustCatalog(ReferenceFlags, ReferenceGroups, ReferenceParams)

// Default returns the reference catalog.
func Default() *Catalog {
	return defaultCatalog
}
