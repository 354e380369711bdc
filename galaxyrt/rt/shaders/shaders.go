package shaders

import (
	_ "embed"
)

// Galaxy program stages. The vertex stage reads the position, color and
// speed instance attributes and the elapsedTime uniform.
//
//go:embed galaxy_vertex.wgsl
var GalaxyVertexWGSL string

//go:embed galaxy_fragment.wgsl
var GalaxyFragmentWGSL string

//go:embed text.wgsl
var TextWGSL string

const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)
