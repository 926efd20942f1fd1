package render

import (
	"fmt"

	"github.com/gogpu/naga"
)

// QuadShader renders world-space geometry through the camera alone:
// positions are transformed by the view-projection matrix and the
// fragment stage samples a single diffuse texture. Used for the ground
// plane. The vertex locations match Vertex, the camera uniform layout
// matches CameraUniform.
const QuadShader = `
struct CameraUniform {
    view_proj: mat4x4<f32>,
}

@group(1) @binding(0) var<uniform> camera: CameraUniform;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) tex_coords: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) tex_coords: vec2<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = camera.view_proj * vec4<f32>(in.position, 1.0);
    out.tex_coords = in.tex_coords;
    return out;
}

@group(0) @binding(0) var t_diffuse: texture_2d<f32>;
@group(0) @binding(1) var s_diffuse: sampler;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(t_diffuse, s_diffuse, in.tex_coords);
}
`

// InstancedShader is the instanced variant of QuadShader: each instance
// carries a model matrix as four vec4 columns in locations 5 through 8,
// composed with the camera before projection. One draw call renders
// every live round. The instance locations match RawInstance.
const InstancedShader = `
struct CameraUniform {
    view_proj: mat4x4<f32>,
}

@group(1) @binding(0) var<uniform> camera: CameraUniform;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) tex_coords: vec2<f32>,
}

struct InstanceInput {
    @location(5) model_matrix_0: vec4<f32>,
    @location(6) model_matrix_1: vec4<f32>,
    @location(7) model_matrix_2: vec4<f32>,
    @location(8) model_matrix_3: vec4<f32>,
}

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) tex_coords: vec2<f32>,
}

@vertex
fn vs_main(in: VertexInput, instance: InstanceInput) -> VertexOutput {
    let model = mat4x4<f32>(
        instance.model_matrix_0,
        instance.model_matrix_1,
        instance.model_matrix_2,
        instance.model_matrix_3,
    );

    var out: VertexOutput;
    out.clip_position = camera.view_proj * model * vec4<f32>(in.position, 1.0);
    out.tex_coords = in.tex_coords;
    return out;
}

@group(0) @binding(0) var t_diffuse: texture_2d<f32>;
@group(0) @binding(1) var s_diffuse: sampler;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(t_diffuse, s_diffuse, in.tex_coords);
}
`

// checkShader runs source through the WGSL compiler. A malformed shader
// then fails with a readable compile error at pipeline construction
// instead of a device loss deep inside the driver.
func checkShader(label, source string) error {
	if _, err := naga.Compile(source); err != nil {
		return fmt.Errorf("shader %q failed to compile: %w", label, err)
	}
	return nil
}
