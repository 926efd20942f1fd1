package render

import (
	"encoding/binary"
	"strings"
	"testing"
	"unsafe"

	"github.com/gogpu/naga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spirvMagic = 0x07230203

// compileShader compiles WGSL source and sanity-checks the SPIR-V
// output header.
func compileShader(t *testing.T, name, source string) []byte {
	t.Helper()

	spv, err := naga.Compile(source)
	require.NoError(t, err, "shader %q must compile", name)
	require.GreaterOrEqual(t, len(spv), 20, "shader %q SPIR-V too small for a header", name)

	magic := binary.LittleEndian.Uint32(spv[:4])
	assert.Equal(t, uint32(spirvMagic), magic, "shader %q has invalid SPIR-V magic", name)
	return spv
}

func TestShadersCompile(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "quad", source: QuadShader},
		{name: "instanced", source: InstancedShader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compileShader(t, tt.name, tt.source)
		})
	}
}

func TestCheckShader(t *testing.T) {
	assert.NoError(t, checkShader("quad", QuadShader))

	err := checkShader("broken", "@vertex fn vs_main( -> {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

// The shaders declare their inputs at fixed locations; the Go-side
// buffer layouts must agree with them.

func TestVertexLayoutMatchesShader(t *testing.T) {
	layout := vertexBufferLayout()

	assert.Equal(t, uint64(unsafe.Sizeof(Vertex{})), layout.ArrayStride)
	assert.Equal(t, uint64(20), layout.ArrayStride, "3 position + 2 texcoord floats")

	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)

	// The WGSL side declares the same locations.
	assert.Contains(t, QuadShader, "@location(0) position: vec3<f32>")
	assert.Contains(t, QuadShader, "@location(1) tex_coords: vec2<f32>")
}

func TestInstanceLayoutMatchesShader(t *testing.T) {
	layout := instanceBufferLayout()

	assert.Equal(t, uint64(64), layout.ArrayStride, "a full mat4x4<f32>")
	require.Len(t, layout.Attributes, 4)
	for i, attr := range layout.Attributes {
		assert.Equal(t, uint32(5+i), attr.ShaderLocation)
		assert.Equal(t, uint64(16*i), attr.Offset)
	}

	for _, loc := range []string{"@location(5)", "@location(6)", "@location(7)", "@location(8)"} {
		assert.Contains(t, InstancedShader, loc)
	}
}

func TestCameraUniformSize(t *testing.T) {
	// One mat4x4<f32>.
	assert.Equal(t, uintptr(64), unsafe.Sizeof(CameraUniform{}))
}

func TestShadersShareInterface(t *testing.T) {
	// Both variants bind the texture at group 0 and the camera at
	// group 1, so bind groups are interchangeable between pipelines.
	for _, src := range []string{QuadShader, InstancedShader} {
		assert.Contains(t, src, "@group(0) @binding(0) var t_diffuse: texture_2d<f32>;")
		assert.Contains(t, src, "@group(0) @binding(1) var s_diffuse: sampler;")
		assert.Contains(t, src, "@group(1) @binding(0) var<uniform> camera: CameraUniform;")
		assert.Equal(t, 1, strings.Count(src, "textureSample("))
	}
}
