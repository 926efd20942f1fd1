// Package render drives the textured-quad pipelines: a camera-only pass
// for the ground plane and an instanced pass that draws every live round
// in a single call.
package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"particleview/internal/camera"
	"particleview/internal/config"
	"particleview/pkg/vmath"
)

// Vertex is the vertex layout shared by both shaders: a world- or
// model-space position and texture coordinates. Locations 0 and 1 in
// VertexInput.
type Vertex struct {
	Position  [3]float32
	TexCoords [2]float32
}

// RawInstance is the per-instance layout of the instanced shader: a
// model matrix delivered as four vec4 columns in locations 5 through 8.
type RawInstance struct {
	Model [4][4]float32
}

// CameraUniform matches the CameraUniform struct in both shaders.
type CameraUniform struct {
	ViewProj [16]float32
}

// DefaultClearColor is the sky color behind the scene.
var DefaultClearColor = wgpu.Color{R: 0.05, G: 0.06, B: 0.09, A: 1.0}

// Renderer owns all WebGPU state for the textured-quad passes.
type Renderer struct {
	device          *wgpu.Device
	queue           *wgpu.Queue
	surface         *wgpu.Surface
	adapter         *wgpu.Adapter
	swapChain       *wgpu.SwapChain
	swapChainFormat wgpu.TextureFormat

	quadPipeline      *wgpu.RenderPipeline
	instancedPipeline *wgpu.RenderPipeline
	sampler           *wgpu.Sampler
	textureLayout     *wgpu.BindGroupLayout
	cameraLayout      *wgpu.BindGroupLayout

	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	groundVertexBuffer *wgpu.Buffer
	groundIndexBuffer  *wgpu.Buffer
	quadVertexBuffer   *wgpu.Buffer
	quadIndexBuffer    *wgpu.Buffer

	instanceBuffer   *wgpu.Buffer
	instanceCapacity int

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	placeholder *Texture
	textures    map[string]*Texture
	texturesMu  sync.RWMutex

	width  uint32
	height uint32

	log *slog.Logger
}

const (
	depthFormat = wgpu.TextureFormat_Depth32Float

	// groundExtent is the half-size of the ground plane quad.
	groundExtent float32 = 100
	// quadExtent is the half-size of the per-round billboard quad.
	quadExtent float32 = 0.3

	initialInstanceCapacity = 64
)

// quadIndices is the CCW two-triangle quad index list shared by both
// meshes.
var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// NewRenderer creates a renderer for the given surface. The logger may
// be nil.
func NewRenderer(adapter *wgpu.Adapter, device *wgpu.Device, queue *wgpu.Queue, surface *wgpu.Surface, width, height uint32, log *slog.Logger) (*Renderer, error) {
	if log == nil {
		log = slog.Default()
	}
	r := &Renderer{
		adapter:  adapter,
		device:   device,
		queue:    queue,
		surface:  surface,
		width:    width,
		height:   height,
		textures: make(map[string]*Texture),
		log:      log.With("component", "renderer"),
	}

	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}

	return r, nil
}

func (r *Renderer) init() error {
	r.swapChainFormat = r.surface.GetPreferredFormat(r.adapter)

	if err := r.createSwapChain(); err != nil {
		return err
	}
	if err := r.createDepthTexture(); err != nil {
		return err
	}

	// Fail on malformed WGSL before touching the device.
	if err := checkShader("quad", QuadShader); err != nil {
		return err
	}
	if err := checkShader("instanced", InstancedShader); err != nil {
		return err
	}

	quadModule, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "quad_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: QuadShader},
	})
	if err != nil {
		return fmt.Errorf("quad shader module creation failed: %w", err)
	}
	defer quadModule.Release()

	instancedModule, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "instanced_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: InstancedShader},
	})
	if err != nil {
		return fmt.Errorf("instanced shader module creation failed: %w", err)
	}
	defer instancedModule.Release()

	r.sampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:   wgpu.AddressMode_Repeat,
		AddressModeV:   wgpu.AddressMode_Repeat,
		AddressModeW:   wgpu.AddressMode_ClampToEdge,
		MagFilter:      wgpu.FilterMode_Linear,
		MinFilter:      wgpu.FilterMode_Linear,
		MipmapFilter:   wgpu.MipmapFilterMode_Nearest,
		MaxAnisotrophy: 1,
	})
	if err != nil {
		return fmt.Errorf("sampler creation failed: %w", err)
	}

	if err := r.createBindGroupLayouts(); err != nil {
		return err
	}
	if err := r.createCameraResources(); err != nil {
		return err
	}
	if err := r.createPipelines(quadModule, instancedModule); err != nil {
		return err
	}
	if err := r.createMeshes(); err != nil {
		return err
	}
	if err := r.createInstanceBuffer(initialInstanceCapacity); err != nil {
		return err
	}

	r.placeholder, err = r.createTexture("placeholder", Checkerboard(
		color.RGBA{R: 180, G: 180, B: 185, A: 255},
		color.RGBA{R: 90, G: 90, B: 95, A: 255},
	))
	if err != nil {
		return fmt.Errorf("placeholder creation failed: %w", err)
	}

	r.log.Info("renderer ready", "format", r.swapChainFormat, "width", r.width, "height", r.height)
	return nil
}

func (r *Renderer) createSwapChain() error {
	presentMode := wgpu.PresentMode_Fifo
	if !config.Get().Rendering.VSync {
		presentMode = wgpu.PresentMode_Immediate
	}

	sc, err := r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       r.width,
		Height:      r.height,
		PresentMode: presentMode,
	})
	if err != nil {
		return fmt.Errorf("swap chain creation failed: %w", err)
	}
	r.swapChain = sc
	return nil
}

func (r *Renderer) createDepthTexture() error {
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "depth_texture",
		Size: wgpu.Extent3D{
			Width:              r.width,
			Height:             r.height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension_2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsage_RenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("depth texture creation failed: %w", err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("depth view creation failed: %w", err)
	}

	r.depthTexture = tex
	r.depthView = view
	return nil
}

func (r *Renderer) createBindGroupLayouts() error {
	var err error

	// Group 0: diffuse texture and sampler.
	r.textureLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "texture_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStage_Fragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleType_Float,
					ViewDimension: wgpu.TextureViewDimension_2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStage_Fragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingType_Filtering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("texture bind group layout creation failed: %w", err)
	}

	// Group 1: camera uniform.
	r.cameraLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "camera_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStage_Vertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("camera bind group layout creation failed: %w", err)
	}

	return nil
}

func (r *Renderer) createCameraResources() error {
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "camera_uniform",
		Size:  uint64(unsafe.Sizeof(CameraUniform{})),
		Usage: wgpu.BufferUsage_Uniform | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return fmt.Errorf("camera buffer creation failed: %w", err)
	}
	r.cameraBuffer = buf

	bg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "camera_bind_group",
		Layout: r.cameraLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Size: uint64(unsafe.Sizeof(CameraUniform{}))},
		},
	})
	if err != nil {
		return fmt.Errorf("camera bind group creation failed: %w", err)
	}
	r.cameraBindGroup = bg
	return nil
}

// vertexBufferLayout is the layout both pipelines use for mesh vertices.
func vertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
		StepMode:    wgpu.VertexStepMode_Vertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormat_Float32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormat_Float32x2, Offset: uint64(unsafe.Sizeof([3]float32{})), ShaderLocation: 1},
		},
	}
}

// instanceBufferLayout carries the model matrix as four vec4 attributes,
// advancing once per instance.
func instanceBufferLayout() wgpu.VertexBufferLayout {
	const vec4Size = uint64(unsafe.Sizeof([4]float32{}))
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(RawInstance{})),
		StepMode:    wgpu.VertexStepMode_Instance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormat_Float32x4, Offset: 0, ShaderLocation: 5},
			{Format: wgpu.VertexFormat_Float32x4, Offset: vec4Size, ShaderLocation: 6},
			{Format: wgpu.VertexFormat_Float32x4, Offset: 2 * vec4Size, ShaderLocation: 7},
			{Format: wgpu.VertexFormat_Float32x4, Offset: 3 * vec4Size, ShaderLocation: 8},
		},
	}
}

func (r *Renderer) createPipelines(quadModule, instancedModule *wgpu.ShaderModule) error {
	layout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "quad_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.textureLayout, r.cameraLayout},
	})
	if err != nil {
		return fmt.Errorf("pipeline layout creation failed: %w", err)
	}
	defer layout.Release()

	depthState := &wgpu.DepthStencilState{
		Format:            depthFormat,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunction_Less,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunction_Always},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunction_Always},
		StencilReadMask:   0xFFFFFFFF,
		StencilWriteMask:  0xFFFFFFFF,
	}

	r.quadPipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "quad_pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     quadModule,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     quadModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.swapChainFormat,
				Blend:     &wgpu.BlendState_Replace,
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopology_TriangleList,
			FrontFace: wgpu.FrontFace_CCW,
		},
		DepthStencil: depthState,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("quad pipeline creation failed: %w", err)
	}

	r.instancedPipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "instanced_pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     instancedModule,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout(), instanceBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     instancedModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.swapChainFormat,
				Blend:     &wgpu.BlendState_Replace,
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopology_TriangleList,
			FrontFace: wgpu.FrontFace_CCW,
		},
		DepthStencil: depthState,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("instanced pipeline creation failed: %w", err)
	}

	return nil
}

func (r *Renderer) createMeshes() error {
	// Ground plane: a large world-space quad at y = 0 facing up, with
	// texture coordinates repeating across it.
	const repeats = 25
	groundVertices := []Vertex{
		{Position: [3]float32{-groundExtent, 0, -groundExtent}, TexCoords: [2]float32{0, 0}},
		{Position: [3]float32{-groundExtent, 0, groundExtent}, TexCoords: [2]float32{0, repeats}},
		{Position: [3]float32{groundExtent, 0, groundExtent}, TexCoords: [2]float32{repeats, repeats}},
		{Position: [3]float32{groundExtent, 0, -groundExtent}, TexCoords: [2]float32{repeats, 0}},
	}

	// Round billboard: a unit-ish quad in the XY plane centered on the
	// instance origin, counter-clockwise.
	quadVertices := []Vertex{
		{Position: [3]float32{-quadExtent, -quadExtent, 0}, TexCoords: [2]float32{0, 1}},
		{Position: [3]float32{quadExtent, -quadExtent, 0}, TexCoords: [2]float32{1, 1}},
		{Position: [3]float32{quadExtent, quadExtent, 0}, TexCoords: [2]float32{1, 0}},
		{Position: [3]float32{-quadExtent, quadExtent, 0}, TexCoords: [2]float32{0, 0}},
	}

	var err error
	r.groundVertexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "ground_vertex_buffer",
		Contents: wgpu.ToBytes(groundVertices),
		Usage:    wgpu.BufferUsage_Vertex,
	})
	if err != nil {
		return fmt.Errorf("ground vertex buffer creation failed: %w", err)
	}
	r.groundIndexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "ground_index_buffer",
		Contents: wgpu.ToBytes(quadIndices),
		Usage:    wgpu.BufferUsage_Index,
	})
	if err != nil {
		return fmt.Errorf("ground index buffer creation failed: %w", err)
	}

	r.quadVertexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "quad_vertex_buffer",
		Contents: wgpu.ToBytes(quadVertices),
		Usage:    wgpu.BufferUsage_Vertex,
	})
	if err != nil {
		return fmt.Errorf("quad vertex buffer creation failed: %w", err)
	}
	r.quadIndexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "quad_index_buffer",
		Contents: wgpu.ToBytes(quadIndices),
		Usage:    wgpu.BufferUsage_Index,
	})
	if err != nil {
		return fmt.Errorf("quad index buffer creation failed: %w", err)
	}

	return nil
}

func (r *Renderer) createInstanceBuffer(capacity int) error {
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "instance_buffer",
		Size:  uint64(capacity) * uint64(unsafe.Sizeof(RawInstance{})),
		Usage: wgpu.BufferUsage_Vertex | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return fmt.Errorf("instance buffer creation failed: %w", err)
	}
	r.instanceBuffer = buf
	r.instanceCapacity = capacity
	return nil
}

// UploadTexture decodes and uploads a texture under the given name.
// Uploading the same name twice is a no-op.
func (r *Renderer) UploadTexture(name string, data []byte) error {
	r.texturesMu.RLock()
	_, exists := r.textures[name]
	r.texturesMu.RUnlock()
	if exists {
		return nil
	}

	rgba, err := DecodeTexture(data)
	if err != nil {
		return fmt.Errorf("decoding texture %q: %w", name, err)
	}

	tex, err := r.createTexture(name, rgba)
	if err != nil {
		return fmt.Errorf("uploading texture %q: %w", name, err)
	}

	r.texturesMu.Lock()
	r.textures[name] = tex
	r.texturesMu.Unlock()

	r.log.Debug("texture uploaded", "name", name,
		"width", rgba.Bounds().Dx(), "height", rgba.Bounds().Dy())
	return nil
}

// HasTexture reports whether a texture has been uploaded under name.
func (r *Renderer) HasTexture(name string) bool {
	r.texturesMu.RLock()
	defer r.texturesMu.RUnlock()
	_, ok := r.textures[name]
	return ok
}

// textureView returns the view for name, or the placeholder when the
// texture has not been uploaded yet.
func (r *Renderer) textureView(name string) *wgpu.TextureView {
	r.texturesMu.RLock()
	defer r.texturesMu.RUnlock()
	if tex, ok := r.textures[name]; ok {
		return tex.View
	}
	return r.placeholder.View
}

// instancesFromMatrices packs model matrices into the instance layout.
func instancesFromMatrices(mats []vmath.Mat4) []RawInstance {
	out := make([]RawInstance, len(mats))
	for i, m := range mats {
		out[i] = RawInstance{Model: m.Cols()}
	}
	return out
}

// Frame describes one frame to draw: the camera, the texture names to
// bind, and the model matrix of every live round.
type Frame struct {
	GroundTexture string
	RoundTexture  string
	Instances     []vmath.Mat4
}

// Render draws one frame and presents it.
func (r *Renderer) Render(cam *camera.Camera, frame Frame) error {
	// Update the camera uniform for this frame.
	uniform := CameraUniform{ViewProj: [16]float32(cam.ViewProjection())}
	r.queue.WriteBuffer(r.cameraBuffer, 0, wgpu.ToBytes([]CameraUniform{uniform}))

	// Grow the instance buffer when the round count exceeds it.
	if n := len(frame.Instances); n > r.instanceCapacity {
		capacity := r.instanceCapacity * 2
		for capacity < n {
			capacity *= 2
		}
		r.instanceBuffer.Release()
		if err := r.createInstanceBuffer(capacity); err != nil {
			return err
		}
		r.log.Debug("instance buffer grown", "capacity", capacity)
	}
	if len(frame.Instances) > 0 {
		instances := instancesFromMatrices(frame.Instances)
		r.queue.WriteBuffer(r.instanceBuffer, 0, wgpu.ToBytes(instances))
	}

	view, err := r.swapChain.GetCurrentTextureView()
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{})
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOp_Clear,
			StoreOp:    wgpu.StoreOp_Store,
			ClearValue: DefaultClearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthClearValue: 1.0,
			DepthLoadOp:     wgpu.LoadOp_Clear,
			DepthStoreOp:    wgpu.StoreOp_Store,
		},
	})

	groundBindGroup, err := r.createTextureBindGroup("ground", r.textureView(frame.GroundTexture))
	if err != nil {
		return err
	}
	defer groundBindGroup.Release()

	// Ground pass: camera-only shader.
	pass.SetPipeline(r.quadPipeline)
	pass.SetBindGroup(0, groundBindGroup, nil)
	pass.SetBindGroup(1, r.cameraBindGroup, nil)
	pass.SetVertexBuffer(0, r.groundVertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.groundIndexBuffer, wgpu.IndexFormat_Uint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(len(quadIndices)), 1, 0, 0, 0)

	// Round pass: instanced shader, one instance per live round.
	if len(frame.Instances) > 0 {
		roundBindGroup, err := r.createTextureBindGroup("round", r.textureView(frame.RoundTexture))
		if err != nil {
			return err
		}
		defer roundBindGroup.Release()

		pass.SetPipeline(r.instancedPipeline)
		pass.SetBindGroup(0, roundBindGroup, nil)
		pass.SetBindGroup(1, r.cameraBindGroup, nil)
		pass.SetVertexBuffer(0, r.quadVertexBuffer, 0, wgpu.WholeSize)
		pass.SetVertexBuffer(1, r.instanceBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(r.quadIndexBuffer, wgpu.IndexFormat_Uint16, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(len(quadIndices)), uint32(len(frame.Instances)), 0, 0, 0)
	}

	pass.End()

	cmdBuffer, err := encoder.Finish(&wgpu.CommandBufferDescriptor{})
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	r.queue.Submit(cmdBuffer)
	r.swapChain.Present()

	return nil
}

func (r *Renderer) createTextureBindGroup(label string, view *wgpu.TextureView) (*wgpu.BindGroup, error) {
	bg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + "_texture_bind_group",
		Layout: r.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: r.sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s bind group creation failed: %w", label, err)
	}
	return bg, nil
}

// Resize recreates the swap chain and depth buffer for a new window
// size. Zero dimensions are ignored.
func (r *Renderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	r.width = width
	r.height = height

	if r.swapChain != nil {
		r.swapChain.Release()
		r.swapChain = nil
	}
	if err := r.createSwapChain(); err != nil {
		r.log.Error("swap chain recreation failed", "err", err)
		return
	}

	if r.depthView != nil {
		r.depthView.Release()
		r.depthView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
	if err := r.createDepthTexture(); err != nil {
		r.log.Error("depth texture recreation failed", "err", err)
	}
}

// Release frees all GPU resources. The renderer must not be used after.
func (r *Renderer) Release() {
	r.texturesMu.Lock()
	for _, tex := range r.textures {
		tex.Release()
	}
	r.textures = map[string]*Texture{}
	r.texturesMu.Unlock()

	if r.placeholder != nil {
		r.placeholder.Release()
	}
	for _, buf := range []*wgpu.Buffer{
		r.instanceBuffer, r.quadIndexBuffer, r.quadVertexBuffer,
		r.groundIndexBuffer, r.groundVertexBuffer, r.cameraBuffer,
	} {
		if buf != nil {
			buf.Release()
		}
	}
	if r.cameraBindGroup != nil {
		r.cameraBindGroup.Release()
	}
	if r.instancedPipeline != nil {
		r.instancedPipeline.Release()
	}
	if r.quadPipeline != nil {
		r.quadPipeline.Release()
	}
	if r.cameraLayout != nil {
		r.cameraLayout.Release()
	}
	if r.textureLayout != nil {
		r.textureLayout.Release()
	}
	if r.sampler != nil {
		r.sampler.Release()
	}
	if r.depthView != nil {
		r.depthView.Release()
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
	}
	if r.swapChain != nil {
		r.swapChain.Release()
	}
}
