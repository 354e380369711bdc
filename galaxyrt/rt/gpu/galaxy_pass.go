package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/galaxy/galaxyrt/rt/core"
	"github.com/gekko3d/galaxy/galaxyrt/rt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultPointSize is the sprite half-extent in clip units at w=1.
const DefaultPointSize = 0.012

// GalaxyUniforms matches the Uniforms struct in galaxy_vertex.wgsl.
type GalaxyUniforms struct {
	ViewProj    mgl32.Mat4
	Model       mgl32.Mat4
	ElapsedTime float32
	PointSize   float32
	Aspect      float32
	_           float32
}

// GalaxyRenderPass is the GPU side of one galaxy node: a point sprite
// pipeline plus the position, color and speed instance buffers.
type GalaxyRenderPass struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue

	Pipeline        *wgpu.RenderPipeline
	BindGroupLayout *wgpu.BindGroupLayout
	BindGroup       *wgpu.BindGroup
	UniformBuf      *wgpu.Buffer

	PositionBuf   *wgpu.Buffer
	ColorBuf      *wgpu.Buffer
	SpeedBuf      *wgpu.Buffer
	InstanceCount uint32

	Uniforms GalaxyUniforms
}

var _ core.ShaderProgram = (*GalaxyRenderPass)(nil)

func NewGalaxyRenderPass(device *wgpu.Device, format wgpu.TextureFormat) (*GalaxyRenderPass, error) {
	vsModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "GalaxyVertex",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.GalaxyVertexWGSL},
	})
	if err != nil {
		return nil, &core.ShaderError{Stage: "vertex", Err: err}
	}
	defer vsModule.Release()

	fsModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "GalaxyFragment",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.GalaxyFragmentWGSL},
	})
	if err != nil {
		return nil, &core.ShaderError{Stage: "fragment", Err: err}
	}
	defer fsModule.Release()

	// Each failure below releases what p already holds.
	p := &GalaxyRenderPass{
		Device: device,
		Queue:  device.GetQueue(),
		Uniforms: GalaxyUniforms{
			ViewProj:  mgl32.Ident4(),
			Model:     mgl32.Ident4(),
			PointSize: DefaultPointSize,
			Aspect:    1,
		},
	}

	p.BindGroupLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "GalaxyUniformBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(GalaxyUniforms{})),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("galaxy bind group layout: %w", err)
	}

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "GalaxyPipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.BindGroupLayout},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("galaxy pipeline layout: %w", err)
	}
	defer layout.Release()

	additive := wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOne,
	}

	p.Pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "GalaxyPipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vsModule,
			EntryPoint: shaders.VertexEntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				instanceLayout(wgpu.VertexFormatFloat32x3, 0, unsafe.Sizeof(mgl32.Vec3{})),
				instanceLayout(wgpu.VertexFormatFloat32x3, 1, unsafe.Sizeof(mgl32.Vec3{})),
				instanceLayout(wgpu.VertexFormatFloat32, 2, unsafe.Sizeof(float32(0))),
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fsModule,
			EntryPoint: shaders.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend:     &wgpu.BlendState{Color: additive, Alpha: additive},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		// No depth attachment: sprites never write depth and draw order is irrelevant.
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.Release()
		return nil, &core.ShaderError{Stage: "pipeline", Err: err}
	}

	p.UniformBuf, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "GalaxyUniforms",
		Size:  uint64(unsafe.Sizeof(GalaxyUniforms{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("galaxy uniform buffer: %w", err)
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "GalaxyUniformBG",
		Layout: p.BindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.UniformBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("galaxy bind group: %w", err)
	}

	return p, nil
}

func instanceLayout(format wgpu.VertexFormat, location uint32, stride uintptr) wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(stride),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: format, Offset: 0, ShaderLocation: location},
		},
	}
}

// BindBuffers uploads buf as the three instance attributes, dropping the
// previous set.
func (p *GalaxyRenderPass) BindBuffers(buf *core.ParticleBuffer) error {
	p.releaseAttributes()
	if buf.Len() == 0 {
		return nil
	}

	var err error
	if p.PositionBuf, err = p.createAttribute("GalaxyPositions", sliceBytes(buf.Positions)); err != nil {
		return err
	}
	if p.ColorBuf, err = p.createAttribute("GalaxyColors", sliceBytes(buf.Colors)); err != nil {
		p.releaseAttributes()
		return err
	}
	if p.SpeedBuf, err = p.createAttribute("GalaxySpeeds", sliceBytes(buf.Speeds)); err != nil {
		p.releaseAttributes()
		return err
	}
	p.InstanceCount = uint32(buf.Len())
	return nil
}

func (p *GalaxyRenderPass) createAttribute(label string, data []byte) (*wgpu.Buffer, error) {
	b, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	p.Queue.WriteBuffer(b, 0, data)
	return b, nil
}

func (p *GalaxyRenderPass) SetElapsedTime(seconds float32) {
	p.Uniforms.ElapsedTime = seconds
}

// Prepare writes this frame's uniforms.
func (p *GalaxyRenderPass) Prepare(viewProj, model mgl32.Mat4, aspect float32) {
	p.Uniforms.ViewProj = viewProj
	p.Uniforms.Model = model
	if aspect > 0 {
		p.Uniforms.Aspect = aspect
	}
	p.Queue.WriteBuffer(p.UniformBuf, 0, structBytes(&p.Uniforms))
}

func (p *GalaxyRenderPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceCount == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.PositionBuf, 0, p.PositionBuf.GetSize())
	pass.SetVertexBuffer(1, p.ColorBuf, 0, p.ColorBuf.GetSize())
	pass.SetVertexBuffer(2, p.SpeedBuf, 0, p.SpeedBuf.GetSize())
	pass.Draw(6, p.InstanceCount, 0, 0)
}

func (p *GalaxyRenderPass) releaseAttributes() {
	for _, b := range []**wgpu.Buffer{&p.PositionBuf, &p.ColorBuf, &p.SpeedBuf} {
		if *b != nil {
			(*b).Release()
			*b = nil
		}
	}
	p.InstanceCount = 0
}

func (p *GalaxyRenderPass) Release() {
	p.releaseAttributes()
	if p.BindGroup != nil {
		p.BindGroup.Release()
		p.BindGroup = nil
	}
	if p.BindGroupLayout != nil {
		p.BindGroupLayout.Release()
		p.BindGroupLayout = nil
	}
	if p.UniformBuf != nil {
		p.UniformBuf.Release()
		p.UniformBuf = nil
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}
}
