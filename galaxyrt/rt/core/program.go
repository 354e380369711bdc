package core

// ShaderProgram is the per-node GPU program. It is created once per node and
// reused across regenerations; only the attribute bindings change.
type ShaderProgram interface {
	// BindBuffers replaces the position, color and speed attributes.
	BindBuffers(buf *ParticleBuffer) error
	// SetElapsedTime sets the elapsedTime uniform.
	SetElapsedTime(seconds float32)
	Release()
}

// MemoryProgram keeps bindings in host memory. Used headless and in tests.
type MemoryProgram struct {
	Buffer      *ParticleBuffer
	ElapsedTime float32
	Binds       int
	Released    bool
}

func (p *MemoryProgram) BindBuffers(buf *ParticleBuffer) error {
	p.Buffer = buf
	p.Binds++
	return nil
}

func (p *MemoryProgram) SetElapsedTime(seconds float32) {
	p.ElapsedTime = seconds
}

func (p *MemoryProgram) Release() {
	p.Buffer = nil
	p.Released = true
}
