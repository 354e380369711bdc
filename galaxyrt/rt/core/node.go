package core

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// DefaultRotationRate is the Y-axis spin in radians per second.
const DefaultRotationRate = 0.02

type NodeId string

func NewNodeId() NodeId {
	return NodeId(uuid.NewString())
}

type NodeState int

const (
	NodeUninitialized NodeState = iota
	NodeReady
	NodeReleased
)

func (s NodeState) String() string {
	switch s {
	case NodeUninitialized:
		return "uninitialized"
	case NodeReady:
		return "ready"
	case NodeReleased:
		return "released"
	}
	return fmt.Sprintf("NodeState(%d)", int(s))
}

// AnimationState is the per-frame clock-derived state of a node.
type AnimationState struct {
	ElapsedTime float64
	RotationY   float64
}

var errNodeReleased = errors.New("galaxy node released")

// GalaxyNode owns one ShaderProgram and one generated ParticleBuffer.
type GalaxyNode struct {
	ID           NodeId
	RotationRate float64
	Transform    *Transform

	params  ParameterSet
	seed    uint64
	state   NodeState
	program ShaderProgram
	cache   BufferCache
	buffer  *ParticleBuffer
	anim    AnimationState
}

// NewGalaxyNode validates params and returns an Uninitialized node. Nothing
// is generated until Init.
func NewGalaxyNode(params ParameterSet, seed uint64) (*GalaxyNode, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	n := &GalaxyNode{
		ID:           NewNodeId(),
		RotationRate: DefaultRotationRate,
		Transform:    NewTransform(),
		params:       params,
		seed:         seed,
	}
	n.syncTransform()
	return n, nil
}

func (n *GalaxyNode) State() NodeState          { return n.state }
func (n *GalaxyNode) Params() ParameterSet      { return n.params }
func (n *GalaxyNode) Seed() uint64              { return n.seed }
func (n *GalaxyNode) Buffer() *ParticleBuffer   { return n.buffer }
func (n *GalaxyNode) Program() ShaderProgram    { return n.program }
func (n *GalaxyNode) Animation() AnimationState { return n.anim }
func (n *GalaxyNode) Generations() int          { return n.cache.Generations() }

// Init generates the buffers once, binds them to program and moves the node
// to Ready. It is one-way: a Ready node cannot be initialized again.
func (n *GalaxyNode) Init(program ShaderProgram) error {
	switch n.state {
	case NodeReady:
		return fmt.Errorf("galaxy node %s already initialized", n.ID)
	case NodeReleased:
		return errNodeReleased
	}
	if program == nil {
		return fmt.Errorf("galaxy node %s: nil shader program", n.ID)
	}

	buf, err := n.cache.Get(n.params, n.seed)
	if err != nil {
		return err
	}
	if err := program.BindBuffers(buf); err != nil {
		return fmt.Errorf("bind galaxy buffers: %w", err)
	}

	n.program = program
	n.buffer = buf
	n.state = NodeReady
	n.program.SetElapsedTime(float32(n.anim.ElapsedTime))
	return nil
}

// SetParams swaps in p. Transform-only edits touch the transform alone; any
// other edit regenerates and rebinds on a Ready node, reusing the program.
// An Uninitialized node regenerates lazily in Init.
func (n *GalaxyNode) SetParams(p ParameterSet) error {
	if n.state == NodeReleased {
		return errNodeReleased
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if p.GenerationKey() == n.params.GenerationKey() || n.state != NodeReady {
		n.params = p
		n.syncTransform()
		return nil
	}

	// Nothing is committed until the program holds the new buffer.
	buf, err := n.cache.Get(p, n.seed)
	if err != nil {
		n.cache.Invalidate()
		return err
	}
	if err := n.program.BindBuffers(buf); err != nil {
		n.cache.Invalidate()
		if restoreErr := n.program.BindBuffers(n.buffer); restoreErr != nil {
			return fmt.Errorf("rebind galaxy buffers: %w (restore: %v)", err, restoreErr)
		}
		return fmt.Errorf("rebind galaxy buffers: %w", err)
	}
	n.params = p
	n.buffer = buf
	n.syncTransform()
	return nil
}

// Update advances the node to elapsed seconds since scene start. O(1).
func (n *GalaxyNode) Update(elapsed float64) {
	n.anim.ElapsedTime = elapsed
	n.anim.RotationY = elapsed * n.RotationRate
	if n.program != nil {
		n.program.SetElapsedTime(float32(elapsed))
	}
	n.syncTransform()
}

// ModelMatrix is the object-to-world matrix for the current frame.
func (n *GalaxyNode) ModelMatrix() mgl32.Mat4 {
	return n.Transform.ObjectToWorld()
}

// Release frees the buffer and the program. The node is unusable afterwards.
func (n *GalaxyNode) Release() {
	if n.state == NodeReleased {
		return
	}
	if n.program != nil {
		n.program.Release()
		n.program = nil
	}
	n.buffer = nil
	n.cache.Invalidate()
	n.state = NodeReleased
}

// The clock owns the Y angle; X and Z come from the parameter set.
func (n *GalaxyNode) syncTransform() {
	n.Transform.Position = n.params.Position
	n.Transform.Scale = n.params.Scale
	rot := n.params.Rotation
	rot[1] = float32(n.anim.RotationY)
	n.Transform.SetEuler(rot)
}
