package galaxy

import (
	"fmt"
	"slices"

	"github.com/gekko3d/galaxy/galaxyrt/rt/core"
)

// ProgramFactory builds the shader program for one node.
type ProgramFactory func() (core.ShaderProgram, error)

func memoryProgramFactory() (core.ShaderProgram, error) {
	return &core.MemoryProgram{}, nil
}

// Galaxies is the registry of live galaxy nodes. Nodes spawn Uninitialized and
// are built by the PreUpdate system, so generation never happens while nodes
// are being animated.
type Galaxies struct {
	Seed    uint64
	Factory ProgramFactory
	// Measure wraps node builds; the renderer points it at its profiler.
	Measure func(scope string, fn func() error) error

	nodes   []*core.GalaxyNode
	pending []*core.GalaxyNode
	failed  map[core.NodeId]error
	spawned uint64

	installed bool
}

func NewGalaxies(seed uint64) *Galaxies {
	return &Galaxies{
		Seed:    seed,
		Factory: memoryProgramFactory,
		failed:  make(map[core.NodeId]error),
	}
}

// UseProgramFactory routes every later build through factory, timed by
// measure when it is non-nil.
func (g *Galaxies) UseProgramFactory(factory ProgramFactory, measure func(scope string, fn func() error) error) {
	g.Factory = factory
	g.Measure = measure
}

// ensureGalaxies returns the registry, creating it if no module has yet.
// Renderers wire their factory through it regardless of install order.
func ensureGalaxies(app *App) *Galaxies {
	if g, ok := Resource[Galaxies](app); ok {
		return g
	}
	g := NewGalaxies(0)
	app.addResources(g)
	return g
}

// Spawn validates params and queues a node. Each node gets its own seed,
// derived from the registry seed and spawn order.
func (g *Galaxies) Spawn(params core.ParameterSet) (core.NodeId, error) {
	node, err := core.NewGalaxyNode(params, g.Seed+g.spawned)
	if err != nil {
		return "", err
	}
	g.spawned++
	g.nodes = append(g.nodes, node)
	g.pending = append(g.pending, node)
	return node.ID, nil
}

func (g *Galaxies) Get(id core.NodeId) (*core.GalaxyNode, bool) {
	i := slices.IndexFunc(g.nodes, func(n *core.GalaxyNode) bool { return n.ID == id })
	if i < 0 {
		return nil, false
	}
	return g.nodes[i], true
}

// Nodes returns every live node in spawn order, built or not.
func (g *Galaxies) Nodes() []*core.GalaxyNode {
	return slices.Clone(g.nodes)
}

// Ready returns the nodes that can be drawn this frame.
func (g *Galaxies) Ready() []*core.GalaxyNode {
	ready := make([]*core.GalaxyNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n.State() == core.NodeReady {
			ready = append(ready, n)
		}
	}
	return ready
}

func (g *Galaxies) Pending() int { return len(g.pending) }

// Failed returns the build error of every node that was dropped.
func (g *Galaxies) Failed() map[core.NodeId]error {
	out := make(map[core.NodeId]error, len(g.failed))
	for id, err := range g.failed {
		out[id] = err
	}
	return out
}

func (g *Galaxies) SetParams(id core.NodeId, params core.ParameterSet) error {
	node, ok := g.Get(id)
	if !ok {
		return fmt.Errorf("galaxy %s not found", id)
	}
	return g.measure("Generate", func() error { return node.SetParams(params) })
}

func (g *Galaxies) Despawn(id core.NodeId) bool {
	node, ok := g.Get(id)
	if !ok {
		return false
	}
	g.remove(node)
	node.Release()
	return true
}

// ReleaseAll frees every node. The registry stays usable.
func (g *Galaxies) ReleaseAll() {
	for _, n := range g.nodes {
		n.Release()
	}
	g.nodes = nil
	g.pending = nil
}

// Particles is the particle total across Ready nodes.
func (g *Galaxies) Particles() int {
	total := 0
	for _, n := range g.Ready() {
		total += n.Buffer().Len()
	}
	return total
}

// build initializes every pending node. A failing node is released, recorded
// in Failed and dropped; the others are unaffected.
func (g *Galaxies) build(log Logger) {
	if len(g.pending) == 0 {
		return
	}
	pending := g.pending
	g.pending = nil

	for _, node := range pending {
		if node.State() != core.NodeUninitialized {
			continue
		}
		nlog := log.Named("galaxy " + string(node.ID))
		if count := node.Params().Count; count > core.MaxSupportedCount {
			nlog.Warnf("%d particles exceeds supported %d", count, core.MaxSupportedCount)
		}

		err := g.measure("Generate", func() error {
			program, err := g.Factory()
			if err != nil {
				return err
			}
			if err := node.Init(program); err != nil {
				program.Release()
				return err
			}
			return nil
		})
		if err != nil {
			nlog.Errorf("dropped: %v", err)
			g.failed[node.ID] = err
			g.remove(node)
			node.Release()
			continue
		}
		nlog.Debugf("ready: %d particles, seed %d", node.Buffer().Len(), node.Seed())
	}
}

func (g *Galaxies) update(elapsed float64) {
	for _, n := range g.nodes {
		if n.State() == core.NodeReady {
			n.Update(elapsed)
		}
	}
}

func (g *Galaxies) measure(scope string, fn func() error) error {
	if g.Measure == nil {
		return fn()
	}
	return g.Measure(scope, fn)
}

func (g *Galaxies) remove(node *core.GalaxyNode) {
	g.nodes = slices.DeleteFunc(g.nodes, func(n *core.GalaxyNode) bool { return n == node })
	g.pending = slices.DeleteFunc(g.pending, func(n *core.GalaxyNode) bool { return n == node })
}

// GalaxyModule installs the Galaxies registry and the systems that build and
// animate its nodes. It needs TimeModule.
type GalaxyModule struct {
	Seed     uint64
	Galaxies []core.ParameterSet
}

func (mod GalaxyModule) Install(app *App, cmd *Commands) {
	galaxies := ensureGalaxies(app)
	if galaxies.installed {
		panic("GalaxyModule installed twice")
	}
	galaxies.installed = true
	galaxies.Seed = mod.Seed

	for i, params := range mod.Galaxies {
		if _, err := galaxies.Spawn(params); err != nil {
			panic(fmt.Sprintf("galaxy %d: %v", i, err))
		}
	}

	cmd.UseSystem(System(galaxyBuildSystem).InStage(PreUpdate))
	cmd.UseSystem(System(galaxyUpdateSystem).InStage(Update))
	cmd.OnShutdown(galaxies.ReleaseAll)
}

func galaxyBuildSystem(cmd *Commands, galaxies *Galaxies) {
	galaxies.build(cmd.Logger())
}

func galaxyUpdateSystem(t *Time, galaxies *Galaxies) {
	galaxies.update(t.Elapsed)
}
