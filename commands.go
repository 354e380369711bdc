package galaxy

import (
	"github.com/gekko3d/galaxy/galaxyrt/rt/core"
)

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system any) *Commands {
	if sched, ok := system.(systemScheduleBuilder); ok {
		cmd.app.UseSystem(sched)
	} else {
		cmd.app.UseSystem(System(system))
	}
	return cmd
}

// Exit stops the loop at the end of the current stage. The first error
// passed wins and is returned from App.Run.
func (cmd *Commands) Exit(err error) {
	cmd.app.requestExit(err)
}

// OnShutdown registers fn to run after the loop ends. Hooks run in reverse
// registration order.
func (cmd *Commands) OnShutdown(fn func()) *Commands {
	cmd.app.onShutdown(fn)
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}

// SpawnGalaxy queues a galaxy for building at the next PreUpdate.
func (cmd *Commands) SpawnGalaxy(params core.ParameterSet) (core.NodeId, error) {
	return cmd.galaxies().Spawn(params)
}

func (cmd *Commands) SetGalaxyParams(id core.NodeId, params core.ParameterSet) error {
	return cmd.galaxies().SetParams(id, params)
}

func (cmd *Commands) DespawnGalaxy(id core.NodeId) bool {
	return cmd.galaxies().Despawn(id)
}

func (cmd *Commands) galaxies() *Galaxies {
	g, ok := Resource[Galaxies](cmd.app)
	if !ok {
		panic("GalaxyModule is not installed")
	}
	return g
}
