package galaxy

import (
	"errors"
	"fmt"

	app_rt "github.com/gekko3d/galaxy/galaxyrt/rt/app"
	"github.com/gekko3d/galaxy/galaxyrt/rt/core"
)

// GalaxyRtModule opens the window, drives the WebGPU renderer and maps mouse
// input onto the orbit camera. It needs GalaxyModule and InputModule.
//
// When the host cannot provide a render surface it prints FallbackNotice and
// asks the app to exit on the first frame.
type GalaxyRtModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
	DebugMode    bool
	// Scene, when set, positions the camera.
	Scene *Scene
}

type GalaxyRtState struct {
	RtApp *app_rt.App
	// Fallback is set when no render surface could be created.
	Fallback error

	home core.OrbitCamera
}

func (s *GalaxyRtState) FPS() float64 {
	if s == nil || s.RtApp == nil {
		return 0
	}
	return s.RtApp.FPS
}

func (s *GalaxyRtState) IsDebug() bool {
	return s != nil && s.RtApp != nil && s.RtApp.DebugMode
}

func (s *GalaxyRtState) SetDebugMode(enabled bool) {
	if s != nil && s.RtApp != nil {
		s.RtApp.DebugMode = enabled
	}
}

func (s *GalaxyRtState) Counter(name string) int {
	if s == nil || s.RtApp == nil {
		return 0
	}
	return s.RtApp.Profiler.Counts[name]
}

func (mod GalaxyRtModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, "galaxyrt")

	state := &GalaxyRtState{}
	cmd.AddResources(state)

	windowState, err := createWindowState(mod.WindowWidth, mod.WindowHeight, mod.WindowTitle)
	if err != nil {
		mod.installFallback(cmd, state, &WindowState{}, err)
		return
	}
	cmd.AddResources(windowState)

	rtApp := app_rt.NewApp(windowState.windowGlfw)
	rtApp.DebugMode = mod.DebugMode
	if err := rtApp.Init(); err != nil {
		rtApp.Release()
		windowState.destroy()
		mod.installFallback(cmd, state, nil, err)
		return
	}
	if mod.Scene != nil {
		mod.Scene.ApplyCamera(rtApp.Camera)
	}
	state.RtApp = rtApp
	state.home = *rtApp.Camera
	ensureGalaxies(app).UseProgramFactory(rtApp.NewProgram, rtApp.Profiler.Measure)

	cmd.UseSystem(System(galaxyRtControlSystem).InStage(PreUpdate))
	cmd.UseSystem(System(galaxyRtRenderSystem).InStage(Render))

	// Nodes hold GPU buffers, so they go before the device.
	cmd.OnShutdown(func() {
		if g, ok := Resource[Galaxies](app); ok {
			g.ReleaseAll()
		}
		rtApp.Release()
		windowState.destroy()
	})
	app.Logger().Infof("Renderer galaxyrt ready (%dx%d)", rtApp.Config.Width, rtApp.Config.Height)
}

func (mod GalaxyRtModule) installFallback(cmd *Commands, state *GalaxyRtState, ws *WindowState, err error) {
	if !errors.Is(err, core.ErrMissingRenderSurface) {
		panic(err)
	}
	state.Fallback = err
	if ws != nil {
		cmd.AddResources(ws)
	}
	cmd.UseSystem(System(galaxyRtFallbackSystem).InStage(Prelude))
}

func galaxyRtFallbackSystem(cmd *Commands, state *GalaxyRtState) {
	fmt.Println(app_rt.FallbackNotice)
	cmd.Logger().Warnf("%s (%v)", app_rt.FallbackNotice, state.Fallback)
	cmd.Exit(nil)
}

func galaxyRtControlSystem(cmd *Commands, ws *WindowState, input *Input, state *GalaxyRtState) {
	rt := state.RtApp
	if ws.ShouldClose() || input.JustPressed[KeyEscape] {
		cmd.Exit(nil)
		return
	}

	if input.WindowWidth != int(rt.Config.Width) || input.WindowHeight != int(rt.Config.Height) {
		rt.Resize(input.WindowWidth, input.WindowHeight)
	}

	if input.JustPressed[KeyF3] {
		state.SetDebugMode(!state.IsDebug())
	}
	applyCameraInput(rt.Camera, &state.home, input)
}

// applyCameraInput maps left-drag to orbit, scroll and +/- to zoom, and R to
// reset the camera to home.
func applyCameraInput(cam *core.OrbitCamera, home *core.OrbitCamera, input *Input) {
	if input.JustPressed[KeyR] {
		*cam = *home
		return
	}
	if input.Pressed[MouseButtonLeft] && !input.JustPressed[MouseButtonLeft] {
		cam.Orbit(float32(input.MouseDeltaX), float32(input.MouseDeltaY))
	}
	steps := float32(input.ScrollY)
	if input.JustPressed[KeyEqual] {
		steps++
	}
	if input.JustPressed[KeyMinus] {
		steps--
	}
	if steps != 0 {
		cam.Zoom(steps)
	}
}

func galaxyRtRenderSystem(state *GalaxyRtState, galaxies *Galaxies) {
	rt := state.RtApp
	rt.Profiler.SetCount("failed", len(galaxies.Failed()))
	rt.Update()
	rt.Render(galaxies.Ready())
	rt.ClearText()
}
